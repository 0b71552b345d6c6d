package persist

import (
	"testing"

	"github.com/tvasseur/bourse-data/internal/partition"
)

func TestRangesCoverAllRowsDisjointly(t *testing.T) {
	tests := []struct {
		total  int
		shards int
	}{
		{total: 10, shards: 3},
		{total: 7, shards: 7},
		{total: 3, shards: 8},
		{total: 1000, shards: 4},
	}

	for _, tt := range tests {
		ranges := partition.Ranges(tt.total, tt.shards)

		covered := make([]bool, tt.total)
		for _, r := range ranges {
			if r.Lo >= r.Hi {
				t.Errorf("Ranges(%d, %d): empty range %+v", tt.total, tt.shards, r)
			}
			for i := r.Lo; i < r.Hi; i++ {
				if covered[i] {
					t.Fatalf("Ranges(%d, %d): row %d covered twice", tt.total, tt.shards, i)
				}
				covered[i] = true
			}
		}
		for i, ok := range covered {
			if !ok {
				t.Errorf("Ranges(%d, %d): row %d not covered", tt.total, tt.shards, i)
			}
		}
	}
}

func TestNew_FixesChunkSize(t *testing.T) {
	p := New(Config{ChunkSize: 0}, nil, nil)
	if p.cfg.ChunkSize != DefaultConfig().ChunkSize {
		t.Errorf("ChunkSize = %d, want default %d", p.cfg.ChunkSize, DefaultConfig().ChunkSize)
	}
}
