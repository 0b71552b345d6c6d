package partition

import "testing"

func TestSplit_EvenChunks(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6}
	chunks := Split(items, 3)

	if len(chunks) != 3 {
		t.Fatalf("Split returned %d chunks, want 3", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) != 2 {
			t.Errorf("chunk %d has %d items, want 2", i, len(chunk))
		}
	}
}

func TestSplit_UnevenChunks(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	chunks := Split(items, 3)

	if len(chunks) != 3 {
		t.Fatalf("Split returned %d chunks, want 3", len(chunks))
	}

	// Every item appears exactly once, in order.
	var merged []int
	for _, chunk := range chunks {
		merged = append(merged, chunk...)
	}
	if len(merged) != len(items) {
		t.Fatalf("merged %d items, want %d", len(merged), len(items))
	}
	for i, v := range merged {
		if v != items[i] {
			t.Errorf("merged[%d] = %d, want %d", i, v, items[i])
		}
	}
}

func TestSplit_MoreWorkersThanItems(t *testing.T) {
	items := []int{1, 2}
	chunks := Split(items, 8)

	if len(chunks) != 2 {
		t.Fatalf("Split returned %d chunks, want 2", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) != 1 {
			t.Errorf("chunk %d has %d items, want 1", i, len(chunk))
		}
	}
}

func TestSplit_Empty(t *testing.T) {
	if chunks := Split([]int{}, 4); len(chunks) != 0 {
		t.Errorf("Split of empty slice returned %d chunks, want 0", len(chunks))
	}
}

func TestSplit_ZeroWorkers(t *testing.T) {
	chunks := Split([]int{1, 2, 3}, 0)
	if len(chunks) != 1 {
		t.Fatalf("Split with 0 workers returned %d chunks, want 1", len(chunks))
	}
	if len(chunks[0]) != 3 {
		t.Errorf("chunk has %d items, want 3", len(chunks[0]))
	}
}

func TestDefaultWorkers(t *testing.T) {
	if DefaultWorkers() < 1 {
		t.Errorf("DefaultWorkers() = %d, want >= 1", DefaultWorkers())
	}
}
