package volume

import (
	"log/slog"
	"math"
	"time"

	"github.com/tvasseur/bourse-data/internal/model"
)

// Stats counts what reconstruction removed.
type Stats struct {
	In         int
	Negative   int // Rows dropped for negative interval volume
	Iterations int // Convergence passes over the table
	Oversized  int // Rows dropped for values at or above the storage ceiling
	Out        int
}

// dayKey groups ticks into (symbol, calendar day) series.
type dayKey struct {
	symbol string
	day    time.Time
}

// Reconstruct converts cumulative volumes to interval volumes and removes
// inconsistent rows. The input must be sorted by time; the surviving rows are
// returned in the same order with Volume set.
func Reconstruct(ticks []model.SymbolTick, logger *slog.Logger) ([]model.SymbolTick, Stats) {
	if logger == nil {
		logger = slog.Default()
	}
	stats := Stats{In: len(ticks)}

	// Index rows per (symbol, day) group; global time order gives each group
	// its chronological order.
	groups := make(map[dayKey][]int)
	for i, t := range ticks {
		key := dayKey{symbol: t.Symbol, day: model.Day(t.Time)}
		groups[key] = append(groups[key], i)
	}

	alive := make([]bool, len(ticks))
	for i := range alive {
		alive[i] = true
	}
	interval := make([]float64, len(ticks))

	// Convergence loop: recompute diffs over survivors, drop negatives,
	// repeat until none remain. Bounded by the row count since every pass
	// kills at least one row.
	for {
		stats.Iterations++

		for _, idxs := range groups {
			prev := -1
			for _, i := range idxs {
				if !alive[i] {
					continue
				}
				if prev < 0 {
					interval[i] = ticks[i].CumVolume
				} else {
					interval[i] = ticks[i].CumVolume - ticks[prev].CumVolume
				}
				prev = i
			}
		}

		var negatives int
		for i := range ticks {
			if alive[i] && interval[i] < 0 {
				alive[i] = false
				negatives++
			}
		}
		if negatives == 0 {
			break
		}
		stats.Negative += negatives
	}

	// Rows the storage integer columns cannot represent are dropped, along
	// with unparseable-price survivors from the normalizer.
	out := make([]model.SymbolTick, 0, len(ticks))
	for i, t := range ticks {
		if !alive[i] {
			continue
		}
		if interval[i] >= model.MaxStorageInt || t.Price >= model.MaxStorageInt || math.IsNaN(t.Price) {
			stats.Oversized++
			continue
		}
		t.Volume = int64(interval[i])
		out = append(out, t)
	}
	stats.Out = len(out)

	logger.Debug("reconstructed interval volumes",
		"rows_in", stats.In,
		"negative_removed", stats.Negative,
		"iterations", stats.Iterations,
		"oversized_removed", stats.Oversized,
		"rows_out", stats.Out,
	)

	return out, stats
}
