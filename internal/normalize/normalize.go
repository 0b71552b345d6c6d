package normalize

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tvasseur/bourse-data/internal/model"
)

// Stats counts what the cleaning passes removed.
type Stats struct {
	RawRows       int // Rows in
	Collapsed     int // Duplicate rows folded into their group mean
	FlatSymbols   int // Symbols dropped for zero price variance
	FlatRows      int // Rows dropped with those symbols
	CleanRows     int // Rows out
	UnparseablePx int // Rows whose price never parsed (kept as NaN)
}

// Floatify coerces a raw price string to a float, stripping every byte that
// is not a digit or decimal point ("12  222.222", "34.23 (c)"). A value that
// still fails to parse becomes NaN rather than an error.
func Floatify(s string) float64 {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' {
			b.WriteByte(c)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// tickKey is the composite grouping key for duplicate collapsing.
type tickKey struct {
	time   time.Time
	symbol string
}

// group accumulates readings that share a (timestamp, symbol) key.
type group struct {
	name     string // First reported name wins
	priceSum float64
	priceN   int
	volSum   float64
	volN     int
}

// Normalize runs the three cleaning passes over a raw tick table.
// The input must be sorted by timestamp; the output preserves that order,
// one row per (timestamp, symbol).
func Normalize(raw []model.RawTick, logger *slog.Logger) ([]model.SymbolTick, Stats) {
	if logger == nil {
		logger = slog.Default()
	}
	stats := Stats{RawRows: len(raw)}

	// Pass 1+2: coerce prices, collapse duplicate keys to their mean.
	groups := make(map[tickKey]*group, len(raw))
	order := make([]tickKey, 0, len(raw))

	for _, rt := range raw {
		key := tickKey{time: rt.Time, symbol: rt.Symbol}
		g, ok := groups[key]
		if !ok {
			g = &group{name: rt.Name}
			groups[key] = g
			order = append(order, key)
		} else {
			stats.Collapsed++
		}

		if price := Floatify(rt.LastRaw); !math.IsNaN(price) {
			g.priceSum += price
			g.priceN++
		}
		g.volSum += rt.Volume
		g.volN++
	}

	ticks := make([]model.SymbolTick, 0, len(order))
	for _, key := range order {
		g := groups[key]
		price := math.NaN()
		if g.priceN > 0 {
			price = g.priceSum / float64(g.priceN)
		} else {
			stats.UnparseablePx++
		}
		ticks = append(ticks, model.SymbolTick{
			Time:      key.time,
			Symbol:    key.symbol,
			Name:      g.name,
			Price:     price,
			CumVolume: g.volSum / float64(g.volN),
		})
	}

	// Pass 3: drop symbols whose price has zero variance across the batch.
	ticks, flatSymbols := dropFlatSymbols(ticks, &stats)
	stats.CleanRows = len(ticks)

	logger.Debug("normalized ticks",
		"raw_rows", stats.RawRows,
		"collapsed", stats.Collapsed,
		"flat_symbols", flatSymbols,
		"flat_rows", stats.FlatRows,
		"unparseable_prices", stats.UnparseablePx,
		"clean_rows", stats.CleanRows,
	)

	return ticks, stats
}

// dropFlatSymbols removes every symbol whose price series has zero sample
// variance over the whole batch. Variance is computed over parsed prices
// only; a symbol needs at least two of them before it can be called flat,
// a single observation has undefined variance and is kept.
func dropFlatSymbols(ticks []model.SymbolTick, stats *Stats) ([]model.SymbolTick, int) {
	firstPrice := make(map[string]float64)
	finiteCount := make(map[string]int)
	moved := make(map[string]bool)

	for _, t := range ticks {
		if math.IsNaN(t.Price) {
			continue
		}
		n := finiteCount[t.Symbol]
		finiteCount[t.Symbol] = n + 1
		if n == 0 {
			firstPrice[t.Symbol] = t.Price
		} else if t.Price != firstPrice[t.Symbol] {
			moved[t.Symbol] = true
		}
	}

	flat := make(map[string]bool)
	for symbol, n := range finiteCount {
		if n >= 2 && !moved[symbol] {
			flat[symbol] = true
		}
	}
	if len(flat) == 0 {
		return ticks, 0
	}

	kept := ticks[:0]
	for _, t := range ticks {
		if flat[t.Symbol] {
			stats.FlatRows++
			continue
		}
		kept = append(kept, t)
	}
	stats.FlatSymbols = len(flat)
	return kept, len(flat)
}
