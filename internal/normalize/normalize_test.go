package normalize

import (
	"math"
	"testing"
	"time"

	"github.com/tvasseur/bourse-data/internal/model"
)

func TestFloatify(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"13", 13},
		{"0.14", 0.14},
		{"1321.491823", 1321.491823},
		{"12  222.222", 12222.222},
		{"34.23 (c)", 34.23},
		{" 5 ", 5},
	}

	for _, tt := range tests {
		if got := Floatify(tt.in); got != tt.want {
			t.Errorf("Floatify(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFloatify_Unparseable(t *testing.T) {
	for _, in := range []string{"", "n/a", "-", "..."} {
		if got := Floatify(in); !math.IsNaN(got) {
			t.Errorf("Floatify(%q) = %v, want NaN", in, got)
		}
	}
}

func TestNormalize_CollapsesDuplicates(t *testing.T) {
	ts := time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC)
	raw := []model.RawTick{
		{Time: ts, Symbol: "ACM", LastRaw: "10", Volume: 100, Name: "Acme Corp", Market: "boursorama"},
		{Time: ts, Symbol: "ACM", LastRaw: "12", Volume: 120, Name: "Acme Corp", Market: "euronext"},
		// A later reading so the symbol is not flat.
		{Time: ts.Add(time.Hour), Symbol: "ACM", LastRaw: "13", Volume: 150, Name: "Acme Corp", Market: "boursorama"},
	}

	ticks, stats := Normalize(raw, nil)

	if len(ticks) != 2 {
		t.Fatalf("Normalize returned %d rows, want 2", len(ticks))
	}
	if ticks[0].Price != 11 {
		t.Errorf("collapsed price = %v, want 11", ticks[0].Price)
	}
	if ticks[0].CumVolume != 110 {
		t.Errorf("collapsed volume = %v, want 110", ticks[0].CumVolume)
	}
	if stats.Collapsed != 1 {
		t.Errorf("stats.Collapsed = %d, want 1", stats.Collapsed)
	}
}

func TestNormalize_DropsFlatSymbols(t *testing.T) {
	t0 := time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC)
	raw := []model.RawTick{
		{Time: t0, Symbol: "FLAT", LastRaw: "5.0", Volume: 10, Name: "Flat SA"},
		{Time: t0.Add(time.Minute), Symbol: "FLAT", LastRaw: "5.0", Volume: 20, Name: "Flat SA"},
		{Time: t0, Symbol: "MOVE", LastRaw: "5.0", Volume: 10, Name: "Move SA"},
		{Time: t0.Add(time.Minute), Symbol: "MOVE", LastRaw: "6.0", Volume: 20, Name: "Move SA"},
	}

	ticks, stats := Normalize(raw, nil)

	for _, tick := range ticks {
		if tick.Symbol == "FLAT" {
			t.Errorf("flat symbol survived normalization")
		}
	}
	if stats.FlatSymbols != 1 {
		t.Errorf("stats.FlatSymbols = %d, want 1", stats.FlatSymbols)
	}
	if stats.FlatRows != 2 {
		t.Errorf("stats.FlatRows = %d, want 2", stats.FlatRows)
	}
}

func TestNormalize_SingleObservationKept(t *testing.T) {
	t0 := time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC)
	raw := []model.RawTick{
		{Time: t0, Symbol: "ONE", LastRaw: "5.0", Volume: 10, Name: "One SA"},
	}

	ticks, _ := Normalize(raw, nil)

	if len(ticks) != 1 {
		t.Fatalf("single-observation symbol dropped; variance is undefined, not zero")
	}
}

func TestNormalize_UnparseablePriceSurvivesAsNaN(t *testing.T) {
	t0 := time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC)
	raw := []model.RawTick{
		{Time: t0, Symbol: "ACM", LastRaw: "n/a", Volume: 10, Name: "Acme Corp"},
		{Time: t0.Add(time.Minute), Symbol: "ACM", LastRaw: "also bad", Volume: 20, Name: "Acme Corp"},
	}

	ticks, stats := Normalize(raw, nil)

	if len(ticks) != 2 {
		t.Fatalf("Normalize returned %d rows, want 2 (parse failures are not removals)", len(ticks))
	}
	for _, tick := range ticks {
		if !math.IsNaN(tick.Price) {
			t.Errorf("Price = %v, want NaN survivor", tick.Price)
		}
	}
	if stats.UnparseablePx != 2 {
		t.Errorf("stats.UnparseablePx = %d, want 2", stats.UnparseablePx)
	}
}

func TestNormalize_MeanSkipsUnparseable(t *testing.T) {
	// One market reports garbage, the other a real price: the collapsed row
	// keeps the real price instead of poisoning the mean.
	ts := time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC)
	raw := []model.RawTick{
		{Time: ts, Symbol: "ACM", LastRaw: "10", Volume: 100, Name: "Acme Corp"},
		{Time: ts, Symbol: "ACM", LastRaw: "???", Volume: 100, Name: "Acme Corp"},
		{Time: ts.Add(time.Minute), Symbol: "ACM", LastRaw: "11", Volume: 120, Name: "Acme Corp"},
	}

	ticks, _ := Normalize(raw, nil)

	if len(ticks) != 2 {
		t.Fatalf("Normalize returned %d rows, want 2", len(ticks))
	}
	if ticks[0].Price != 10 {
		t.Errorf("collapsed price = %v, want 10", ticks[0].Price)
	}
}

func TestNormalize_FirstNameWins(t *testing.T) {
	ts := time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC)
	raw := []model.RawTick{
		{Time: ts, Symbol: "ACM", LastRaw: "10", Volume: 100, Name: "Acme Corp"},
		{Time: ts, Symbol: "ACM", LastRaw: "12", Volume: 100, Name: "Acme Corporation"},
		{Time: ts.Add(time.Minute), Symbol: "ACM", LastRaw: "13", Volume: 120, Name: "Acme Corp"},
	}

	ticks, _ := Normalize(raw, nil)

	// The collapsed mean (11) differs from the later price, so the symbol
	// keeps its variance and survives to the output.
	if len(ticks) != 2 {
		t.Fatalf("Normalize returned %d rows, want 2", len(ticks))
	}
	if ticks[0].Name != "Acme Corp" {
		t.Errorf("Name = %q, want first reported name", ticks[0].Name)
	}
}

func TestNormalize_Empty(t *testing.T) {
	ticks, stats := Normalize(nil, nil)
	if len(ticks) != 0 {
		t.Errorf("Normalize(nil) returned %d rows", len(ticks))
	}
	if stats.RawRows != 0 || stats.CleanRows != 0 {
		t.Errorf("unexpected stats for empty input: %+v", stats)
	}
}
