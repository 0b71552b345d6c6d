package model

import "time"

// MaxStorageInt is the largest value the 4-byte integer columns in the
// ticks and day_bars tables can hold. Rows at or above it are unrepresentable.
const MaxStorageInt = 1<<31 - 1

// SentinelVolume marks a day bar whose summed volume exceeded MaxStorageInt.
const SentinelVolume = -1

// -----------------------------------------------------------------------------
// Transient Types (owned by a single batch run)
// -----------------------------------------------------------------------------

// RawTick is one observation read from a snapshot file, before cleaning.
// The timestamp and market come from the file name, not the row.
type RawTick struct {
	Time    time.Time // Snapshot time (UTC, from the file name)
	Symbol  string    // Ticker symbol
	LastRaw string    // Price exactly as found in the file; may carry noise
	Volume  float64   // Cumulative intraday volume
	Name    string    // Company name as reported
	Market  string    // Source market (leading token of the file name)
}

// SymbolTick is a normalized observation still keyed by symbol.
// Price is NaN when the raw value never parsed; such rows survive until the
// unrepresentable-value filter removes them.
type SymbolTick struct {
	Time      time.Time
	Symbol    string
	Name      string
	Price     float64
	CumVolume float64 // Cumulative intraday volume (mean when collapsed)
	Volume    int64   // Interval volume, set by the volume reconstructor
}

// CleanTick is the persisted tick: symbol resolved to a company id,
// cumulative volume replaced by interval volume.
type CleanTick struct {
	Time      time.Time
	CompanyID int64
	Price     float64
	Volume    int64 // Interval volume, always >= 0
}

// -----------------------------------------------------------------------------
// Persistent Types (owned by storage once written)
// -----------------------------------------------------------------------------

// Company maps a ticker symbol to a stable identity.
// The id is immutable once assigned; the name may be updated on rename.
type Company struct {
	ID     int64
	Name   string
	Symbol string
}

// DayBar is one day's OHLC summary for a company.
// Std is NaN for single-tick days and stored as NULL.
// Volume is SentinelVolume when the summed volume exceeded MaxStorageInt.
type DayBar struct {
	Day       time.Time // Midnight UTC
	CompanyID int64
	Open      float64
	Close     float64
	High      float64
	Low       float64
	Mean      float64
	Std       float64
	Volume    int64
}

// Day truncates a timestamp to its calendar day (midnight UTC).
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
