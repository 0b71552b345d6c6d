// Package database provides connection pool management for TimescaleDB.
//
// The analyzer keeps all durable state in a single database:
//   - companies: symbol -> stable identity mapping
//   - ticks: cleaned per-interval observations (hypertable)
//   - day_bars: per-day OHLC summaries (hypertable)
//   - file_done: ledger of ingested snapshot files
//
// The pool is created at batch start and passed explicitly to every component
// that touches storage; there is no package-level connection state.
package database
