// Package model defines shared data types used across the bourse-data pipeline.
//
// Conventions:
//   - Prices: float64 while in flight, REAL in storage
//   - Volumes: int64 once reconstructed, constrained to 4-byte INT in storage
//   - Timestamps: time.Time in UTC, parsed from snapshot file names
package model
