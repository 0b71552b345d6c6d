// Package daybar implements the Day-Bar Aggregator component.
//
// Cleaned ticks reduce to one OHLC + mean/std/volume row per (company,
// calendar day). Open and close follow timestamp order within the day, high
// and low are extrema, std is the sample standard deviation (NULL in storage
// for single-tick days), and volume is the summed interval volume.
//
// A day whose summed volume does not fit the storage integer column is
// clamped to the -1 sentinel rather than dropped; consumers treat the
// sentinel as "volume unknown, too large".
package daybar
