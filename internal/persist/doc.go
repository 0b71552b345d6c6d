// Package persist implements the Bulk Persister component.
//
// A cleaned table is statically partitioned by row range and each shard is
// written by an independent worker, batching rows per database round trip.
// Inserts are append-only with ON CONFLICT DO NOTHING on the natural key, so
// a retried batch that partially committed re-inserts the same keys and the
// duplicates become counted conflicts instead of duplicate rows.
//
// A failed shard fails the whole write: the error is propagated and the
// caller must not mark the batch's files in the ledger.
package persist
