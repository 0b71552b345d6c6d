// Package ledger tracks which snapshot files have already been ingested.
//
// The ledger is the pipeline's crash-recovery boundary: a batch's files are
// marked only after both the ticks and day_bars for that batch are durably
// written, in a single transaction. A file present in the ledger is never
// reloaded, which makes whole-batch retries safe.
package ledger
