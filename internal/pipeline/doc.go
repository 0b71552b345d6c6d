// Package pipeline orchestrates one ingestion batch end to end.
//
// Stage order within a batch is fixed and sequential:
//
//	list files -> ledger filter -> load -> normalize -> reconstruct volumes
//	-> resolve identities -> persist ticks -> aggregate day bars
//	-> persist day bars -> mark ledger
//
// The ledger mark is strictly last: any storage failure aborts the batch
// before it, leaving the ledger untouched so the whole batch can be retried.
// Batches are independent of each other; only identity resolution is
// serialized (see package company).
package pipeline
