// Package volume implements the Volume Reconstructor component.
//
// The raw feed reports cumulative intraday volume. Within each (symbol,
// calendar day) group, ordered by time, the interval volume is the difference
// from the previous surviving row; the first row of a day keeps its own
// cumulative value (volume accrued since open).
//
// A negative difference is impossible for a monotone counter and marks
// corrupted data. Offending rows are removed and the differences recomputed
// until a fixed point: removing a row changes the predecessor of the next
// survivor, which can surface a new negative. Each pass removes at least one
// row, so the loop is bounded by the row count.
package volume
