// Package partition splits slices into contiguous, disjoint chunks for
// share-nothing parallel work. Results are merged by concatenation, so the
// concurrency primitive never leaks into the stages that use it.
package partition

import "runtime"

// DefaultWorkers returns the worker count used when none is configured:
// one less than the CPU count, but at least one.
func DefaultWorkers() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		return 1
	}
	return n
}

// Split divides items into at most n contiguous chunks of near-equal size.
// Every item lands in exactly one chunk and order is preserved. Fewer than
// n chunks are returned when there are fewer items than partitions.
func Split[T any](items []T, n int) [][]T {
	if n < 1 {
		n = 1
	}
	if n > len(items) {
		n = len(items)
	}
	if n == 0 {
		return nil
	}

	chunks := make([][]T, 0, n)
	for _, r := range Ranges(len(items), n) {
		chunks = append(chunks, items[r.Lo:r.Hi])
	}
	return chunks
}

// Range is a half-open row range [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Ranges divides [0, total) into at most n contiguous, disjoint ranges of
// near-equal size covering every index exactly once.
func Ranges(total, n int) []Range {
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	if n == 0 {
		return nil
	}

	ranges := make([]Range, 0, n)
	size := total / n
	rem := total % n

	start := 0
	for i := 0; i < n; i++ {
		end := start + size
		if i < rem {
			end++
		}
		ranges = append(ranges, Range{Lo: start, Hi: end})
		start = end
	}
	return ranges
}
