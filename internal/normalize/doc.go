// Package normalize implements the Tick Normalizer component.
//
// Three cleaning passes run over the raw tick table, in order:
//  1. price coercion: strip noise from the last-price string and parse it
//  2. duplicate collapsing: readings of the same (timestamp, symbol) from
//     different markets collapse to their arithmetic mean
//  3. flat-series removal: a symbol whose price never moves over the whole
//     batch is a data artifact and is dropped
//
// Unparseable prices survive as NaN; the volume reconstructor's
// unrepresentable-value filter removes them later. Cleaning degrades the
// dataset, it never fails the batch.
package normalize
