// Package loader implements the Batch Loader component.
//
// Raw snapshot dumps are CSV files named "<market> <timestamp>.csv", one file
// per market and snapshot instant, laid out one directory per year. The
// loader:
//   - lists the files matching a year/month window
//   - parses the snapshot timestamp out of each file name
//   - reads partitions of the file list in parallel, share-nothing
//   - concatenates the partitions and sorts by timestamp
//
// Files sharing a parsed timestamp (the same instant seen by several markets)
// simply contribute rows to the same instant; the normalizer later collapses
// the duplicates.
package loader
