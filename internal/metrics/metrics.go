// Package metrics provides Prometheus metrics for monitoring the pipeline.
//
// Key metrics:
//   - rows loaded, collapsed, and removed per cleaning reason
//   - batches committed and failed
//   - bulk insert throughput and conflicts
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the pipeline's Prometheus collectors.
type Metrics struct {
	RowsLoaded       prometheus.Counter
	RowsRemoved      *prometheus.CounterVec // labeled by removal reason
	RowsInserted     *prometheus.CounterVec // labeled by table
	InsertConflicts  *prometheus.CounterVec // labeled by table
	BatchesCommitted prometheus.Counter
	BatchesFailed    prometheus.Counter
	BatchDuration    prometheus.Histogram
}

// Removal reason label values.
const (
	ReasonCollapsed      = "duplicate_collapsed"
	ReasonFlatSeries     = "flat_series"
	ReasonNegativeVolume = "negative_volume"
	ReasonOversized      = "oversized_value"
)

// New registers the pipeline collectors with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RowsLoaded: factory.NewCounter(prometheus.CounterOpts{
			Name: "bourse_rows_loaded_total",
			Help: "Raw tick rows read from snapshot files.",
		}),
		RowsRemoved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bourse_rows_removed_total",
			Help: "Rows removed during cleaning, by reason.",
		}, []string{"reason"}),
		RowsInserted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bourse_rows_inserted_total",
			Help: "Rows written to storage, by table.",
		}, []string{"table"}),
		InsertConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bourse_insert_conflicts_total",
			Help: "Rows skipped on insert because their natural key existed, by table.",
		}, []string{"table"}),
		BatchesCommitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "bourse_batches_committed_total",
			Help: "Batches fully persisted and marked in the ledger.",
		}),
		BatchesFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "bourse_batches_failed_total",
			Help: "Batches aborted before the ledger was updated.",
		}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bourse_batch_duration_seconds",
			Help:    "Wall time to process one batch end to end.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
	}
}
