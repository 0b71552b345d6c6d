package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tvasseur/bourse-data/internal/daybar"
	"github.com/tvasseur/bourse-data/internal/ledger"
	"github.com/tvasseur/bourse-data/internal/loader"
	"github.com/tvasseur/bourse-data/internal/metrics"
	"github.com/tvasseur/bourse-data/internal/model"
	"github.com/tvasseur/bourse-data/internal/normalize"
	"github.com/tvasseur/bourse-data/internal/persist"
	"github.com/tvasseur/bourse-data/internal/volume"
)

// FileSource lists and loads raw snapshot files.
type FileSource interface {
	List(dir string, year, month int) ([]string, error)
	Load(ctx context.Context, files []string) ([]model.RawTick, error)
}

// LedgerStore gates reprocessing of already-committed files.
type LedgerStore interface {
	AlreadyProcessed(ctx context.Context) (map[string]struct{}, error)
	MarkProcessed(ctx context.Context, names []string) error
}

// Resolver rewrites symbol-keyed ticks to company ids.
type Resolver interface {
	Resolve(ctx context.Context, ticks []model.SymbolTick) ([]model.CleanTick, error)
}

// Writer bulk-writes the two output tables.
type Writer interface {
	WriteTicks(ctx context.Context, ticks []model.CleanTick) (persist.Result, error)
	WriteDayBars(ctx context.Context, bars []model.DayBar) (persist.Result, error)
}

// Pipeline runs ingestion batches.
type Pipeline struct {
	sourceDir string
	source    FileSource
	ledger    LedgerStore
	resolver  Resolver
	writer    Writer
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// New creates a Pipeline. Metrics may be nil.
func New(sourceDir string, source FileSource, ledgerStore LedgerStore, resolver Resolver, writer Writer, m *metrics.Metrics, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		sourceDir: sourceDir,
		source:    source,
		ledger:    ledgerStore,
		resolver:  resolver,
		writer:    writer,
		metrics:   m,
		logger:    logger,
	}
}

// StoreMonth ingests one year/month window and returns the number of files
// committed to the ledger. A window whose files are all committed already
// processes zero rows and leaves storage unchanged.
func (p *Pipeline) StoreMonth(ctx context.Context, year, month int) (int, error) {
	logger := p.logger.With(
		"run_id", uuid.NewString(),
		"year", year,
		"month", fmt.Sprintf("%02d", month),
	)
	start := time.Now()

	files, err := p.source.List(p.sourceDir, year, month)
	if err != nil {
		return 0, p.fail(fmt.Errorf("list snapshot files: %w", err))
	}
	logger.Info("storing window", "files", len(files))
	if len(files) == 0 {
		return 0, nil
	}

	done, err := p.ledger.AlreadyProcessed(ctx)
	if err != nil {
		return 0, p.fail(fmt.Errorf("read ledger: %w", err))
	}
	remaining := ledger.Filter(files, done)
	if len(remaining) == 0 {
		logger.Info("window already ingested, skipping")
		return 0, nil
	}

	raw, err := p.source.Load(ctx, remaining)
	if errors.Is(err, loader.ErrNoData) {
		return 0, nil
	}
	if err != nil {
		return 0, p.fail(fmt.Errorf("load snapshot files: %w", err))
	}
	logger.Info("loaded window", "rows", len(raw))

	ticks, normStats := normalize.Normalize(raw, logger)
	ticks, volStats := volume.Reconstruct(ticks, logger)

	clean, err := p.resolver.Resolve(ctx, ticks)
	if err != nil {
		return 0, p.fail(fmt.Errorf("resolve companies: %w", err))
	}

	tickRes, err := p.writer.WriteTicks(ctx, clean)
	if err != nil {
		return 0, p.fail(fmt.Errorf("persist ticks: %w", err))
	}

	bars := daybar.Aggregate(clean, logger)

	barRes, err := p.writer.WriteDayBars(ctx, bars)
	if err != nil {
		return 0, p.fail(fmt.Errorf("persist day bars: %w", err))
	}

	// Both output tables are durable; commit the file set.
	if err := p.ledger.MarkProcessed(ctx, remaining); err != nil {
		return 0, p.fail(fmt.Errorf("mark ledger: %w", err))
	}

	p.observe(normStats, volStats, tickRes, barRes, time.Since(start))
	logger.Info("window committed",
		"files", len(remaining),
		"ticks", len(clean),
		"day_bars", len(bars),
		"duration", time.Since(start),
	)

	return len(remaining), nil
}

// fail counts a failed batch and passes the error through.
func (p *Pipeline) fail(err error) error {
	if p.metrics != nil {
		p.metrics.BatchesFailed.Inc()
	}
	return err
}

// observe records per-batch counters after a successful commit.
func (p *Pipeline) observe(normStats normalize.Stats, volStats volume.Stats, tickRes, barRes persist.Result, elapsed time.Duration) {
	if p.metrics == nil {
		return
	}
	m := p.metrics

	m.RowsLoaded.Add(float64(normStats.RawRows))
	m.RowsRemoved.WithLabelValues(metrics.ReasonCollapsed).Add(float64(normStats.Collapsed))
	m.RowsRemoved.WithLabelValues(metrics.ReasonFlatSeries).Add(float64(normStats.FlatRows))
	m.RowsRemoved.WithLabelValues(metrics.ReasonNegativeVolume).Add(float64(volStats.Negative))
	m.RowsRemoved.WithLabelValues(metrics.ReasonOversized).Add(float64(volStats.Oversized))

	m.RowsInserted.WithLabelValues("ticks").Add(float64(tickRes.Inserted))
	m.InsertConflicts.WithLabelValues("ticks").Add(float64(tickRes.Conflicts))
	m.RowsInserted.WithLabelValues("day_bars").Add(float64(barRes.Inserted))
	m.InsertConflicts.WithLabelValues("day_bars").Add(float64(barRes.Conflicts))

	m.BatchesCommitted.Inc()
	m.BatchDuration.Observe(elapsed.Seconds())
}
