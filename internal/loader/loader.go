package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tvasseur/bourse-data/internal/model"
	"github.com/tvasseur/bourse-data/internal/partition"
)

// ErrNoData signals that the filtered file list was empty, so downstream
// stages can be skipped cheaply. It is a normal outcome, not a failure.
var ErrNoData = errors.New("no snapshot data for window")

// Config holds batch loader settings.
type Config struct {
	// Workers is the number of file partitions loaded in parallel.
	// 0 means one partition per CPU, minus one.
	Workers int
}

// Loader reads raw snapshot files into an in-memory tick table.
type Loader struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Loader.
func New(cfg Config, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{cfg: cfg, logger: logger}
}

// List returns the snapshot file identifiers for one year/month window,
// in the year's directory under dir.
func (l *Loader) List(dir string, year, month int) ([]string, error) {
	pattern := filepath.Join(dir, fmt.Sprintf("%d", year), fmt.Sprintf("* %d-%02d*", year, month))
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	sort.Strings(files)
	return files, nil
}

// Load reads every file into a single RawTick table sorted by timestamp.
// The file list is statically partitioned across workers with no shared
// mutable state; partition results are concatenated, then sorted to restore
// the chronological order the volume reconstructor depends on.
func (l *Loader) Load(ctx context.Context, files []string) ([]model.RawTick, error) {
	if len(files) == 0 {
		return nil, ErrNoData
	}

	workers := l.cfg.Workers
	if workers <= 0 {
		workers = partition.DefaultWorkers()
	}

	start := time.Now()
	chunks := partition.Split(files, workers)
	results := make([][]model.RawTick, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			ticks, err := l.loadPartition(ctx, chunk)
			if err != nil {
				return err
			}
			results[i] = ticks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, r := range results {
		total += len(r)
	}
	ticks := make([]model.RawTick, 0, total)
	for _, r := range results {
		ticks = append(ticks, r...)
	}

	sort.SliceStable(ticks, func(i, j int) bool {
		return ticks[i].Time.Before(ticks[j].Time)
	})

	l.logger.Debug("loaded snapshot files",
		"files", len(files),
		"rows", len(ticks),
		"workers", len(chunks),
		"duration", time.Since(start),
	)

	return ticks, nil
}

// loadPartition reads one partition of the file list sequentially.
func (l *Loader) loadPartition(ctx context.Context, files []string) ([]model.RawTick, error) {
	var ticks []model.RawTick
	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rows, err := l.readSnapshot(file)
		if err != nil {
			return nil, err
		}
		ticks = append(ticks, rows...)
	}
	return ticks, nil
}
