package persist

import (
	"context"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/tvasseur/bourse-data/internal/model"
	"github.com/tvasseur/bourse-data/internal/partition"
)

// Config holds bulk persister settings.
type Config struct {
	// Shards is the number of concurrent write partitions. 0 means NumCPU-1.
	Shards int
	// ChunkSize is the number of rows queued per database round trip.
	ChunkSize int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Shards:    0,
		ChunkSize: 1000,
	}
}

// Result reports what one bulk write did.
type Result struct {
	Inserted  int64
	Conflicts int64 // Rows skipped because their natural key already existed
}

// Persister writes cleaned tables to storage in parallel shards.
type Persister struct {
	cfg    Config
	db     *pgxpool.Pool
	logger *slog.Logger
}

// New creates a Persister over the given pool.
func New(cfg Config, db *pgxpool.Pool, logger *slog.Logger) *Persister {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = DefaultConfig().ChunkSize
	}
	return &Persister{cfg: cfg, db: db, logger: logger}
}

// WriteTicks appends cleaned ticks to the ticks table.
func (p *Persister) WriteTicks(ctx context.Context, ticks []model.CleanTick) (Result, error) {
	return p.write(ctx, "ticks", len(ticks), func(batch *pgx.Batch, lo, hi int) {
		for _, t := range ticks[lo:hi] {
			batch.Queue(`
				INSERT INTO ticks (time, company_id, price, volume)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (time, company_id) DO NOTHING
			`, t.Time, t.CompanyID, t.Price, t.Volume)
		}
	})
}

// WriteDayBars appends day bars to the day_bars table. A NaN std persists
// as NULL.
func (p *Persister) WriteDayBars(ctx context.Context, bars []model.DayBar) (Result, error) {
	return p.write(ctx, "day_bars", len(bars), func(batch *pgx.Batch, lo, hi int) {
		for _, b := range bars[lo:hi] {
			var std *float64
			if !math.IsNaN(b.Std) {
				std = &b.Std
			}
			batch.Queue(`
				INSERT INTO day_bars (day, company_id, open, close, high, low, mean, std, volume)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				ON CONFLICT (day, company_id) DO NOTHING
			`, b.Day, b.CompanyID, b.Open, b.Close, b.High, b.Low, b.Mean, std, b.Volume)
		}
	})
}

// write shards [0, total) by row range and writes the shards concurrently.
// queue fills a pgx.Batch with the rows of one chunk.
func (p *Persister) write(ctx context.Context, table string, total int, queue func(batch *pgx.Batch, lo, hi int)) (Result, error) {
	if total == 0 {
		return Result{}, nil
	}

	shards := p.cfg.Shards
	if shards <= 0 {
		shards = partition.DefaultWorkers()
	}

	ranges := partition.Ranges(total, shards)

	start := time.Now()
	var inserted, conflicts atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	for _, r := range ranges {
		r := r
		g.Go(func() error {
			ins, conf, err := p.writeRange(ctx, r.Lo, r.Hi, queue)
			if err != nil {
				return err
			}
			inserted.Add(ins)
			conflicts.Add(conf)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Inserted: inserted.Load(), Conflicts: conflicts.Load()}
	p.logger.Debug("bulk write complete",
		"table", table,
		"rows", total,
		"inserted", res.Inserted,
		"conflicts", res.Conflicts,
		"shards", len(ranges),
		"duration", time.Since(start),
	)
	return res, nil
}

// writeRange writes one shard, chunked by ChunkSize rows per round trip.
func (p *Persister) writeRange(ctx context.Context, lo, hi int, queue func(batch *pgx.Batch, lo, hi int)) (inserted, conflicts int64, err error) {
	for start := lo; start < hi; start += p.cfg.ChunkSize {
		end := start + p.cfg.ChunkSize
		if end > hi {
			end = hi
		}

		batch := &pgx.Batch{}
		queue(batch, start, end)

		results := p.db.SendBatch(ctx, batch)
		for i := start; i < end; i++ {
			ct, err := results.Exec()
			if err != nil {
				results.Close()
				return 0, 0, err
			}
			if ct.RowsAffected() == 0 {
				conflicts++
			} else {
				inserted++
			}
		}
		if err := results.Close(); err != nil {
			return 0, 0, err
		}
	}
	return inserted, conflicts, nil
}
