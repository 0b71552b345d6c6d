package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ledger reads and appends the file_done set.
type Ledger struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// New creates a Ledger over the given pool.
func New(db *pgxpool.Pool, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{db: db, logger: logger}
}

// AlreadyProcessed returns the set of file identifiers committed so far.
func (l *Ledger) AlreadyProcessed(ctx context.Context) (map[string]struct{}, error) {
	rows, err := l.db.Query(ctx, `SELECT name FROM file_done`)
	if err != nil {
		return nil, fmt.Errorf("query file_done: %w", err)
	}
	defer rows.Close()

	done := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan file_done row: %w", err)
		}
		done[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read file_done rows: %w", err)
	}

	return done, nil
}

// MarkProcessed appends file identifiers to the ledger in one transaction.
// Either every file is marked or none is; a failure leaves the ledger
// untouched so the whole batch can be retried.
func (l *Ledger) MarkProcessed(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	tx, err := l.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin ledger transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, name := range names {
		batch.Queue(`INSERT INTO file_done (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	}

	results := tx.SendBatch(ctx, batch)
	for range names {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("insert file_done row: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close ledger batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit ledger transaction: %w", err)
	}

	l.logger.Debug("marked files processed", "count", len(names))
	return nil
}

// Filter removes files already present in the done set.
func Filter(files []string, done map[string]struct{}) []string {
	remaining := make([]string, 0, len(files))
	for _, f := range files {
		if _, ok := done[f]; !ok {
			remaining = append(remaining, f)
		}
	}
	return remaining
}
