package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema holds the DDL for the analyzer's four tables, applied in order.
// The unique keys on ticks and day_bars make bulk inserts idempotent: a
// retried batch re-inserts the same natural keys and conflicts are dropped.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id     BIGSERIAL PRIMARY KEY,
		name   TEXT NOT NULL,
		symbol TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS ticks (
		time       TIMESTAMPTZ NOT NULL,
		company_id BIGINT      NOT NULL,
		price      REAL        NOT NULL,
		volume     INT         NOT NULL,
		UNIQUE (time, company_id)
	)`,
	`CREATE TABLE IF NOT EXISTS day_bars (
		day        DATE   NOT NULL,
		company_id BIGINT NOT NULL,
		open       REAL   NOT NULL,
		close      REAL   NOT NULL,
		high       REAL   NOT NULL,
		low        REAL   NOT NULL,
		mean       REAL   NOT NULL,
		std        REAL,
		volume     INT    NOT NULL,
		UNIQUE (day, company_id)
	)`,
	`CREATE TABLE IF NOT EXISTS file_done (
		name TEXT PRIMARY KEY
	)`,
}

// hypertables are best-effort: they require the timescaledb extension and
// are skipped silently on plain PostgreSQL.
var hypertables = []string{
	`SELECT create_hypertable('ticks', 'time', if_not_exists => TRUE)`,
	`SELECT create_hypertable('day_bars', 'day', if_not_exists => TRUE)`,
}

// EnsureSchema creates the output tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, ddl := range schema {
		if _, err := pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	for _, ddl := range hypertables {
		// Ignore errors: the extension may be absent on dev databases.
		_, _ = pool.Exec(ctx, ddl)
	}

	return nil
}
