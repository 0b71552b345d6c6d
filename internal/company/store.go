package company

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tvasseur/bourse-data/internal/model"
)

// PGStore is the pgx-backed Store over the companies table.
type PGStore struct {
	db *pgxpool.Pool
}

// NewPGStore creates a PGStore.
func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Companies(ctx context.Context) ([]model.Company, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, symbol FROM companies`)
	if err != nil {
		return nil, fmt.Errorf("query companies: %w", err)
	}
	defer rows.Close()

	var companies []model.Company
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Symbol); err != nil {
			return nil, fmt.Errorf("scan company row: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read company rows: %w", err)
	}
	return companies, nil
}

func (s *PGStore) Create(ctx context.Context, name, symbol string) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO companies (name, symbol) VALUES ($1, $2) RETURNING id`,
		name, symbol,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert company: %w", err)
	}
	return id, nil
}

func (s *PGStore) Rename(ctx context.Context, id int64, name string) error {
	if _, err := s.db.Exec(ctx,
		`UPDATE companies SET name = $1 WHERE id = $2`,
		name, id,
	); err != nil {
		return fmt.Errorf("update company name: %w", err)
	}
	return nil
}
