package company

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/tvasseur/bourse-data/internal/model"
)

// srdPrefix marks deferred-settlement listing variants, excluded from
// rename detection.
const srdPrefix = "SRD"

// Store persists company identity mappings.
type Store interface {
	// Companies returns every known company.
	Companies(ctx context.Context) ([]model.Company, error)
	// Create inserts a company and returns its assigned id.
	Create(ctx context.Context, name, symbol string) (int64, error)
	// Rename updates a company's canonical name.
	Rename(ctx context.Context, id int64, name string) error
}

// Resolver maps (name, symbol) pairs to stable company ids.
type Resolver struct {
	store  Store
	logger *slog.Logger

	// Serializes id assignment: at most one resolution in flight, so two
	// batches first introducing the same symbol cannot mint duplicate ids.
	mu sync.Mutex
}

// NewResolver creates a Resolver over the given store.
func NewResolver(store Store, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{store: store, logger: logger}
}

// Resolve rewrites a cleaned tick table to company ids, creating and
// renaming companies as needed. Symbol and name do not survive into the
// output; the company id replaces them.
func (r *Resolver) Resolve(ctx context.Context, ticks []model.SymbolTick) ([]model.CleanTick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	known, err := r.store.Companies(ctx)
	if err != nil {
		return nil, fmt.Errorf("load companies: %w", err)
	}
	bySymbol := make(map[string]model.Company, len(known))
	for _, c := range known {
		bySymbol[c.Symbol] = c
	}

	var created, renamed int
	seen := make(map[[2]string]bool)

	for _, t := range ticks {
		pair := [2]string{t.Name, t.Symbol}
		if seen[pair] {
			continue
		}
		seen[pair] = true

		existing, ok := bySymbol[t.Symbol]
		if !ok {
			id, err := r.store.Create(ctx, t.Name, t.Symbol)
			if err != nil {
				return nil, fmt.Errorf("create company %s: %w", t.Symbol, err)
			}
			bySymbol[t.Symbol] = model.Company{ID: id, Name: t.Name, Symbol: t.Symbol}
			created++
			continue
		}

		if existing.Name != t.Name && !strings.HasPrefix(t.Name, srdPrefix) {
			if err := r.store.Rename(ctx, existing.ID, t.Name); err != nil {
				return nil, fmt.Errorf("rename company %d: %w", existing.ID, err)
			}
			existing.Name = t.Name
			bySymbol[t.Symbol] = existing
			renamed++
		}
	}

	out := make([]model.CleanTick, 0, len(ticks))
	for _, t := range ticks {
		out = append(out, model.CleanTick{
			Time:      t.Time,
			CompanyID: bySymbol[t.Symbol].ID,
			Price:     t.Price,
			Volume:    t.Volume,
		})
	}

	r.logger.Debug("resolved companies",
		"pairs", len(seen),
		"created", created,
		"renamed", renamed,
	)

	return out, nil
}
