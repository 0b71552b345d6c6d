package database

import (
	"fmt"
	"net/url"

	"github.com/tvasseur/bourse-data/internal/config"
)

// BuildConnString builds a PostgreSQL connection URL from config.
// Pool sizing rides in the URL so one string fully describes the pool;
// the sslmode default is applied at config load, not here.
func BuildConnString(cfg config.DBConfig) string {
	// URL-encode password to handle special characters
	escapedPassword := url.QueryEscape(cfg.Password)

	s := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		escapedPassword,
		cfg.Host,
		cfg.Port,
		cfg.Name,
		cfg.SSLMode,
	)
	if cfg.MaxConns > 0 {
		s += fmt.Sprintf("&pool_max_conns=%d", cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		s += fmt.Sprintf("&pool_min_conns=%d", cfg.MinConns)
	}
	return s
}
