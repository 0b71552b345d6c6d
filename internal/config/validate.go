package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *AnalyzerConfig) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	if c.Source.Dir == "" {
		return errors.New("source.dir is required")
	}
	if c.Source.FromYear > c.Source.ToYear {
		return fmt.Errorf("source.from_year (%d) cannot exceed to_year (%d)",
			c.Source.FromYear, c.Source.ToYear)
	}

	if err := c.Database.validate("database"); err != nil {
		return err
	}

	if c.Loader.Workers < 0 {
		return errors.New("loader.workers must be >= 0")
	}

	if c.Persister.Shards < 0 {
		return errors.New("persister.shards must be >= 0")
	}
	if c.Persister.ChunkSize < 1 {
		return errors.New("persister.chunk_size must be >= 1")
	}

	if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port)
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
