package config

// Default values for optional configuration fields.
const (
	DefaultSourceDir   = "data/boursorama"
	DefaultFromYear    = 2019
	DefaultToYear      = 2023
	DefaultDBPort      = 5432
	DefaultDBSSLMode   = "prefer"
	DefaultMaxConns    = 10
	DefaultMinConns    = 2
	DefaultChunkSize   = 1000
	DefaultMetricsPort = 9090
	DefaultMetricsPath = "/metrics"
)

func (c *AnalyzerConfig) applyDefaults() {
	// Source defaults
	if c.Source.Dir == "" {
		c.Source.Dir = DefaultSourceDir
	}
	if c.Source.FromYear == 0 {
		c.Source.FromYear = DefaultFromYear
	}
	if c.Source.ToYear == 0 {
		c.Source.ToYear = DefaultToYear
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Persister defaults
	if c.Persister.ChunkSize == 0 {
		c.Persister.ChunkSize = DefaultChunkSize
	}

	// Metrics defaults
	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}
