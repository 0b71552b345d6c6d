package config

// AnalyzerConfig is the root configuration for an analyzer run.
type AnalyzerConfig struct {
	Instance  InstanceConfig  `yaml:"instance"`
	Source    SourceConfig    `yaml:"source"`
	Database  DBConfig        `yaml:"database"`
	Loader    LoaderConfig    `yaml:"loader"`
	Persister PersisterConfig `yaml:"persister"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// InstanceConfig identifies this analyzer.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// SourceConfig locates the raw snapshot dumps.
type SourceConfig struct {
	Dir      string `yaml:"dir"`       // Root of the snapshot tree (one subdirectory per year)
	FromYear int    `yaml:"from_year"` // First year to backfill (inclusive)
	ToYear   int    `yaml:"to_year"`   // Last year to backfill (inclusive)
}

// DBConfig holds the TimescaleDB connection for the three output tables.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// LoaderConfig holds batch loader settings.
type LoaderConfig struct {
	// Workers is the number of file-loading partitions. 0 means NumCPU-1.
	Workers int `yaml:"workers"`
}

// PersisterConfig holds bulk persister settings.
type PersisterConfig struct {
	// Shards is the number of concurrent write partitions. 0 means NumCPU-1.
	Shards int `yaml:"shards"`
	// ChunkSize is the number of rows queued per database round trip.
	ChunkSize int `yaml:"chunk_size"`
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}
