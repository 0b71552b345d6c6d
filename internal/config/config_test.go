package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	yaml := `
instance:
  id: test-analyzer
source:
  dir: /data/boursorama
  from_year: 2020
  to_year: 2021
database:
  host: localhost
  port: 5432
  name: bourse
  user: testuser
  password: testpass
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Instance.ID != "test-analyzer" {
		t.Errorf("Instance.ID = %q, want %q", cfg.Instance.ID, "test-analyzer")
	}
	if cfg.Source.Dir != "/data/boursorama" {
		t.Errorf("Source.Dir = %q, want %q", cfg.Source.Dir, "/data/boursorama")
	}
	if cfg.Source.FromYear != 2020 {
		t.Errorf("Source.FromYear = %d, want 2020", cfg.Source.FromYear)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "localhost")
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "secret123")

	yaml := `
instance:
  id: test-analyzer
database:
  host: localhost
  name: bourse
  user: testuser
  password: ${TEST_DB_PASSWORD}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Password != "secret123" {
		t.Errorf("Database.Password = %q, want %q", cfg.Database.Password, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	yaml := `
instance:
  id: test-analyzer
database:
  host: localhost
  name: bourse
  user: testuser
  password: testpass
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Source.Dir != DefaultSourceDir {
		t.Errorf("Source.Dir = %q, want default %q", cfg.Source.Dir, DefaultSourceDir)
	}
	if cfg.Database.Port != DefaultDBPort {
		t.Errorf("Database.Port = %d, want default %d", cfg.Database.Port, DefaultDBPort)
	}
	if cfg.Database.SSLMode != DefaultDBSSLMode {
		t.Errorf("Database.SSLMode = %q, want default %q", cfg.Database.SSLMode, DefaultDBSSLMode)
	}
	if cfg.Database.MaxConns != DefaultMaxConns {
		t.Errorf("Database.MaxConns = %d, want default %d", cfg.Database.MaxConns, DefaultMaxConns)
	}
	if cfg.Persister.ChunkSize != DefaultChunkSize {
		t.Errorf("Persister.ChunkSize = %d, want default %d", cfg.Persister.ChunkSize, DefaultChunkSize)
	}
	if cfg.Metrics.Port != DefaultMetricsPort {
		t.Errorf("Metrics.Port = %d, want default %d", cfg.Metrics.Port, DefaultMetricsPort)
	}
}

func TestLoadAndValidate_MissingInstanceID(t *testing.T) {
	yaml := `
database:
  host: localhost
  name: bourse
  user: testuser
  password: testpass
`
	path := writeTempFile(t, yaml)

	if _, err := LoadAndValidate(path); err == nil {
		t.Error("LoadAndValidate should fail without instance.id")
	}
}

func TestValidate_YearRange(t *testing.T) {
	yaml := `
instance:
  id: test-analyzer
source:
  from_year: 2023
  to_year: 2019
database:
  host: localhost
  name: bourse
  user: testuser
  password: testpass
`
	path := writeTempFile(t, yaml)

	if _, err := LoadAndValidate(path); err == nil {
		t.Error("LoadAndValidate should fail when from_year > to_year")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Load should fail for a missing file")
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}
