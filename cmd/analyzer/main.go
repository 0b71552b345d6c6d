package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tvasseur/bourse-data/internal/company"
	"github.com/tvasseur/bourse-data/internal/config"
	"github.com/tvasseur/bourse-data/internal/database"
	"github.com/tvasseur/bourse-data/internal/ledger"
	"github.com/tvasseur/bourse-data/internal/loader"
	"github.com/tvasseur/bourse-data/internal/metrics"
	"github.com/tvasseur/bourse-data/internal/persist"
	"github.com/tvasseur/bourse-data/internal/pipeline"
	"github.com/tvasseur/bourse-data/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/analyzer.local.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting analyzer",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"source_dir", cfg.Source.Dir,
		"years", fmt.Sprintf("%d-%d", cfg.Source.FromYear, cfg.Source.ToYear),
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to database
	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	logger.Info("database connected")

	if err := database.EnsureSchema(ctx, pool); err != nil {
		logger.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	// Register metrics and start the metrics/health server
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler: createHTTPHandler(cfg.Metrics.Path, registry, pool),
	}
	go func() {
		logger.Info("starting metrics server", "port", cfg.Metrics.Port, "path", cfg.Metrics.Path)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Assemble the pipeline
	pipe := pipeline.New(
		cfg.Source.Dir,
		loader.New(loader.Config{Workers: cfg.Loader.Workers}, logger),
		ledger.New(pool, logger),
		company.NewResolver(company.NewPGStore(pool), logger),
		persist.New(persist.Config{
			Shards:    cfg.Persister.Shards,
			ChunkSize: cfg.Persister.ChunkSize,
		}, pool, logger),
		m,
		logger,
	)

	// Backfill oldest first so volume reconstruction sees complete months
	start := time.Now()
	totalFiles := 0
	failed := false

backfill:
	for year := cfg.Source.FromYear; year <= cfg.Source.ToYear; year++ {
		for month := 1; month <= 12; month++ {
			if ctx.Err() != nil {
				logger.Info("backfill interrupted", "year", year, "month", month)
				break backfill
			}
			n, err := pipe.StoreMonth(ctx, year, month)
			if err != nil {
				logger.Error("window failed",
					"year", year,
					"month", month,
					"error", err,
				)
				failed = true
				continue
			}
			totalFiles += n
		}
	}

	logger.Info("backfill complete",
		"files", totalFiles,
		"duration", time.Since(start),
	)

	// Graceful shutdown of metrics server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	metricsServer.Shutdown(shutdownCtx)

	logger.Info("analyzer stopped")
	if failed {
		os.Exit(1)
	}
}

// createHTTPHandler serves Prometheus metrics plus a database health probe.
func createHTTPHandler(metricsPath string, registry *prometheus.Registry, pool *pgxpool.Pool) http.Handler {
	mux := http.NewServeMux()

	mux.Handle(metricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string            `json:"status"`
			Components map[string]string `json:"components"`
		}{
			Status:     "healthy",
			Components: make(map[string]string),
		}

		if err := pool.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Components["timescaledb"] = "disconnected: " + err.Error()
		} else {
			health.Components["timescaledb"] = "connected"
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	return mux
}
