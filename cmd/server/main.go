// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

// Package main is the entry point for the Ashgrid server.
//
// Ashgrid serves read-only analytics over a DuckDB store of historical
// wildfire incidents: paginated incident listings, temporal and spatial
// aggregations, summary statistics, and a cause-classification endpoint
// backed by a pre-trained multinomial model.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered loading from defaults, config.yaml, and
//     environment variables (Koanf v2)
//  2. Database: open DuckDB and ensure the incidents schema exists
//  3. Predictor: load the cause-classifier artifact (placeholder mode
//     when the artifact is missing or invalid)
//  4. HTTP API: Chi router with CORS, rate limiting, and Prometheus
//     instrumentation
//  5. Supervisor tree: suture/v4 supervises the HTTP server and the
//     periodic DuckDB checkpointer
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (HTTP_PORT, DUCKDB_PATH, LOG_LEVEL, ...)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: in-flight
// requests are drained for up to HTTP_SHUTDOWN_TIMEOUT, the supervisor
// tree winds down its services, and the database is checkpointed and
// closed before exit.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashgrid/ashgrid/internal/api"
	"github.com/ashgrid/ashgrid/internal/config"
	"github.com/ashgrid/ashgrid/internal/database"
	"github.com/ashgrid/ashgrid/internal/logging"
	"github.com/ashgrid/ashgrid/internal/predictor"
	"github.com/ashgrid/ashgrid/internal/supervisor"
	"github.com/ashgrid/ashgrid/internal/supervisor/services"
)

const checkpointInterval = 15 * time.Minute

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Bool("read_only", cfg.Database.ReadOnly).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Str("path", db.GetDatabasePath()).Msg("Database initialized successfully")

	if count, err := db.GetRecordCount(context.Background()); err != nil {
		logging.Warn().Err(err).Msg("Failed to count incident records")
	} else {
		logging.Info().Int64("records", count).Msg("Incident store ready")
	}

	// Load the cause-classifier artifact. A missing or invalid artifact
	// is not fatal: the predictor degrades to placeholder responses.
	pred := predictor.New(cfg.Predictor.ModelPath)
	if pred.Loaded() {
		logging.Info().Str("model_path", cfg.Predictor.ModelPath).Msg("Cause-classifier model loaded")
	} else {
		logging.Warn().Str("model_path", cfg.Predictor.ModelPath).Msg("Running without cause-classifier model")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := api.NewHandler(db, cfg, pred)
	chiMw := api.NewChiMiddlewareFromConfig(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(handler, chiMw)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Bridge zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewTree(slogLogger, supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Maintenance layer: periodic checkpointing keeps the WAL bounded on
	// long-running deployments. Pointless when the store is read-only.
	if !cfg.Database.ReadOnly {
		tree.AddMaintenanceService(services.NewCheckpointService(db, checkpointInterval))
		logging.Info().Dur("interval", checkpointInterval).Msg("Checkpoint service added to supervisor tree")
	}

	// API layer
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
