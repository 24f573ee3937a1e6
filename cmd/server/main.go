// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

// Package main is the entry point for the Pralina server.
//
// Pralina is a self-hosted storefront for an artisan confectionery with a
// built-in product recommendation engine. It serves a catalog of pralines,
// truffles, bars, and gift boxes, records customer interactions, and computes
// personalized recommendations over them.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Database: Initialize embedded DuckDB for catalog and interaction storage
//  3. Recommendation Engine: Register strategies (collaborative, content, clustering, clean, popularity)
//  4. HTTP Server: REST API under /api/v1 plus Prometheus /metrics
//  5. Supervisor: suture tree restarts the HTTP service on failure
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (PORT, DUCKDB_PATH, LOG_LEVEL, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (bounded by SERVER_SHUTDOWN_TIMEOUT)
//   - Closes the database connection
//
// # Example Usage
//
// Development with an in-memory database and demo catalog:
//
//	export DUCKDB_PATH=:memory:
//	export SEED_DEMO_DATA=true
//	export LOG_FORMAT=console
//	./pralina
//
// Production:
//
//	export DUCKDB_PATH=/data/pralina.duckdb
//	export PORT=8880
//	./pralina
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/pralina/internal/api"
	"github.com/tomtom215/pralina/internal/config"
	"github.com/tomtom215/pralina/internal/database"
	"github.com/tomtom215/pralina/internal/logging"
	"github.com/tomtom215/pralina/internal/recommend"
	"github.com/tomtom215/pralina/internal/recommend/strategies"
	"github.com/tomtom215/pralina/internal/supervisor"
	"github.com/tomtom215/pralina/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Int("port", cfg.Server.Port).
		Msg("Starting Pralina")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	if cfg.Database.SeedDemoData {
		if err := db.SeedDemoData(context.Background()); err != nil {
			if closeErr := db.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing database")
			}
			logging.Fatal().Err(err).Msg("Failed to seed demo data")
		}
		logging.Info().Msg("Demo catalog seeded (SEED_DEMO_DATA=true)")
	}

	engine := recommend.NewEngine(db.Catalog(), db.Interactions(), cfg.Recommend.DefaultLimit)
	for _, s := range strategies.Default() {
		engine.Register(s)
	}
	logging.Info().Strs("methods", engine.Methods()).Msg("Recommendation engine ready")

	handlers := api.NewHandlers(db.Catalog(), db.Interactions(), engine, cfg)
	router := api.NewRouter(handlers, &cfg.Server)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for the supervisor's event hook
	tree := supervisor.New("pralina", logging.NewSlogLogger(), supervisor.Config{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.Add(services.NewHTTPServerService("http-server", server, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := tree.ServeBackground(ctx)
	logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		cancel()
		if err := <-errCh; err != nil && err != context.Canceled {
			logging.Error().Err(err).Msg("Supervisor exited with error")
		}
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			logging.Fatal().Err(err).Msg("Supervisor exited unexpectedly")
		}
	}

	logging.Info().Msg("Pralina stopped")
}
