// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

// Package main is the entry point for the Cinegraph server.
//
// Cinegraph is a self-hosted social movie catalogue: users register, rate
// films with likes, befriend each other, write reviews and receive
// collaborative-filtering recommendations based on taste overlap.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered loading via Koanf v2 (env > config file > defaults)
//  2. Database: DuckDB with the catalogue schema and seeded reference data
//  3. Services: catalog, friend graph, activity feed, ranking, reviews and
//     the recommendation engine, all backed by the same store
//  4. HTTP server: Chi router with request-id, CORS, rate limiting and
//     Prometheus instrumentation
//
// # Configuration
//
// Key environment variables (see internal/config for the full set):
//   - HTTP_PORT: listen port (default 8080)
//   - DUCKDB_PATH: database file, ":memory:" for ephemeral runs
//   - LOG_LEVEL, LOG_FORMAT: zerolog settings
//   - RECOMMEND_MIN_OVERLAP: minimum shared likes for taste neighbours
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops accepting
// connections, waits for in-flight requests up to the configured timeout,
// then closes the database.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cinegraph/cinegraph/internal/api"
	"github.com/cinegraph/cinegraph/internal/catalog"
	"github.com/cinegraph/cinegraph/internal/config"
	"github.com/cinegraph/cinegraph/internal/database"
	"github.com/cinegraph/cinegraph/internal/logging"
	"github.com/cinegraph/cinegraph/internal/ranking"
	"github.com/cinegraph/cinegraph/internal/recommend"
	"github.com/cinegraph/cinegraph/internal/reviews"
	"github.com/cinegraph/cinegraph/internal/social"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
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
		Msg("Starting Cinegraph")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized")

	handler := api.NewHandler(
		catalog.New(db),
		social.NewGraph(db),
		social.NewFeed(db, cfg.API.MaxPageSize),
		ranking.New(db, cfg.API.DefaultTopCount),
		recommend.New(db, cfg.Recommend.MinOverlap),
		reviews.New(db, cfg.API.DefaultTopCount),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.Routes(handler, db, &cfg.API),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}

	logging.Info().Msg("Cinegraph stopped")
}
