// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

// Package main is the Filmatlas API server.
//
// Filmatlas is a self-hosted movie tracking backend: users keep a watched
// history and a watchlist over a TMDB-derived catalog and get content-based
// recommendations computed from TF-IDF feature vectors.
//
// The server initializes in order:
//
//  1. Configuration: Koanf v2 layered from defaults, config.yaml, and
//     environment variables
//  2. Logging: zerolog, JSON or console format
//  3. Database: DuckDB catalog and per-user tracking tables
//  4. Recommendation engine: loads the feature matrix snapshot produced by
//     the encode command (required when recommendations are enabled)
//  5. HTTP server: chi router under a suture supervision tree
//
// The catalog is populated offline by the ingest command and encoded by the
// encode command; the server itself only reads movie rows.
//
// Shutdown on SIGINT/SIGTERM is graceful: the supervisor cancels the HTTP
// service, which stops accepting connections and drains in-flight requests
// within the shutdown timeout.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/filmatlas/filmatlas/internal/api"
	"github.com/filmatlas/filmatlas/internal/auth"
	"github.com/filmatlas/filmatlas/internal/config"
	"github.com/filmatlas/filmatlas/internal/database"
	"github.com/filmatlas/filmatlas/internal/logging"
	"github.com/filmatlas/filmatlas/internal/metrics"
	"github.com/filmatlas/filmatlas/internal/recommend"
	"github.com/filmatlas/filmatlas/internal/supervisor"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config is not available yet, use the default logger.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Bool("recommendations", cfg.Recommend.Enabled).
		Msg("Starting Filmatlas")

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

	// The recommendation engine is loaded up front. A missing or corrupt
	// snapshot is a deployment error, not something to limp past.
	var engine *recommend.Engine
	if cfg.Recommend.Enabled {
		engine, err = recommend.NewEngine(cfg.Recommend.MatrixPath, cfg.Recommend.IDsPath, logging.Logger())
		if err != nil {
			if closeErr := db.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing database")
			}
			logging.Fatal().Err(err).Msg("Failed to load recommendation snapshot (run the encode command first)")
		}
		movies, features := engine.Size()
		metrics.RecommendCatalogSize.Set(float64(movies))
		logging.Info().
			Int("movies", movies).
			Int("features", features).
			Msg("Recommendation engine loaded")
	} else {
		logging.Info().Msg("Recommendations disabled")
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error().Err(closeErr).Msg("Error closing database")
		}
		logging.Fatal().Err(err).Msg("Failed to initialize token manager")
	}
	handler := api.NewHandler(db, engine, jwtManager, cfg)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           api.NewRouter(handler),
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	tree := supervisor.New(logging.NewSlogLogger(), supervisor.Config{
		ShutdownTimeout: shutdownTimeout,
	})
	tree.Add(supervisor.NewHTTPService(server, shutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	if unstopped, err := tree.UnstoppedServiceReport(); err == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("Filmatlas stopped")
}
