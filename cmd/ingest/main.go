// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

// Package main loads a TMDB CSV dump into the Filmatlas catalog.
//
// Usage:
//
//	INGEST_CSV_PATH=/data/tmdb_movies.csv filmatlas-ingest
//
// Ingestion is idempotent: re-running replaces catalog rows in place, so a
// fresh dump can be loaded over an old one. After ingesting, run the encode
// command to rebuild the recommendation snapshot.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/filmatlas/filmatlas/internal/config"
	"github.com/filmatlas/filmatlas/internal/database"
	"github.com/filmatlas/filmatlas/internal/ingest"
	"github.com/filmatlas/filmatlas/internal/logging"
)

func main() {
	csvPath := flag.String("csv", "", "path to the TMDB CSV dump (overrides INGEST_CSV_PATH)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *csvPath != "" {
		cfg.Ingest.CSVPath = *csvPath
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := ingest.NewImporter(db, &cfg.Ingest).Run(ctx)
	if err != nil {
		logging.Error().
			Err(err).
			Int64("rows", stats.RowsRead).
			Int64("inserted", stats.Inserted).
			Msg("Ingestion failed")
		if closeErr := db.Close(); closeErr != nil {
			logging.Error().Err(closeErr).Msg("Error closing database")
		}
		os.Exit(1)
	}

	logging.Info().
		Int64("rows", stats.RowsRead).
		Int64("inserted", stats.Inserted).
		Int64("skipped", stats.TotalSkipped()).
		Interface("skip_reasons", stats.Skipped).
		Msg("Ingestion finished")
}
