// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

// Package main builds the recommendation snapshot from the catalog.
//
// It reads movie metadata from DuckDB, encodes it into a TF-IDF feature
// matrix, and writes the matrix and movie ID index to the paths configured
// under recommend.*. Run it after each ingest; the server loads the snapshot
// at startup and never rebuilds it online.
package main

import (
	"context"
	"time"

	"github.com/filmatlas/filmatlas/internal/config"
	"github.com/filmatlas/filmatlas/internal/database"
	"github.com/filmatlas/filmatlas/internal/logging"
	"github.com/filmatlas/filmatlas/internal/recommend"
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

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	start := time.Now()
	records, err := db.MovieFeatures(context.Background())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to read movie features")
	}
	if len(records) == 0 {
		logging.Fatal().Msg("Catalog is empty, run the ingest command first")
	}
	logging.Info().Int("movies", len(records)).Msg("Encoding catalog")

	matrix, ids, err := recommend.Encode(records)
	if err != nil {
		logging.Fatal().Err(err).Msg("Encoding failed")
	}

	if err := recommend.SaveMatrix(matrix, cfg.Recommend.MatrixPath); err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Recommend.MatrixPath).Msg("Failed to write feature matrix")
	}
	if err := recommend.SaveIDIndex(ids, cfg.Recommend.IDsPath); err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Recommend.IDsPath).Msg("Failed to write ID index")
	}

	logging.Info().
		Int("movies", matrix.Rows).
		Int("features", matrix.Cols).
		Str("matrix_path", cfg.Recommend.MatrixPath).
		Str("ids_path", cfg.Recommend.IDsPath).
		Dur("elapsed", time.Since(start)).
		Msg("Snapshot written")
}
