// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/filmatlas/filmatlas/internal/config"
	"github.com/filmatlas/filmatlas/internal/database"
	"github.com/filmatlas/filmatlas/internal/logging"
	"github.com/filmatlas/filmatlas/internal/metrics"
	"github.com/filmatlas/filmatlas/internal/models"
)

// progressLogInterval controls how often a progress line is emitted.
const progressLogInterval = 50_000

// Importer streams a TMDB CSV dump into the catalog.
type Importer struct {
	db  *database.DB
	cfg *config.IngestConfig
}

// NewImporter creates an importer writing into db.
func NewImporter(db *database.DB, cfg *config.IngestConfig) *Importer {
	return &Importer{db: db, cfg: cfg}
}

// Run ingests the configured CSV file. It is resumable in the sense that
// re-running replaces existing catalog rows rather than duplicating them.
func (imp *Importer) Run(ctx context.Context) (Stats, error) {
	stats := Stats{Skipped: make(map[string]int64)}

	f, err := os.Open(imp.cfg.CSVPath)
	if err != nil {
		return stats, fmt.Errorf("failed to open csv: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // TMDB dumps have ragged rows
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return stats, fmt.Errorf("failed to read csv header: %w", err)
	}
	index, err := headerIndex(header)
	if err != nil {
		return stats, err
	}
	mapper := &rowMapper{index: index, minVoteCount: int64(imp.cfg.MinVoteCount)}

	logging.Info().Str("path", imp.cfg.CSVPath).Msg("starting catalog ingestion")
	start := time.Now()

	seen := make(map[int64]struct{})
	batch := make([]models.Movie, 0, imp.cfg.BatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		batchStart := time.Now()
		if err := imp.db.InsertMovies(ctx, batch); err != nil {
			return fmt.Errorf("batch insert failed after %d rows: %w", stats.Inserted, err)
		}
		metrics.IngestBatchDuration.Observe(time.Since(batchStart).Seconds())
		stats.Inserted += int64(len(batch))
		batch = batch[:0]
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("ingestion canceled: %w", err)
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			stats.RowsRead++
			stats.Skipped[SkipParseError]++
			metrics.IngestRowsSkipped.WithLabelValues(SkipParseError).Inc()
			continue
		}

		stats.RowsRead++
		metrics.IngestRowsProcessed.Inc()
		if stats.RowsRead%progressLogInterval == 0 {
			logging.Info().
				Int64("rows", stats.RowsRead).
				Int64("inserted", stats.Inserted).
				Msg("ingestion progress")
		}

		movie, skip := mapper.mapRow(record)
		if skip != "" {
			stats.Skipped[skip]++
			metrics.IngestRowsSkipped.WithLabelValues(skip).Inc()
			continue
		}
		if _, dup := seen[movie.ID]; dup {
			stats.Skipped[SkipDuplicate]++
			metrics.IngestRowsSkipped.WithLabelValues(SkipDuplicate).Inc()
			continue
		}
		seen[movie.ID] = struct{}{}

		batch = append(batch, movie)
		if len(batch) >= imp.cfg.BatchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}

		if imp.cfg.MaxMovies > 0 && stats.Inserted+int64(len(batch)) >= int64(imp.cfg.MaxMovies) {
			logging.Warn().Int("max_movies", imp.cfg.MaxMovies).Msg("catalog cap reached, stopping ingestion")
			break
		}
	}

	if err := flush(); err != nil {
		return stats, err
	}

	logging.Info().
		Int64("rows", stats.RowsRead).
		Int64("inserted", stats.Inserted).
		Int64("skipped", stats.TotalSkipped()).
		Dur("elapsed", time.Since(start)).
		Msg("catalog ingestion complete")
	return stats, nil
}
