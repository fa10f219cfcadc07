// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

// Package ingest streams the raw TMDB movie dump CSV into the catalog
// table: rows are filtered (released, enough votes, has genres, not adult),
// cleaned, deduplicated, and batch-inserted into DuckDB.
package ingest

// Skip reasons recorded in Stats and in the ingest metrics.
const (
	SkipParseError   = "parse_error"
	SkipMissingField = "missing_field"
	SkipFiltered     = "filtered"
	SkipDuplicate    = "duplicate"
)

// Stats summarizes one ingestion run.
type Stats struct {
	RowsRead int64
	Inserted int64
	Skipped  map[string]int64
}

// TotalSkipped sums the skip counts across all reasons.
func (s Stats) TotalSkipped() int64 {
	var total int64
	for _, n := range s.Skipped {
		total += n
	}
	return total
}
