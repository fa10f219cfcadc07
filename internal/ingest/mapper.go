// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/filmatlas/filmatlas/internal/models"
)

// requiredColumns must all be present in the CSV header.
var requiredColumns = []string{
	"id", "title", "genres", "original_language", "release_date",
	"vote_average", "vote_count", "status", "adult",
}

// optionalColumns are used when present and default to empty otherwise.
var optionalColumns = []string{"keywords", "overview", "runtime", "popularity"}

// headerIndex maps column names to positions, validating the required set.
func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("csv header missing required column %q", col)
		}
	}
	return index, nil
}

// rowMapper converts raw CSV records into catalog rows using the header
// layout discovered at open time.
type rowMapper struct {
	index        map[string]int
	minVoteCount int64
}

func (m *rowMapper) field(record []string, name string) string {
	i, ok := m.index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// mapRow converts one CSV record. The second return value is a skip reason
// ("" when the row mapped successfully).
func (m *rowMapper) mapRow(record []string) (models.Movie, string) {
	idRaw := m.field(record, "id")
	id, err := strconv.ParseInt(idRaw, 10, 64)
	if err != nil || id <= 0 {
		return models.Movie{}, SkipParseError
	}

	title := m.field(record, "title")
	genres := normalizeList(m.field(record, "genres"))
	if title == "" || genres == "" {
		return models.Movie{}, SkipMissingField
	}

	voteCount, err := strconv.ParseInt(m.field(record, "vote_count"), 10, 64)
	if err != nil {
		return models.Movie{}, SkipParseError
	}

	// Catalog filters: only released, non-adult movies with enough votes
	// make it in. Everything else is noise for recommendations.
	if !strings.EqualFold(m.field(record, "status"), "released") {
		return models.Movie{}, SkipFiltered
	}
	if strings.EqualFold(m.field(record, "adult"), "true") {
		return models.Movie{}, SkipFiltered
	}
	if voteCount < m.minVoteCount {
		return models.Movie{}, SkipFiltered
	}

	return models.Movie{
		ID:               id,
		Title:            title,
		Genres:           genres,
		Keywords:         normalizeList(m.field(record, "keywords")),
		OriginalLanguage: strings.ToLower(m.field(record, "original_language")),
		ReleaseDate:      cleanDate(m.field(record, "release_date")),
		Overview:         m.field(record, "overview"),
		Runtime:          parseIntDefault(m.field(record, "runtime")),
		Popularity:       parseFloatDefault(m.field(record, "popularity")),
		VoteAverage:      parseFloatDefault(m.field(record, "vote_average")),
		VoteCount:        voteCount,
	}, ""
}

// normalizeList trims and lower-cases a comma-separated list, dropping
// empty items: "Action, Crime" -> "action,crime".
func normalizeList(raw string) string {
	if raw == "" {
		return ""
	}
	parts := strings.Split(raw, ",")
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, ",")
}

// cleanDate keeps dates that start with a plausible YYYY-MM-DD shape and
// blanks everything else. The feature encoder treats blank as unknown.
func cleanDate(raw string) string {
	if len(raw) < 10 {
		return ""
	}
	raw = raw[:10]
	for i, r := range raw {
		switch i {
		case 4, 7:
			if r != '-' {
				return ""
			}
		default:
			if r < '0' || r > '9' {
				return ""
			}
		}
	}
	return raw
}

func parseIntDefault(raw string) int {
	// Runtime arrives as "142" or "142.0" depending on the dump.
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f > 0 {
		return int(f)
	}
	return 0
}

func parseFloatDefault(raw string) float64 {
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return 0
}
