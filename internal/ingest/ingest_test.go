// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/filmatlas/filmatlas/internal/config"
	"github.com/filmatlas/filmatlas/internal/database"
)

const testCSV = `id,title,genres,keywords,original_language,release_date,overview,runtime,popularity,vote_average,vote_count,status,adult
603,The Matrix,"Action, Science Fiction","simulation, dystopia",en,1999-03-31,A hacker learns the truth.,136,82.5,8.2,25000,Released,False
604,The Matrix Reloaded,"Action, Science Fiction",simulation,en,2003-05-15,,138,55.1,7.0,12000,Released,False
1,Unreleased Thing,Drama,,en,2030-01-01,,0,1.0,0,0,Post Production,False
2,Adult Thing,Drama,,en,2001-01-01,,90,1.0,5.0,100,Released,True
3,No Genres,,,en,2001-01-01,,90,1.0,5.0,100,Released,False
4,Low Votes,Drama,,en,2001-01-01,,90,1.0,5.0,1,Released,False
bogus,Bad ID,Drama,,en,2001-01-01,,90,1.0,5.0,100,Released,False
603,The Matrix Dupe,Action,,en,1999-03-31,,136,82.5,8.2,25000,Released,False
5,Bad Date,Drama,,en,sometime,,90,1.0,5.0,100,Released,False
`

func newTestImporter(t *testing.T, csvContent string, minVotes int) (*Importer, *database.DB) {
	t.Helper()
	db, err := database.New(&config.DatabaseConfig{Path: "", MaxMemory: "256MB", Threads: 1})
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	path := filepath.Join(t.TempDir(), "movies.csv")
	if err := os.WriteFile(path, []byte(csvContent), 0o600); err != nil {
		t.Fatal(err)
	}

	return NewImporter(db, &config.IngestConfig{
		CSVPath:      path,
		BatchSize:    2,
		MaxMovies:    0,
		MinVoteCount: minVotes,
	}), db
}

func TestRun_FiltersAndCleans(t *testing.T) {
	imp, db := newTestImporter(t, testCSV, 10)
	ctx := context.Background()

	stats, err := imp.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// 603, 604 and 5 survive; unreleased, adult, no-genres, low-votes,
	// bad-id, and the duplicate 603 are skipped.
	if stats.Inserted != 3 {
		t.Errorf("Inserted = %d, want 3 (skipped: %v)", stats.Inserted, stats.Skipped)
	}
	if stats.Skipped[SkipFiltered] != 3 {
		t.Errorf("filtered = %d, want 3", stats.Skipped[SkipFiltered])
	}
	if stats.Skipped[SkipParseError] != 1 {
		t.Errorf("parse errors = %d, want 1", stats.Skipped[SkipParseError])
	}
	if stats.Skipped[SkipMissingField] != 1 {
		t.Errorf("missing field = %d, want 1", stats.Skipped[SkipMissingField])
	}
	if stats.Skipped[SkipDuplicate] != 1 {
		t.Errorf("duplicates = %d, want 1", stats.Skipped[SkipDuplicate])
	}

	movie, err := db.GetMovie(ctx, 603)
	if err != nil {
		t.Fatalf("GetMovie(603): %v", err)
	}
	if movie.Title != "The Matrix" {
		t.Errorf("title = %q, want The Matrix (first occurrence wins)", movie.Title)
	}
	if movie.Genres != "action,science fiction" {
		t.Errorf("genres = %q, want normalized lowercase list", movie.Genres)
	}
	if movie.Keywords != "simulation,dystopia" {
		t.Errorf("keywords = %q, want normalized list", movie.Keywords)
	}
	if movie.Runtime != 136 || movie.VoteCount != 25000 {
		t.Errorf("numeric fields = %d/%d, want 136/25000", movie.Runtime, movie.VoteCount)
	}

	// The malformed release date was blanked, not rejected.
	badDate, err := db.GetMovie(ctx, 5)
	if err != nil {
		t.Fatalf("GetMovie(5): %v", err)
	}
	if badDate.ReleaseDate != "" {
		t.Errorf("bad date = %q, want blanked", badDate.ReleaseDate)
	}
}

func TestRun_Rerunnable(t *testing.T) {
	imp, db := newTestImporter(t, testCSV, 10)
	ctx := context.Background()

	if _, err := imp.Run(ctx); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if _, err := imp.Run(ctx); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	count, err := db.CountMovies(ctx)
	if err != nil {
		t.Fatalf("CountMovies: %v", err)
	}
	if count != 3 {
		t.Errorf("catalog size after rerun = %d, want 3", count)
	}
}

func TestRun_MissingFile(t *testing.T) {
	db, err := database.New(&config.DatabaseConfig{Path: "", MaxMemory: "256MB", Threads: 1})
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	imp := NewImporter(db, &config.IngestConfig{CSVPath: "/nonexistent.csv", BatchSize: 10})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("Run with missing file should fail")
	}
}

func TestRun_BadHeader(t *testing.T) {
	imp, _ := newTestImporter(t, "id,title\n1,X\n", 1)
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("Run with incomplete header should fail")
	}
}

func TestCleanDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "1999-03-31", want: "1999-03-31"},
		{input: "1999-03-31T00:00:00", want: "1999-03-31"},
		{input: "sometime", want: ""},
		{input: "99-03-31", want: ""},
		{input: "", want: ""},
	}
	for _, tt := range tests {
		if got := cleanDate(tt.input); got != tt.want {
			t.Errorf("cleanDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeList(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Action, Crime", want: "action,crime"},
		{input: " Drama ", want: "drama"},
		{input: ",,", want: ""},
		{input: "", want: ""},
	}
	for _, tt := range tests {
		if got := normalizeList(tt.input); got != tt.want {
			t.Errorf("normalizeList(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
