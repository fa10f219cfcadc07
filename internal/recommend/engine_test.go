// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

// newTestEngine encodes the catalog, persists it to a temp dir, and loads an
// engine from the files, exercising the full offline-to-online path.
func newTestEngine(t *testing.T, catalog []MovieRecord) *Engine {
	t.Helper()

	matrix, ids, err := Encode(catalog)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	dir := t.TempDir()
	matrixPath := filepath.Join(dir, "features.bin")
	idsPath := filepath.Join(dir, "movie_ids.bin")
	if err := SaveMatrix(matrix, matrixPath); err != nil {
		t.Fatalf("SaveMatrix() error = %v", err)
	}
	if err := SaveIDIndex(ids, idsPath); err != nil {
		t.Fatalf("SaveIDIndex() error = %v", err)
	}

	engine, err := NewEngine(matrixPath, idsPath, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

// genreCatalog is the three-movie scenario from the product requirements:
// A shares "action" with B, C is unrelated comedy.
func genreCatalog() []MovieRecord {
	return []MovieRecord{
		{ID: 10, Genres: "action,drama"},
		{ID: 20, Genres: "action"},
		{ID: 30, Genres: "comedy"},
	}
}

func TestNewEngine_Errors(t *testing.T) {
	dir := t.TempDir()
	matrix, ids, err := Encode(genreCatalog())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	matrixPath := filepath.Join(dir, "features.bin")
	idsPath := filepath.Join(dir, "movie_ids.bin")
	if err := SaveMatrix(matrix, matrixPath); err != nil {
		t.Fatalf("SaveMatrix() error = %v", err)
	}
	if err := SaveIDIndex(ids, idsPath); err != nil {
		t.Fatalf("SaveIDIndex() error = %v", err)
	}

	tests := []struct {
		name       string
		matrixPath string
		idsPath    string
	}{
		{name: "missing matrix file", matrixPath: filepath.Join(dir, "absent.bin"), idsPath: idsPath},
		{name: "missing ID file", matrixPath: matrixPath, idsPath: filepath.Join(dir, "absent.bin")},
		{name: "swapped files fail magic check", matrixPath: idsPath, idsPath: matrixPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEngine(tt.matrixPath, tt.idsPath, zerolog.Nop()); err == nil {
				t.Error("NewEngine() should fail")
			}
		})
	}
}

func TestNewEngine_RowCountMismatch(t *testing.T) {
	dir := t.TempDir()
	matrix, ids, err := Encode(genreCatalog())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	matrixPath := filepath.Join(dir, "features.bin")
	idsPath := filepath.Join(dir, "movie_ids.bin")
	if err := SaveMatrix(matrix, matrixPath); err != nil {
		t.Fatalf("SaveMatrix() error = %v", err)
	}
	// One ID too few: the loaded index no longer matches the matrix rows.
	if err := SaveIDIndex(ids[:len(ids)-1], idsPath); err != nil {
		t.Fatalf("SaveIDIndex() error = %v", err)
	}

	if _, err := NewEngine(matrixPath, idsPath, zerolog.Nop()); err == nil {
		t.Error("NewEngine() should fail on row/ID count mismatch")
	}
}

func TestRecommend_RanksSharedGenreFirst(t *testing.T) {
	engine := newTestEngine(t, genreCatalog())

	recs := engine.Recommend([]int64{10}, []int{10}, map[int64]struct{}{10: {}}, 20)
	if len(recs) == 0 {
		t.Fatal("Recommend() returned empty result, want at least the action sibling")
	}
	for _, r := range recs {
		if r.MovieID == 10 {
			t.Error("Recommend() returned the watched movie itself")
		}
		if r.Score <= 0 {
			t.Errorf("Recommend() returned non-positive score %f for movie %d", r.Score, r.MovieID)
		}
	}
	if recs[0].MovieID != 20 {
		t.Errorf("top recommendation = %d, want 20 (shares action with watched movie)", recs[0].MovieID)
	}
	for _, r := range recs[1:] {
		if r.MovieID == 30 && r.Score >= recs[0].Score {
			t.Errorf("comedy scored %f, not below action sibling %f", r.Score, recs[0].Score)
		}
	}
}

func TestRecommend_ExcludeForcesOut(t *testing.T) {
	engine := newTestEngine(t, genreCatalog())

	exclude := map[int64]struct{}{10: {}, 20: {}}
	recs := engine.Recommend([]int64{10}, []int{10}, exclude, 20)
	for _, r := range recs {
		if _, excluded := exclude[r.MovieID]; excluded {
			t.Errorf("Recommend() returned excluded movie %d", r.MovieID)
		}
	}
}

func TestRecommend_LimitOne(t *testing.T) {
	engine := newTestEngine(t, genreCatalog())

	recs := engine.Recommend([]int64{10}, []int{10}, map[int64]struct{}{10: {}}, 1)
	if len(recs) != 1 {
		t.Fatalf("Recommend(limit=1) returned %d results, want 1", len(recs))
	}
	if recs[0].MovieID != 20 {
		t.Errorf("Recommend(limit=1) = movie %d, want the top-scoring 20", recs[0].MovieID)
	}
}

func TestRecommend_EmptyAndUnresolvableHistory(t *testing.T) {
	engine := newTestEngine(t, genreCatalog())

	tests := []struct {
		name    string
		watched []int64
		ratings []int
	}{
		{name: "empty history", watched: nil, ratings: nil},
		{name: "only unknown IDs", watched: []int64{999, 888}, ratings: []int{8, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := engine.Recommend(tt.watched, tt.ratings, nil, 10)
			if len(recs) != 0 {
				t.Errorf("Recommend() = %d results, want 0", len(recs))
			}
		})
	}
}

func TestRecommend_UniformWeightFallback(t *testing.T) {
	engine := newTestEngine(t, genreCatalog())

	// All ratings of 1 normalize to weight 0; the engine must fall back to
	// uniform weights instead of producing a zero profile vector.
	recs := engine.Recommend([]int64{10}, []int{1}, map[int64]struct{}{10: {}}, 20)
	if len(recs) == 0 {
		t.Fatal("Recommend() with all-minimum ratings returned empty result, want uniform-weight fallback")
	}
	if recs[0].MovieID != 20 {
		t.Errorf("top recommendation = %d, want 20", recs[0].MovieID)
	}
}

func TestRecommend_MixedKnownUnknownIDs(t *testing.T) {
	engine := newTestEngine(t, genreCatalog())

	// Unknown ID 999 is dropped; the resolvable movie still drives the profile.
	recs := engine.Recommend([]int64{999, 10}, []int{10, 10}, map[int64]struct{}{10: {}}, 20)
	if len(recs) == 0 {
		t.Fatal("Recommend() returned empty result, want results from the resolvable movie")
	}
	if recs[0].MovieID != 20 {
		t.Errorf("top recommendation = %d, want 20", recs[0].MovieID)
	}
}

func TestRecommend_ScoreRounding(t *testing.T) {
	engine := newTestEngine(t, genreCatalog())

	recs := engine.Recommend([]int64{10}, []int{10}, map[int64]struct{}{10: {}}, 20)
	for _, r := range recs {
		scaled := r.Score * 10000
		if diff := scaled - float64(int64(scaled+0.5)); diff > 1e-6 || diff < -1e-6 {
			t.Errorf("score %v is not rounded to 4 decimal places", r.Score)
		}
	}
}

func TestRecommend_LimitBeyondCandidates(t *testing.T) {
	engine := newTestEngine(t, genreCatalog())

	recs := engine.Recommend([]int64{10}, []int{10}, map[int64]struct{}{10: {}}, 100)
	if len(recs) > 2 {
		t.Errorf("Recommend() = %d results, want at most the 2 other movies, no padding", len(recs))
	}
}

func TestRecommend_Concurrent(t *testing.T) {
	engine := newTestEngine(t, genreCatalog())

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				engine.Recommend([]int64{10}, []int{10}, map[int64]struct{}{10: {}}, 5)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
