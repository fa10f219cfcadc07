// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package database

import (
	"context"
	"testing"

	"github.com/filmatlas/filmatlas/internal/models"
)

// seedHistory gives the user three watched movies spanning two genres,
// two languages, and two months.
func seedHistory(t *testing.T, db *DB) models.User {
	t.Helper()
	seedMovies(t, db)
	user := seedUser(t, db, "hana")
	ctx := context.Background()

	for _, add := range []models.AddWatchedRequest{
		{MovieID: 1, Rating: 9, WatchedDate: "2026-07-12"}, // action,crime / en
		{MovieID: 2, Rating: 7, WatchedDate: "2026-07-30"}, // drama,war / ja
		{MovieID: 3, Rating: 8, WatchedDate: "2026-08-02"}, // comedy,romance / fr
	} {
		if _, err := db.AddWatched(ctx, user.ID, add); err != nil {
			t.Fatalf("AddWatched: %v", err)
		}
	}
	return user
}

func TestGenreStats(t *testing.T) {
	db := testDB(t)
	user := seedHistory(t, db)

	stats, err := db.GenreStats(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GenreStats: %v", err)
	}
	// Six genres, one movie each; alphabetical within equal counts.
	if len(stats) != 6 {
		t.Fatalf("got %d genre stats, want 6: %+v", len(stats), stats)
	}
	if stats[0].Genre != "action" {
		t.Errorf("stats[0].Genre = %q, want action (alphabetical tie-break)", stats[0].Genre)
	}
	for _, s := range stats {
		if s.Count != 1 {
			t.Errorf("genre %s count = %d, want 1", s.Genre, s.Count)
		}
	}
	// action came from the rating-9 movie.
	if stats[0].AvgRating != 9 {
		t.Errorf("action avg rating = %v, want 9", stats[0].AvgRating)
	}
}

func TestTimeline(t *testing.T) {
	db := testDB(t)
	user := seedHistory(t, db)

	buckets, err := db.Timeline(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2: %+v", len(buckets), buckets)
	}
	if buckets[0].Month != "2026-07" || buckets[0].Count != 2 {
		t.Errorf("buckets[0] = %+v, want 2026-07 x2", buckets[0])
	}
	if buckets[1].Month != "2026-08" || buckets[1].Count != 1 {
		t.Errorf("buckets[1] = %+v, want 2026-08 x1", buckets[1])
	}
}

func TestRatingDistribution(t *testing.T) {
	db := testDB(t)
	user := seedHistory(t, db)

	buckets, err := db.RatingDistribution(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("RatingDistribution: %v", err)
	}
	want := map[int]int64{7: 1, 8: 1, 9: 1}
	if len(buckets) != len(want) {
		t.Fatalf("got %d buckets, want %d", len(buckets), len(want))
	}
	for _, b := range buckets {
		if want[b.Rating] != b.Count {
			t.Errorf("rating %d count = %d, want %d", b.Rating, b.Count, want[b.Rating])
		}
	}
}

func TestLanguageStats(t *testing.T) {
	db := testDB(t)
	user := seedHistory(t, db)

	stats, err := db.LanguageStats(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("LanguageStats: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("got %d language stats, want 3: %+v", len(stats), stats)
	}
	// Equal counts sort alphabetically: en, fr, ja.
	wantOrder := []string{"en", "fr", "ja"}
	for i, want := range wantOrder {
		if stats[i].Language != want {
			t.Errorf("stats[%d].Language = %q, want %q", i, stats[i].Language, want)
		}
	}
}

func TestAnalyticsEmptyHistory(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, "empty")
	ctx := context.Background()

	if stats, err := db.GenreStats(ctx, user.ID); err != nil || len(stats) != 0 {
		t.Errorf("GenreStats = %v, %v, want empty, nil", stats, err)
	}
	if buckets, err := db.Timeline(ctx, user.ID); err != nil || len(buckets) != 0 {
		t.Errorf("Timeline = %v, %v, want empty, nil", buckets, err)
	}
	if buckets, err := db.RatingDistribution(ctx, user.ID); err != nil || len(buckets) != 0 {
		t.Errorf("RatingDistribution = %v, %v, want empty, nil", buckets, err)
	}
	if stats, err := db.LanguageStats(ctx, user.ID); err != nil || len(stats) != 0 {
		t.Errorf("LanguageStats = %v, %v, want empty, nil", stats, err)
	}
}
