// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/filmatlas/filmatlas/internal/metrics"
	"github.com/filmatlas/filmatlas/internal/models"
)

// GenreStats aggregates the user's history by genre: appearance count and
// average rating, most-watched first. Genres are stored as comma-separated
// lists, so each history row is unnested before grouping.
func (db *DB) GenreStats(ctx context.Context, userID int64) ([]models.GenreStat, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT genre, count(*) AS cnt, round(avg(rating), 2) AS avg_rating
		 FROM (
		     SELECT trim(unnest(string_split(m.genres, ','))) AS genre, w.rating
		     FROM watched w
		     JOIN movies m ON m.id = w.movie_id
		     WHERE w.user_id = ?
		 )
		 WHERE genre <> ''
		 GROUP BY genre
		 ORDER BY cnt DESC, genre ASC`, userID)
	metrics.RecordDBQuery("analytics", "watched", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate genres: %w", err)
	}
	defer closeQuietly(rows)

	var stats []models.GenreStat
	for rows.Next() {
		var s models.GenreStat
		if err := rows.Scan(&s.Genre, &s.Count, &s.AvgRating); err != nil {
			return nil, fmt.Errorf("failed to scan genre stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("genre stats iteration failed: %w", err)
	}
	return stats, nil
}

// Timeline buckets the user's history by month of the watched date.
// Entries without a watched date fall back to the month they were recorded.
func (db *DB) Timeline(ctx context.Context, userID int64) ([]models.TimelineBucket, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT month, count(*) AS cnt
		 FROM (
		     SELECT CASE
		         WHEN length(watched_date) >= 7 THEN substr(watched_date, 1, 7)
		         ELSE strftime(created_at, '%Y-%m')
		     END AS month
		     FROM watched WHERE user_id = ?
		 )
		 GROUP BY month
		 ORDER BY month ASC`, userID)
	metrics.RecordDBQuery("analytics", "watched", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate timeline: %w", err)
	}
	defer closeQuietly(rows)

	var buckets []models.TimelineBucket
	for rows.Next() {
		var b models.TimelineBucket
		if err := rows.Scan(&b.Month, &b.Count); err != nil {
			return nil, fmt.Errorf("failed to scan timeline bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("timeline iteration failed: %w", err)
	}
	return buckets, nil
}

// RatingDistribution counts the user's history per rating value 1-10.
func (db *DB) RatingDistribution(ctx context.Context, userID int64) ([]models.RatingBucket, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT rating, count(*) AS cnt
		 FROM watched WHERE user_id = ?
		 GROUP BY rating
		 ORDER BY rating ASC`, userID)
	metrics.RecordDBQuery("analytics", "watched", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer closeQuietly(rows)

	var buckets []models.RatingBucket
	for rows.Next() {
		var b models.RatingBucket
		if err := rows.Scan(&b.Rating, &b.Count); err != nil {
			return nil, fmt.Errorf("failed to scan rating bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rating iteration failed: %w", err)
	}
	return buckets, nil
}

// LanguageStats counts the user's history per original language.
func (db *DB) LanguageStats(ctx context.Context, userID int64) ([]models.LanguageStat, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT m.original_language, count(*) AS cnt
		 FROM watched w
		 JOIN movies m ON m.id = w.movie_id
		 WHERE w.user_id = ? AND m.original_language <> ''
		 GROUP BY m.original_language
		 ORDER BY cnt DESC, m.original_language ASC`, userID)
	metrics.RecordDBQuery("analytics", "watched", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate languages: %w", err)
	}
	defer closeQuietly(rows)

	var stats []models.LanguageStat
	for rows.Next() {
		var s models.LanguageStat
		if err := rows.Scan(&s.Language, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan language stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("language iteration failed: %w", err)
	}
	return stats, nil
}
