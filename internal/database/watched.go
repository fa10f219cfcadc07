// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/filmatlas/filmatlas/internal/metrics"
	"github.com/filmatlas/filmatlas/internal/models"
)

// ListWatched returns the user's full watch history, newest first, with the
// movie row joined in.
func (db *DB) ListWatched(ctx context.Context, userID int64) ([]models.WatchedEntry, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT w.id, w.user_id, w.movie_id, w.rating, w.notes, w.watched_date, w.created_at,
		        m.id, m.title, m.genres, m.keywords, m.original_language, m.release_date,
		        m.overview, m.runtime, m.popularity, m.vote_average, m.vote_count
		 FROM watched w
		 JOIN movies m ON m.id = w.movie_id
		 WHERE w.user_id = ?
		 ORDER BY w.created_at DESC, w.id DESC`, userID)
	metrics.RecordDBQuery("select", "watched", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list watched: %w", err)
	}
	defer closeQuietly(rows)

	var entries []models.WatchedEntry
	for rows.Next() {
		var e models.WatchedEntry
		var m models.Movie
		if err := rows.Scan(&e.ID, &e.UserID, &e.MovieID, &e.Rating, &e.Notes, &e.WatchedDate, &e.CreatedAt,
			&m.ID, &m.Title, &m.Genres, &m.Keywords, &m.OriginalLanguage, &m.ReleaseDate,
			&m.Overview, &m.Runtime, &m.Popularity, &m.VoteAverage, &m.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan watched row: %w", err)
		}
		e.Movie = &m
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("watched rows iteration failed: %w", err)
	}
	return entries, nil
}

// WatchedHistory returns the user's (movieID, rating) pairs in insertion
// order, the shape the recommendation engine consumes.
func (db *DB) WatchedHistory(ctx context.Context, userID int64) (movieIDs []int64, ratings []int, err error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT movie_id, rating FROM watched WHERE user_id = ? ORDER BY id ASC`, userID)
	metrics.RecordDBQuery("select", "watched", time.Since(start), err)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read watch history: %w", err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		var movieID int64
		var rating int
		if err := rows.Scan(&movieID, &rating); err != nil {
			return nil, nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		movieIDs = append(movieIDs, movieID)
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("history rows iteration failed: %w", err)
	}
	return movieIDs, ratings, nil
}

// GetWatched returns one history entry owned by the user.
func (db *DB) GetWatched(ctx context.Context, userID, entryID int64) (models.WatchedEntry, error) {
	start := time.Now()
	var e models.WatchedEntry
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, movie_id, rating, notes, watched_date, created_at
		 FROM watched WHERE id = ? AND user_id = ?`, entryID, userID,
	).Scan(&e.ID, &e.UserID, &e.MovieID, &e.Rating, &e.Notes, &e.WatchedDate, &e.CreatedAt)
	metrics.RecordDBQuery("select", "watched", time.Since(start), err)

	if errors.Is(err, sql.ErrNoRows) {
		return models.WatchedEntry{}, fmt.Errorf("watched entry %d: %w", entryID, ErrNotFound)
	}
	if err != nil {
		return models.WatchedEntry{}, fmt.Errorf("failed to get watched entry: %w", err)
	}
	return e, nil
}

// AddWatched records a movie in the user's history. Returns ErrDuplicate if
// the movie is already there and ErrNotFound if the movie does not exist in
// the catalog.
func (db *DB) AddWatched(ctx context.Context, userID int64, req models.AddWatchedRequest) (models.WatchedEntry, error) {
	if _, err := db.GetMovie(ctx, req.MovieID); err != nil {
		return models.WatchedEntry{}, err
	}

	start := time.Now()
	var e models.WatchedEntry
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO watched (user_id, movie_id, rating, notes, watched_date)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id, user_id, movie_id, rating, notes, watched_date, created_at`,
		userID, req.MovieID, req.Rating, req.Notes, req.WatchedDate,
	).Scan(&e.ID, &e.UserID, &e.MovieID, &e.Rating, &e.Notes, &e.WatchedDate, &e.CreatedAt)
	metrics.RecordDBQuery("insert", "watched", time.Since(start), err)

	if isConstraintViolation(err) {
		return models.WatchedEntry{}, fmt.Errorf("movie %d already watched: %w", req.MovieID, ErrDuplicate)
	}
	if err != nil {
		return models.WatchedEntry{}, fmt.Errorf("failed to add watched entry: %w", err)
	}
	return e, nil
}

// UpdateWatched applies the non-nil fields of req to the user's entry.
func (db *DB) UpdateWatched(ctx context.Context, userID, entryID int64, req models.UpdateWatchedRequest) (models.WatchedEntry, error) {
	current, err := db.GetWatched(ctx, userID, entryID)
	if err != nil {
		return models.WatchedEntry{}, err
	}

	if req.Rating != nil {
		current.Rating = *req.Rating
	}
	if req.Notes != nil {
		current.Notes = *req.Notes
	}
	if req.WatchedDate != nil {
		current.WatchedDate = *req.WatchedDate
	}

	start := time.Now()
	_, err = db.conn.ExecContext(ctx,
		`UPDATE watched SET rating = ?, notes = ?, watched_date = ?
		 WHERE id = ? AND user_id = ?`,
		current.Rating, current.Notes, current.WatchedDate, entryID, userID)
	metrics.RecordDBQuery("update", "watched", time.Since(start), err)
	if err != nil {
		return models.WatchedEntry{}, fmt.Errorf("failed to update watched entry: %w", err)
	}
	return current, nil
}

// DeleteWatched removes one history entry owned by the user.
func (db *DB) DeleteWatched(ctx context.Context, userID, entryID int64) error {
	start := time.Now()
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM watched WHERE id = ? AND user_id = ?`, entryID, userID)
	metrics.RecordDBQuery("delete", "watched", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete watched entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("watched entry %d: %w", entryID, ErrNotFound)
	}
	return nil
}
