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

// ListWatchlist returns the user's watchlist, newest first, with the movie
// row joined in.
func (db *DB) ListWatchlist(ctx context.Context, userID int64) ([]models.WatchlistEntry, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT l.id, l.user_id, l.movie_id, l.added_at,
		        m.id, m.title, m.genres, m.keywords, m.original_language, m.release_date,
		        m.overview, m.runtime, m.popularity, m.vote_average, m.vote_count
		 FROM watchlist l
		 JOIN movies m ON m.id = l.movie_id
		 WHERE l.user_id = ?
		 ORDER BY l.added_at DESC, l.id DESC`, userID)
	metrics.RecordDBQuery("select", "watchlist", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	defer closeQuietly(rows)

	var entries []models.WatchlistEntry
	for rows.Next() {
		var e models.WatchlistEntry
		var m models.Movie
		if err := rows.Scan(&e.ID, &e.UserID, &e.MovieID, &e.AddedAt,
			&m.ID, &m.Title, &m.Genres, &m.Keywords, &m.OriginalLanguage, &m.ReleaseDate,
			&m.Overview, &m.Runtime, &m.Popularity, &m.VoteAverage, &m.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist row: %w", err)
		}
		e.Movie = &m
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("watchlist rows iteration failed: %w", err)
	}
	return entries, nil
}

// WatchlistMovieIDs returns the movie IDs on the user's watchlist, used to
// exclude them from recommendations.
func (db *DB) WatchlistMovieIDs(ctx context.Context, userID int64) ([]int64, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT movie_id FROM watchlist WHERE user_id = ?`, userID)
	metrics.RecordDBQuery("select", "watchlist", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to read watchlist ids: %w", err)
	}
	defer closeQuietly(rows)

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("watchlist id iteration failed: %w", err)
	}
	return ids, nil
}

// AddToWatchlist puts a movie on the user's watchlist. Returns ErrDuplicate
// if it is already there and ErrNotFound if the movie is not in the catalog.
func (db *DB) AddToWatchlist(ctx context.Context, userID, movieID int64) (models.WatchlistEntry, error) {
	if _, err := db.GetMovie(ctx, movieID); err != nil {
		return models.WatchlistEntry{}, err
	}

	start := time.Now()
	var e models.WatchlistEntry
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO watchlist (user_id, movie_id) VALUES (?, ?)
		 RETURNING id, user_id, movie_id, added_at`,
		userID, movieID,
	).Scan(&e.ID, &e.UserID, &e.MovieID, &e.AddedAt)
	metrics.RecordDBQuery("insert", "watchlist", time.Since(start), err)

	if isConstraintViolation(err) {
		return models.WatchlistEntry{}, fmt.Errorf("movie %d already on watchlist: %w", movieID, ErrDuplicate)
	}
	if err != nil {
		return models.WatchlistEntry{}, fmt.Errorf("failed to add to watchlist: %w", err)
	}
	return e, nil
}

// RemoveFromWatchlist deletes one watchlist entry owned by the user.
func (db *DB) RemoveFromWatchlist(ctx context.Context, userID, entryID int64) error {
	start := time.Now()
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM watchlist WHERE id = ? AND user_id = ?`, entryID, userID)
	metrics.RecordDBQuery("delete", "watchlist", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to remove from watchlist: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("watchlist entry %d: %w", entryID, ErrNotFound)
	}
	return nil
}

// MoveToWatched atomically removes a watchlist entry and records the movie
// in the watch history with the given rating.
func (db *DB) MoveToWatched(ctx context.Context, userID, entryID int64, req models.MoveToWatchedRequest) (models.WatchedEntry, error) {
	start := time.Now()
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return models.WatchedEntry{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var movieID int64
	err = tx.QueryRowContext(ctx,
		`SELECT movie_id FROM watchlist WHERE id = ? AND user_id = ?`,
		entryID, userID).Scan(&movieID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.WatchedEntry{}, fmt.Errorf("watchlist entry %d: %w", entryID, ErrNotFound)
	}
	if err != nil {
		return models.WatchedEntry{}, fmt.Errorf("failed to look up watchlist entry: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM watchlist WHERE id = ? AND user_id = ?`, entryID, userID); err != nil {
		return models.WatchedEntry{}, fmt.Errorf("failed to remove watchlist entry: %w", err)
	}

	var e models.WatchedEntry
	err = tx.QueryRowContext(ctx,
		`INSERT INTO watched (user_id, movie_id, rating, notes, watched_date)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id, user_id, movie_id, rating, notes, watched_date, created_at`,
		userID, movieID, req.Rating, req.Notes, time.Now().Format("2006-01-02"),
	).Scan(&e.ID, &e.UserID, &e.MovieID, &e.Rating, &e.Notes, &e.WatchedDate, &e.CreatedAt)
	if isConstraintViolation(err) {
		return models.WatchedEntry{}, fmt.Errorf("movie %d already watched: %w", movieID, ErrDuplicate)
	}
	if err != nil {
		return models.WatchedEntry{}, fmt.Errorf("failed to record watched entry: %w", err)
	}

	err = tx.Commit()
	metrics.RecordDBQuery("move", "watchlist", time.Since(start), err)
	if err != nil {
		return models.WatchedEntry{}, fmt.Errorf("failed to commit move: %w", err)
	}
	return e, nil
}
