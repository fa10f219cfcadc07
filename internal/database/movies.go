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
	"strings"
	"time"

	"github.com/filmatlas/filmatlas/internal/metrics"
	"github.com/filmatlas/filmatlas/internal/models"
	"github.com/filmatlas/filmatlas/internal/recommend"
)

const movieColumns = `id, title, genres, keywords, original_language, release_date,
	overview, runtime, popularity, vote_average, vote_count`

func scanMovie(row interface{ Scan(...interface{}) error }) (models.Movie, error) {
	var m models.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Genres, &m.Keywords, &m.OriginalLanguage,
		&m.ReleaseDate, &m.Overview, &m.Runtime, &m.Popularity, &m.VoteAverage, &m.VoteCount)
	return m, err
}

// GetMovie returns one catalog row by ID.
func (db *DB) GetMovie(ctx context.Context, id int64) (models.Movie, error) {
	start := time.Now()
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = ?`, movieColumns)
	m, err := scanMovie(db.conn.QueryRowContext(ctx, query, id))
	metrics.RecordDBQuery("select", "movies", time.Since(start), err)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Movie{}, fmt.Errorf("movie %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Movie{}, fmt.Errorf("failed to get movie %d: %w", id, err)
	}
	return m, nil
}

// GetMoviesByIDs returns the catalog rows for the given IDs, keyed by ID.
// Missing IDs are simply absent from the result.
func (db *DB) GetMoviesByIDs(ctx context.Context, ids []int64) (map[int64]models.Movie, error) {
	result := make(map[int64]models.Movie, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id IN (%s)`, movieColumns, placeholders)
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "movies", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to get movies by ids: %w", err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie row: %w", err)
		}
		result[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("movie rows iteration failed: %w", err)
	}
	return result, nil
}

// SearchMovies returns catalog rows matching the search parameters plus the
// total match count for pagination.
func (db *DB) SearchMovies(ctx context.Context, params models.MovieSearchParams) ([]models.Movie, int64, error) {
	var conditions []string
	var args []interface{}

	if params.Query != "" {
		conditions = append(conditions, "lower(title) LIKE ?")
		args = append(args, "%"+strings.ToLower(params.Query)+"%")
	}
	if params.Genre != "" {
		// genres is a comma-separated list; match the whole padded string so
		// "drama" does not match "docudrama".
		conditions = append(conditions, "(',' || lower(replace(genres, ', ', ',')) || ',') LIKE ?")
		args = append(args, "%,"+strings.ToLower(params.Genre)+",%")
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderBy := "popularity DESC"
	switch params.Sort {
	case "rating":
		orderBy = "vote_average DESC"
	case "date":
		orderBy = "release_date DESC"
	}

	countQuery := "SELECT count(*) FROM movies" + where
	start := time.Now()
	var total int64
	err := db.conn.QueryRowContext(ctx, countQuery, args...).Scan(&total)
	metrics.RecordDBQuery("count", "movies", time.Since(start), err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count movies: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM movies%s ORDER BY %s, id ASC LIMIT ? OFFSET ?`,
		movieColumns, where, orderBy)
	args = append(args, params.Limit, params.Offset)

	start = time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "movies", time.Since(start), err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search movies: %w", err)
	}
	defer closeQuietly(rows)

	movies := make([]models.Movie, 0, params.Limit)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan movie row: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("movie rows iteration failed: %w", err)
	}
	return movies, total, nil
}

// InsertMovies batch-inserts catalog rows inside one transaction. Existing
// IDs are replaced, making ingestion re-runnable.
func (db *DB) InsertMovies(ctx context.Context, movies []models.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	start := time.Now()
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO movies
		(id, title, genres, keywords, original_language, release_date,
		 overview, runtime, popularity, vote_average, vote_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare movie insert: %w", err)
	}
	defer closeQuietly(stmt)

	for _, m := range movies {
		if _, err := stmt.ExecContext(ctx, m.ID, m.Title, m.Genres, m.Keywords,
			m.OriginalLanguage, m.ReleaseDate, m.Overview, m.Runtime,
			m.Popularity, m.VoteAverage, m.VoteCount); err != nil {
			return fmt.Errorf("failed to insert movie %d: %w", m.ID, err)
		}
	}

	err = tx.Commit()
	metrics.RecordDBQuery("insert", "movies", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to commit movie batch: %w", err)
	}
	return nil
}

// CountMovies returns the catalog size.
func (db *DB) CountMovies(ctx context.Context) (int64, error) {
	var count int64
	err := db.conn.QueryRowContext(ctx, `SELECT count(*) FROM movies`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return count, nil
}

// MovieFeatures streams the feature columns of the whole catalog in ID
// order, for the offline encoder. ID order keeps encoding deterministic
// across runs.
func (db *DB) MovieFeatures(ctx context.Context) ([]recommend.MovieRecord, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, genres, keywords, original_language, release_date
		 FROM movies ORDER BY id ASC`)
	metrics.RecordDBQuery("select", "movies", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to read movie features: %w", err)
	}
	defer closeQuietly(rows)

	var records []recommend.MovieRecord
	for rows.Next() {
		var r recommend.MovieRecord
		if err := rows.Scan(&r.ID, &r.Genres, &r.Keywords, &r.OriginalLanguage, &r.ReleaseDate); err != nil {
			return nil, fmt.Errorf("failed to scan feature row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("feature rows iteration failed: %w", err)
	}
	return records, nil
}
