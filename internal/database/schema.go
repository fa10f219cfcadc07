// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package database

import (
	"context"
	"fmt"
)

// schemaStatements create the Filmatlas tables. Every statement is
// idempotent so startup can run them unconditionally.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS movies (
		id BIGINT PRIMARY KEY,
		title VARCHAR NOT NULL,
		genres VARCHAR NOT NULL DEFAULT '',
		keywords VARCHAR NOT NULL DEFAULT '',
		original_language VARCHAR NOT NULL DEFAULT '',
		release_date VARCHAR NOT NULL DEFAULT '',
		overview VARCHAR NOT NULL DEFAULT '',
		runtime INTEGER NOT NULL DEFAULT 0,
		popularity DOUBLE NOT NULL DEFAULT 0,
		vote_average DOUBLE NOT NULL DEFAULT 0,
		vote_count BIGINT NOT NULL DEFAULT 0
	)`,

	`CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT PRIMARY KEY DEFAULT nextval('users_id_seq'),
		username VARCHAR NOT NULL UNIQUE,
		password_hash VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp
	)`,

	`CREATE SEQUENCE IF NOT EXISTS watched_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS watched (
		id BIGINT PRIMARY KEY DEFAULT nextval('watched_id_seq'),
		user_id BIGINT NOT NULL,
		movie_id BIGINT NOT NULL,
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 10),
		notes VARCHAR NOT NULL DEFAULT '',
		watched_date VARCHAR NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
		UNIQUE (user_id, movie_id)
	)`,

	`CREATE SEQUENCE IF NOT EXISTS watchlist_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS watchlist (
		id BIGINT PRIMARY KEY DEFAULT nextval('watchlist_id_seq'),
		user_id BIGINT NOT NULL,
		movie_id BIGINT NOT NULL,
		added_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
		UNIQUE (user_id, movie_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_watched_user ON watched (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_watchlist_user ON watchlist (user_id)`,
}

func (db *DB) createSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
