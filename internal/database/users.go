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

// CreateUser inserts a new account and returns it with its assigned ID.
// Returns ErrDuplicate when the username is taken.
func (db *DB) CreateUser(ctx context.Context, username, passwordHash string) (models.User, error) {
	start := time.Now()
	var u models.User
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?)
		 RETURNING id, username, password_hash, created_at`,
		username, passwordHash,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	metrics.RecordDBQuery("insert", "users", time.Since(start), err)

	if isConstraintViolation(err) {
		return models.User{}, fmt.Errorf("username %q: %w", username, ErrDuplicate)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// GetUserByUsername returns the account with the given username.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	start := time.Now()
	var u models.User
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	metrics.RecordDBQuery("select", "users", time.Since(start), err)

	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetUserByID returns the account with the given ID.
func (db *DB) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	start := time.Now()
	var u models.User
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE id = ?`,
		id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	metrics.RecordDBQuery("select", "users", time.Since(start), err)

	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
