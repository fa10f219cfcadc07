// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package database

import (
	"errors"
	"strings"
)

// Sentinel errors returned by data access methods. Handlers map these to
// HTTP status codes; always test with errors.Is because they arrive wrapped.
var (
	// ErrNotFound means the requested row does not exist (or belongs to
	// another user, which callers must not be able to distinguish).
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate means a uniqueness constraint was violated, e.g. a
	// username already taken or a movie already on the watchlist.
	ErrDuplicate = errors.New("record already exists")
)

// isConstraintViolation reports whether a DuckDB error was caused by a
// UNIQUE or PRIMARY KEY constraint. The driver does not expose typed
// errors for this, so we match the engine's error class string.
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Constraint Error") ||
		strings.Contains(msg, "Duplicate key")
}
