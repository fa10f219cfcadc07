// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package models

import "time"

// WatchedEntry is one row of a user's watch history. Movie is joined in for
// list responses and nil elsewhere.
type WatchedEntry struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"-"`
	MovieID     int64     `json:"movie_id"`
	Rating      int       `json:"rating"`
	Notes       string    `json:"notes,omitempty"`
	WatchedDate string    `json:"watched_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Movie       *Movie    `json:"movie,omitempty"`
}

// AddWatchedRequest is the body of POST /watched.
type AddWatchedRequest struct {
	MovieID     int64  `json:"movie_id" validate:"required,gt=0"`
	Rating      int    `json:"rating" validate:"required,min=1,max=10"`
	Notes       string `json:"notes" validate:"omitempty,max=2000"`
	WatchedDate string `json:"watched_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateWatchedRequest is the body of PUT /watched/{id}. Nil fields are
// left unchanged.
type UpdateWatchedRequest struct {
	Rating      *int    `json:"rating" validate:"omitempty,min=1,max=10"`
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
	WatchedDate *string `json:"watched_date" validate:"omitempty,datetime=2006-01-02"`
}
