// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package models

import "time"

// WatchlistEntry is one row of a user's to-watch list.
type WatchlistEntry struct {
	ID      int64     `json:"id"`
	UserID  int64     `json:"-"`
	MovieID int64     `json:"movie_id"`
	AddedAt time.Time `json:"added_at"`
	Movie   *Movie    `json:"movie,omitempty"`
}

// AddWatchlistRequest is the body of POST /watchlist.
type AddWatchlistRequest struct {
	MovieID int64 `json:"movie_id" validate:"required,gt=0"`
}

// MoveToWatchedRequest is the body of POST /watchlist/{id}/watched: the
// entry leaves the watchlist and enters the watch history with this rating.
type MoveToWatchedRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=10"`
	Notes  string `json:"notes" validate:"omitempty,max=2000"`
}
