// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package api

import (
	"net/http"
	"time"

	"github.com/filmatlas/filmatlas/internal/models"
)

// ListWatchlist handles GET /api/v1/watchlist.
func (h *Handler) ListWatchlist(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	entries, err := h.db.ListWatchlist(r.Context(), userID(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabase, "Failed to load watchlist", err)
		return
	}
	if entries == nil {
		entries = []models.WatchlistEntry{}
	}
	respondSuccess(w, http.StatusOK, entries, start)
}

// AddToWatchlist handles POST /api/v1/watchlist.
func (h *Handler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req models.AddWatchlistRequest
	if !decodeBody(w, r, &req) || !validateRequest(w, &req) {
		return
	}

	entry, err := h.db.AddToWatchlist(r.Context(), userID(r), req.MovieID)
	if err != nil {
		respondDBError(w, err, "Movie not found")
		return
	}
	respondSuccess(w, http.StatusCreated, entry, start)
}

// RemoveFromWatchlist handles DELETE /api/v1/watchlist/{id}.
func (h *Handler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "Entry ID must be a positive integer", nil)
		return
	}

	if err := h.db.RemoveFromWatchlist(r.Context(), userID(r), id); err != nil {
		respondDBError(w, err, "Watchlist entry not found")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]bool{"deleted": true}, start)
}

// MoveToWatched handles POST /api/v1/watchlist/{id}/watched: the entry
// leaves the watchlist and lands in the history with the given rating.
func (h *Handler) MoveToWatched(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "Entry ID must be a positive integer", nil)
		return
	}

	var req models.MoveToWatchedRequest
	if !decodeBody(w, r, &req) || !validateRequest(w, &req) {
		return
	}

	entry, err := h.db.MoveToWatched(r.Context(), userID(r), id, req)
	if err != nil {
		respondDBError(w, err, "Watchlist entry not found")
		return
	}
	respondSuccess(w, http.StatusCreated, entry, start)
}
