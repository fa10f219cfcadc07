// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package api

import (
	"net/http"
	"time"

	"github.com/filmatlas/filmatlas/internal/auth"
	"github.com/filmatlas/filmatlas/internal/models"
)

// userID pulls the authenticated user from the context; the auth middleware
// guarantees it is present on protected routes.
func userID(r *http.Request) int64 {
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		return claims.UserID
	}
	return 0
}

// ListWatched handles GET /api/v1/watched.
func (h *Handler) ListWatched(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	entries, err := h.db.ListWatched(r.Context(), userID(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabase, "Failed to load watch history", err)
		return
	}
	if entries == nil {
		entries = []models.WatchedEntry{}
	}
	respondSuccess(w, http.StatusOK, entries, start)
}

// AddWatched handles POST /api/v1/watched.
func (h *Handler) AddWatched(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req models.AddWatchedRequest
	if !decodeBody(w, r, &req) || !validateRequest(w, &req) {
		return
	}

	entry, err := h.db.AddWatched(r.Context(), userID(r), req)
	if err != nil {
		respondDBError(w, err, "Movie not found")
		return
	}
	respondSuccess(w, http.StatusCreated, entry, start)
}

// UpdateWatched handles PUT /api/v1/watched/{id}.
func (h *Handler) UpdateWatched(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "Entry ID must be a positive integer", nil)
		return
	}

	var req models.UpdateWatchedRequest
	if !decodeBody(w, r, &req) || !validateRequest(w, &req) {
		return
	}

	entry, err := h.db.UpdateWatched(r.Context(), userID(r), id, req)
	if err != nil {
		respondDBError(w, err, "Watched entry not found")
		return
	}
	respondSuccess(w, http.StatusOK, entry, start)
}

// DeleteWatched handles DELETE /api/v1/watched/{id}.
func (h *Handler) DeleteWatched(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "Entry ID must be a positive integer", nil)
		return
	}

	if err := h.db.DeleteWatched(r.Context(), userID(r), id); err != nil {
		respondDBError(w, err, "Watched entry not found")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]bool{"deleted": true}, start)
}
