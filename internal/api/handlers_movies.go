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

// ListMovies handles GET /api/v1/movies with title search, genre filter,
// sort selection, and offset pagination.
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	params := models.MovieSearchParams{
		Query:  r.URL.Query().Get("q"),
		Genre:  r.URL.Query().Get("genre"),
		Sort:   r.URL.Query().Get("sort"),
		Limit:  getIntParam(r, "limit", h.cfg.API.DefaultPageSize),
		Offset: getIntParam(r, "offset", 0),
	}
	if params.Limit > h.cfg.API.MaxPageSize {
		params.Limit = h.cfg.API.MaxPageSize
	}
	if !validateRequest(w, &params) {
		return
	}

	movies, total, err := h.db.SearchMovies(r.Context(), params)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabase, "Movie search failed", err)
		return
	}

	respondSuccess(w, http.StatusOK, models.PaginatedResponse{
		Items:   movies,
		Total:   total,
		Limit:   params.Limit,
		Offset:  params.Offset,
		HasMore: int64(params.Offset+len(movies)) < total,
	}, start)
}

// GetMovie handles GET /api/v1/movies/{id}.
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "Movie ID must be a positive integer", nil)
		return
	}

	movie, err := h.db.GetMovie(r.Context(), id)
	if err != nil {
		respondDBError(w, err, "Movie not found")
		return
	}
	respondSuccess(w, http.StatusOK, movie, start)
}
