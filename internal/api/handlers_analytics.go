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

// AnalyticsGenres handles GET /api/v1/analytics/genres.
func (h *Handler) AnalyticsGenres(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	stats, err := h.db.GenreStats(r.Context(), userID(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabase, "Genre analytics failed", err)
		return
	}
	if stats == nil {
		stats = []models.GenreStat{}
	}
	respondSuccess(w, http.StatusOK, stats, start)
}

// AnalyticsTimeline handles GET /api/v1/analytics/timeline.
func (h *Handler) AnalyticsTimeline(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	buckets, err := h.db.Timeline(r.Context(), userID(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabase, "Timeline analytics failed", err)
		return
	}
	if buckets == nil {
		buckets = []models.TimelineBucket{}
	}
	respondSuccess(w, http.StatusOK, buckets, start)
}

// AnalyticsRatings handles GET /api/v1/analytics/ratings.
func (h *Handler) AnalyticsRatings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	buckets, err := h.db.RatingDistribution(r.Context(), userID(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabase, "Rating analytics failed", err)
		return
	}
	if buckets == nil {
		buckets = []models.RatingBucket{}
	}
	respondSuccess(w, http.StatusOK, buckets, start)
}

// AnalyticsLanguages handles GET /api/v1/analytics/languages.
func (h *Handler) AnalyticsLanguages(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	stats, err := h.db.LanguageStats(r.Context(), userID(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabase, "Language analytics failed", err)
		return
	}
	if stats == nil {
		stats = []models.LanguageStat{}
	}
	respondSuccess(w, http.StatusOK, stats, start)
}
