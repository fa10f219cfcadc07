// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package api

import (
	"net/http"
	"time"

	"github.com/filmatlas/filmatlas/internal/metrics"
	"github.com/filmatlas/filmatlas/internal/models"
	"github.com/filmatlas/filmatlas/internal/recommend"
)

// Recommendations handles GET /api/v1/recommendations?limit=N.
//
// The user's watch history drives the engine; both watched and watchlisted
// movies are excluded from the results. Each recommended movie carries
// explanation reasons derived from the user's taste profile.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.engine == nil {
		respondError(w, http.StatusServiceUnavailable, codeUnavailable,
			"Recommendations are not enabled on this server", nil)
		return
	}

	limit := getIntParam(r, "limit", h.cfg.Recommend.DefaultLimit)
	if limit < 1 {
		limit = h.cfg.Recommend.DefaultLimit
	}
	if limit > h.cfg.Recommend.MaxLimit {
		limit = h.cfg.Recommend.MaxLimit
	}

	uid := userID(r)
	watchedIDs, ratings, err := h.db.WatchedHistory(r.Context(), uid)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabase, "Failed to load watch history", err)
		return
	}
	if len(watchedIDs) == 0 {
		respondSuccess(w, http.StatusOK, []models.RecommendationItem{}, start)
		return
	}

	watchlistIDs, err := h.db.WatchlistMovieIDs(r.Context(), uid)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabase, "Failed to load watchlist", err)
		return
	}

	exclude := make(map[int64]struct{}, len(watchedIDs)+len(watchlistIDs))
	for _, id := range watchedIDs {
		exclude[id] = struct{}{}
	}
	for _, id := range watchlistIDs {
		exclude[id] = struct{}{}
	}

	scoreStart := time.Now()
	recs := h.engine.Recommend(watchedIDs, ratings, exclude, limit)
	metrics.RecordRecommendation(time.Since(scoreStart), len(watchedIDs))

	items, err := h.buildRecommendationItems(r, watchedIDs, recs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabase, "Failed to resolve recommendations", err)
		return
	}
	respondSuccess(w, http.StatusOK, items, start)
}

// buildRecommendationItems joins engine output back to catalog rows and
// attaches explanation reasons.
func (h *Handler) buildRecommendationItems(r *http.Request, watchedIDs []int64, recs []recommend.Recommendation) ([]models.RecommendationItem, error) {
	watchedMovies, err := h.db.GetMoviesByIDs(r.Context(), watchedIDs)
	if err != nil {
		return nil, err
	}
	watchedRecords := make([]recommend.MovieRecord, 0, len(watchedMovies))
	for _, id := range watchedIDs {
		if m, ok := watchedMovies[id]; ok {
			watchedRecords = append(watchedRecords, recommend.MovieRecord{
				ID:               m.ID,
				Genres:           m.Genres,
				Keywords:         m.Keywords,
				OriginalLanguage: m.OriginalLanguage,
				ReleaseDate:      m.ReleaseDate,
			})
		}
	}
	profile := recommend.BuildTasteProfile(watchedRecords)

	recIDs := make([]int64, len(recs))
	for i, rec := range recs {
		recIDs[i] = rec.MovieID
	}
	recMovies, err := h.db.GetMoviesByIDs(r.Context(), recIDs)
	if err != nil {
		return nil, err
	}

	items := make([]models.RecommendationItem, 0, len(recs))
	for _, rec := range recs {
		movie, ok := recMovies[rec.MovieID]
		if !ok {
			// Snapshot knows a movie the catalog no longer has; skip it.
			continue
		}
		items = append(items, models.RecommendationItem{
			Movie: movie,
			Score: rec.Score,
			Reasons: h.engine.Explain(movie.Genres, movie.Keywords,
				movie.OriginalLanguage, movie.ReleaseDate, profile),
		})
	}
	return items, nil
}
