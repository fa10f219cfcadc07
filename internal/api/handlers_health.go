// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package api

import (
	"net/http"
	"time"
)

// HealthLive handles GET /api/v1/health/live: the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady handles GET /api/v1/health/ready: the database answers and,
// when enabled, the recommendation snapshot is loaded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if err := h.db.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, codeUnavailable, "Database is not reachable", err)
		return
	}

	status := map[string]interface{}{
		"status":   "ready",
		"database": "ok",
	}
	if h.cfg.Recommend.Enabled {
		if h.engine == nil {
			respondError(w, http.StatusServiceUnavailable, codeUnavailable, "Recommendation engine not loaded", nil)
			return
		}
		rows, _ := h.engine.Size()
		status["recommend_catalog_size"] = rows
	}
	respondSuccess(w, http.StatusOK, status, start)
}
