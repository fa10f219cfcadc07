// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/filmatlas/filmatlas/internal/auth"
	"github.com/filmatlas/filmatlas/internal/metrics"
	"github.com/filmatlas/filmatlas/internal/middleware"
)

// authRateLimit caps login/register attempts per IP; the general API limit
// comes from config.
const (
	authRateLimitRequests = 10
	authRateLimitWindow   = time.Minute
)

// NewRouter assembles the chi router: global middleware, public health and
// metrics endpoints, rate-limited auth endpoints, and the authenticated API.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.API.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           86400,
	}))
	r.Use(middleware.Compression)

	// Unauthenticated surface.
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(rateLimitWithMetric(authRateLimitRequests, authRateLimitWindow))
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate(h.jwt))
			r.Get("/me", h.Me)
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(rateLimitWithMetric(h.cfg.API.RateLimitReqs, h.cfg.API.RateLimitWindow))
		r.Use(auth.Authenticate(h.jwt))

		r.Get("/movies", h.ListMovies)
		r.Get("/movies/{id}", h.GetMovie)

		r.Get("/watched", h.ListWatched)
		r.Post("/watched", h.AddWatched)
		r.Put("/watched/{id}", h.UpdateWatched)
		r.Delete("/watched/{id}", h.DeleteWatched)

		r.Get("/watchlist", h.ListWatchlist)
		r.Post("/watchlist", h.AddToWatchlist)
		r.Delete("/watchlist/{id}", h.RemoveFromWatchlist)
		r.Post("/watchlist/{id}/watched", h.MoveToWatched)

		r.Get("/recommendations", h.Recommendations)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/genres", h.AnalyticsGenres)
			r.Get("/timeline", h.AnalyticsTimeline)
			r.Get("/ratings", h.AnalyticsRatings)
			r.Get("/languages", h.AnalyticsLanguages)
		})
	})

	return r
}

// rateLimitWithMetric limits by client IP and counts rejections.
func rateLimitWithMetric(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
			respondError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
				"Too many requests, slow down", nil)
		}),
	)
}
