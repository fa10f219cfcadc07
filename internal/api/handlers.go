// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

// Package api implements the Filmatlas HTTP API on the chi router: auth,
// catalog search, watch history, watchlist, recommendations, analytics, and
// health endpoints, all wrapped in the standard response envelope.
package api

import (
	"github.com/filmatlas/filmatlas/internal/auth"
	"github.com/filmatlas/filmatlas/internal/config"
	"github.com/filmatlas/filmatlas/internal/database"
	"github.com/filmatlas/filmatlas/internal/recommend"
)

// Handler carries the dependencies shared by all endpoint methods.
//
// Engine is nil when recommendations are disabled in config; the
// recommendations endpoint then answers 503.
type Handler struct {
	db     *database.DB
	engine *recommend.Engine
	jwt    *auth.JWTManager
	cfg    *config.Config
}

// NewHandler wires the shared dependencies into a Handler.
func NewHandler(db *database.DB, engine *recommend.Engine, jwt *auth.JWTManager, cfg *config.Config) *Handler {
	return &Handler{
		db:     db,
		engine: engine,
		jwt:    jwt,
		cfg:    cfg,
	}
}
