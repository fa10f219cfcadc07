// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/filmatlas/filmatlas/internal/auth"
	"github.com/filmatlas/filmatlas/internal/database"
	"github.com/filmatlas/filmatlas/internal/logging"
	"github.com/filmatlas/filmatlas/internal/metrics"
	"github.com/filmatlas/filmatlas/internal/models"
)

// Register handles POST /api/v1/auth/register: creates an account and
// returns a token so clients can skip a separate login.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req models.RegisterRequest
	if !decodeBody(w, r, &req) || !validateRequest(w, &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.Security.BcryptCost)
	if err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "Password could not be processed", err)
		return
	}

	user, err := h.db.CreateUser(r.Context(), req.Username, hash)
	if err != nil {
		metrics.RecordAuthAttempt("register", false)
		if errors.Is(err, database.ErrDuplicate) {
			respondError(w, http.StatusConflict, codeConflict, "Username is already taken", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeDatabase, "Failed to create account", err)
		return
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "Failed to issue token", err)
		return
	}

	metrics.RecordAuthAttempt("register", true)
	logger := logging.Ctx(r.Context())
	logger.Info().Str("username", sanitizeLogValue(user.Username)).Msg("user registered")
	respondSuccess(w, http.StatusCreated, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(h.jwt.Timeout().Seconds()),
	}, start)
}

// Login handles POST /api/v1/auth/login. Unknown usernames and wrong
// passwords get the same response so accounts cannot be enumerated.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req models.LoginRequest
	if !decodeBody(w, r, &req) || !validateRequest(w, &req) {
		return
	}

	user, err := h.db.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		metrics.RecordAuthAttempt("login", false)
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, codeUnauthorized, "Invalid username or password", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeDatabase, "Login failed", err)
		return
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "Login failed", err)
		return
	}
	if !ok {
		metrics.RecordAuthAttempt("login", false)
		respondError(w, http.StatusUnauthorized, codeUnauthorized, "Invalid username or password", nil)
		return
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "Failed to issue token", err)
		return
	}

	metrics.RecordAuthAttempt("login", true)
	respondSuccess(w, http.StatusOK, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(h.jwt.Timeout().Seconds()),
	}, start)
}

// Me handles GET /api/v1/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, codeUnauthorized, "Authentication required", nil)
		return
	}

	user, err := h.db.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		respondDBError(w, err, "Account no longer exists")
		return
	}
	respondSuccess(w, http.StatusOK, user, start)
}
