// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

// Package middleware provides chi-compatible HTTP middleware: request ID
// propagation, Prometheus instrumentation, and gzip compression.
package middleware

import (
	"net/http"

	"github.com/filmatlas/filmatlas/internal/logging"
)

// RequestIDHeader is honored when set by an upstream proxy and echoed back
// on every response.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request a unique ID, echoes it in the response
// header, and stores it in the request context so logging.Ctx picks it up.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		w.Header().Set(RequestIDHeader, requestID)
		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
