// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

// Package middleware provides the HTTP middleware stack shared by all
// Cinegraph routes: request identifiers, request logging and Prometheus
// instrumentation.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/cinegraph/cinegraph/internal/logging"
)

// RequestID tags each request with a unique ID, echoed in the X-Request-ID
// response header and propagated through the request context so every log
// line of the request carries it. IDs supplied by an upstream proxy are
// kept.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set("X-Request-ID", requestID)
		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
