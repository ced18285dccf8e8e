// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package middleware

import (
	"net/http"
	"time"

	"github.com/cinegraph/cinegraph/internal/logging"
)

// RequestLogging writes one structured log line per completed request.
// Health and metrics probes are logged at debug so steady-state monitoring
// does not drown the log.
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		ev := logging.Ctx(r.Context()).Info()
		if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
			ev = logging.Ctx(r.Context()).Debug()
		}
		ev.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapper.statusCode).
			Dur("duration", time.Since(start)).
			Str("remote_addr", r.RemoteAddr).
			Msg("request completed")
	})
}
