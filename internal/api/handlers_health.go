// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package api

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports storage liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// healthStatus is the wire shape of the health endpoint.
type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health reports overall service health. The database check runs with a
// short deadline so a wedged store cannot hang monitoring.
func Health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := healthStatus{Status: "ok", Database: "ok"}
		code := http.StatusOK
		if err := db.Ping(ctx); err != nil {
			status.Status = "degraded"
			status.Database = err.Error()
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, r, code, status)
	}
}
