// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package database

import (
	"database/sql"

	"github.com/cinegraph/cinegraph/internal/logging"
)

// closeRows closes a result set, logging any failure.
func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close result rows")
	}
}
