// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cinegraph/cinegraph/internal/metrics"
	"github.com/cinegraph/cinegraph/internal/models"
)

// appendFeedEventTx appends a feed event inside an open transaction. The
// event id comes from a monotonic sequence so events sharing a timestamp
// still have a total order.
func appendFeedEventTx(ctx context.Context, tx *sql.Tx, ev models.FeedEvent) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO feed_events (event_id, user_id, entity_id, event_type, operation, created_at)
		 VALUES (nextval('seq_feed'), ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		ev.UserID, ev.EntityID, string(ev.EventType), string(ev.Operation))
	if err != nil {
		return fmt.Errorf("failed to append feed event: %w", err)
	}
	return nil
}

// GetFeed returns the user's own activity, oldest first. A non-positive
// limit returns the full history; a positive limit keeps only the most
// recent events. The feed lists what the user did, not what their friends
// did.
func (db *DB) GetFeed(ctx context.Context, userID int64, limit int) ([]models.FeedEvent, error) {
	start := time.Now()

	if err := db.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	query := `SELECT event_id, user_id, entity_id, event_type, operation, created_at
		 FROM feed_events
		 WHERE user_id = ?
		 ORDER BY event_id`
	args := []any{userID}
	if limit > 0 {
		query = `SELECT event_id, user_id, entity_id, event_type, operation, created_at
			 FROM (SELECT * FROM feed_events WHERE user_id = ?
			       ORDER BY event_id DESC LIMIT ?) AS recent
			 ORDER BY event_id`
		args = append(args, limit)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "feed_events", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed for user %d: %w", userID, err)
	}
	defer closeRows(rows)

	events := []models.FeedEvent{}
	for rows.Next() {
		var ev models.FeedEvent
		var eventType, operation string
		var createdAt time.Time
		if err := rows.Scan(&ev.EventID, &ev.UserID, &ev.EntityID, &eventType, &operation, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan feed event: %w", err)
		}
		ev.EventType = models.EventType(eventType)
		ev.Operation = models.Operation(operation)
		ev.Timestamp = models.EpochMillis(createdAt.UTC())
		events = append(events, ev)
	}
	return events, rows.Err()
}

// requireUser returns NotFound when the user id does not exist.
func (db *DB) requireUser(ctx context.Context, id int64) error {
	var one int
	err := db.conn.QueryRowContext(ctx, `SELECT 1 FROM users WHERE user_id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NotFound("user", id)
	}
	if err != nil {
		return fmt.Errorf("failed to check user %d: %w", id, err)
	}
	return nil
}
