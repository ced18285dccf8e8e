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

// AddLike records that a user likes a film. The like relation is a set, so
// repeating the call changes nothing and appends no feed event. Returns true
// when the like was newly added.
func (db *DB) AddLike(ctx context.Context, filmID, userID int64, ev models.FeedEvent) (bool, error) {
	start := time.Now()
	var changed bool
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		if err := userExistsTx(ctx, tx, userID); err != nil {
			return err
		}
		if err := filmExistsTx(ctx, tx, filmID); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO film_likes (film_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
			filmID, userID)
		if err != nil {
			return fmt.Errorf("failed to add like: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		changed = affected > 0
		if !changed {
			return nil
		}
		return appendFeedEventTx(ctx, tx, ev)
	})
	metrics.RecordDBQuery("insert", "film_likes", start, err)
	if err == nil && changed {
		metrics.FilmLikesTotal.WithLabelValues("add").Inc()
		metrics.RecordFeedEvent(string(ev.EventType), string(ev.Operation))
	}
	return changed, err
}

// RemoveLike withdraws a user's like from a film. Removing an absent like
// changes nothing and appends no feed event. Returns true when the like was
// actually removed.
func (db *DB) RemoveLike(ctx context.Context, filmID, userID int64, ev models.FeedEvent) (bool, error) {
	start := time.Now()
	var changed bool
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		if err := userExistsTx(ctx, tx, userID); err != nil {
			return err
		}
		if err := filmExistsTx(ctx, tx, filmID); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			`DELETE FROM film_likes WHERE film_id = ? AND user_id = ?`,
			filmID, userID)
		if err != nil {
			return fmt.Errorf("failed to remove like: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		changed = affected > 0
		if !changed {
			return nil
		}
		return appendFeedEventTx(ctx, tx, ev)
	})
	metrics.RecordDBQuery("delete", "film_likes", start, err)
	if err == nil && changed {
		metrics.FilmLikesTotal.WithLabelValues("remove").Inc()
		metrics.RecordFeedEvent(string(ev.EventType), string(ev.Operation))
	}
	return changed, err
}

// LikesByUser returns the full like relation as user id to liked film ids.
// The recommendation engine consumes this snapshot in one pass.
func (db *DB) LikesByUser(ctx context.Context) (map[int64][]int64, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT user_id, film_id FROM film_likes ORDER BY user_id, film_id`)
	metrics.RecordDBQuery("select", "film_likes", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to load like relation: %w", err)
	}
	defer closeRows(rows)

	likes := map[int64][]int64{}
	for rows.Next() {
		var userID, filmID int64
		if err := rows.Scan(&userID, &filmID); err != nil {
			return nil, fmt.Errorf("failed to scan like: %w", err)
		}
		likes[userID] = append(likes[userID], filmID)
	}
	return likes, rows.Err()
}

// filmExistsTx reports whether a film row exists inside a transaction.
func filmExistsTx(ctx context.Context, tx *sql.Tx, id int64) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM films WHERE film_id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NotFound("film", id)
	}
	if err != nil {
		return fmt.Errorf("failed to check film %d: %w", id, err)
	}
	return nil
}
