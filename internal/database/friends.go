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

// AddFriend inserts a directed friend edge and appends the given feed event
// in the same transaction. Friendship is asymmetric: the target user gains
// nothing until they add the edge back, at which point both edges flip to
// confirmed. Repeating the call is idempotent for the edge but still appends
// a feed event.
func (db *DB) AddFriend(ctx context.Context, userID, friendID int64, ev models.FeedEvent) error {
	start := time.Now()
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		if err := userExistsTx(ctx, tx, userID); err != nil {
			return err
		}
		if err := userExistsTx(ctx, tx, friendID); err != nil {
			return err
		}

		var reverse bool
		err := tx.QueryRowContext(ctx,
			`SELECT TRUE FROM friend_edges WHERE from_user = ? AND to_user = ?`,
			friendID, userID).Scan(&reverse)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to check reverse edge: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO friend_edges (from_user, to_user, confirmed) VALUES (?, ?, ?)
			 ON CONFLICT DO NOTHING`,
			userID, friendID, reverse)
		if err != nil {
			return fmt.Errorf("failed to add friend edge: %w", err)
		}

		if reverse {
			_, err = tx.ExecContext(ctx,
				`UPDATE friend_edges SET confirmed = TRUE
				 WHERE (from_user = ? AND to_user = ?) OR (from_user = ? AND to_user = ?)`,
				userID, friendID, friendID, userID)
			if err != nil {
				return fmt.Errorf("failed to confirm friendship: %w", err)
			}
		}

		return appendFeedEventTx(ctx, tx, ev)
	})
	metrics.RecordDBQuery("insert", "friend_edges", start, err)
	if err == nil {
		metrics.FriendOperationsTotal.WithLabelValues("add").Inc()
		metrics.RecordFeedEvent(string(ev.EventType), string(ev.Operation))
	}
	return err
}

// RemoveFriend deletes a directed friend edge, demotes the surviving reverse
// edge to unconfirmed and appends the given feed event in the same
// transaction. Removing an absent edge is not an error.
func (db *DB) RemoveFriend(ctx context.Context, userID, friendID int64, ev models.FeedEvent) error {
	start := time.Now()
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		if err := userExistsTx(ctx, tx, userID); err != nil {
			return err
		}
		if err := userExistsTx(ctx, tx, friendID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`DELETE FROM friend_edges WHERE from_user = ? AND to_user = ?`,
			userID, friendID)
		if err != nil {
			return fmt.Errorf("failed to remove friend edge: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE friend_edges SET confirmed = FALSE WHERE from_user = ? AND to_user = ?`,
			friendID, userID)
		if err != nil {
			return fmt.Errorf("failed to demote reverse edge: %w", err)
		}

		return appendFeedEventTx(ctx, tx, ev)
	})
	metrics.RecordDBQuery("delete", "friend_edges", start, err)
	if err == nil {
		metrics.FriendOperationsTotal.WithLabelValues("remove").Inc()
		metrics.RecordFeedEvent(string(ev.EventType), string(ev.Operation))
	}
	return err
}

// ListFriends returns the users this user has added, ordered by id.
// Confirmation does not gate visibility.
func (db *DB) ListFriends(ctx context.Context, userID int64) ([]models.User, error) {
	start := time.Now()

	if err := db.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT u.user_id, u.email, u.login, u.name, u.birthday
		 FROM friend_edges fe
		 JOIN users u ON u.user_id = fe.to_user
		 WHERE fe.from_user = ?
		 ORDER BY u.user_id`,
		userID)
	metrics.RecordDBQuery("select", "friend_edges", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends of user %d: %w", userID, err)
	}
	defer closeRows(rows)

	return scanUsers(rows)
}

// CommonFriends returns the users both arguments have added, ordered by id.
func (db *DB) CommonFriends(ctx context.Context, userID, otherID int64) ([]models.User, error) {
	start := time.Now()

	if err := db.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := db.requireUser(ctx, otherID); err != nil {
		return nil, err
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT u.user_id, u.email, u.login, u.name, u.birthday
		 FROM friend_edges a
		 JOIN friend_edges b ON a.to_user = b.to_user
		 JOIN users u ON u.user_id = a.to_user
		 WHERE a.from_user = ? AND b.from_user = ?
		 ORDER BY u.user_id`,
		userID, otherID)
	metrics.RecordDBQuery("select", "friend_edges", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list common friends: %w", err)
	}
	defer closeRows(rows)

	return scanUsers(rows)
}

// scanUsers drains a user projection result set.
func scanUsers(rows *sql.Rows) ([]models.User, error) {
	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Login, &u.Name, &u.Birthday.Time); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
