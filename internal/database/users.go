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

// CreateUser inserts a new user and assigns its id. A blank display name
// defaults to the login.
func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	start := time.Now()
	if user.Name == "" {
		user.Name = user.Login
	}

	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO users (user_id, email, login, name, birthday)
		 VALUES (nextval('seq_users'), ?, ?, ?, ?)
		 RETURNING user_id`,
		user.Email, user.Login, user.Name, user.Birthday.Time,
	).Scan(&user.ID)
	metrics.RecordDBQuery("insert", "users", start, err)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateUser replaces all mutable fields of an existing user.
func (db *DB) UpdateUser(ctx context.Context, user *models.User) error {
	start := time.Now()
	if user.Name == "" {
		user.Name = user.Login
	}

	res, err := db.conn.ExecContext(ctx,
		`UPDATE users SET email = ?, login = ?, name = ?, birthday = ? WHERE user_id = ?`,
		user.Email, user.Login, user.Name, user.Birthday.Time, user.ID)
	metrics.RecordDBQuery("update", "users", start, err)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return models.NotFound("user", user.ID)
	}
	return nil
}

// GetUser loads a single user by id.
func (db *DB) GetUser(ctx context.Context, id int64) (*models.User, error) {
	start := time.Now()
	user := &models.User{}
	err := db.conn.QueryRowContext(ctx,
		`SELECT user_id, email, login, name, birthday FROM users WHERE user_id = ?`,
		id,
	).Scan(&user.ID, &user.Email, &user.Login, &user.Name, &user.Birthday.Time)
	metrics.RecordDBQuery("select", "users", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return user, nil
}

// ListUsers returns all users ordered by id.
func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT user_id, email, login, name, birthday FROM users ORDER BY user_id`)
	metrics.RecordDBQuery("select", "users", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer closeRows(rows)

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

// DeleteUser removes a user together with everything hanging off it: likes,
// friend edges in both directions, review votes, authored reviews (and the
// votes on them), and the user's feed.
func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	start := time.Now()
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete user %d: %w", id, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if affected == 0 {
			return models.NotFound("user", id)
		}

		cleanups := []string{
			`DELETE FROM film_likes WHERE user_id = ?`,
			`DELETE FROM friend_edges WHERE from_user = ? OR to_user = ?`,
			`DELETE FROM review_votes WHERE user_id = ?`,
			`DELETE FROM review_votes WHERE review_id IN (SELECT review_id FROM reviews WHERE user_id = ?)`,
			`DELETE FROM reviews WHERE user_id = ?`,
			`DELETE FROM feed_events WHERE user_id = ?`,
		}
		for _, stmt := range cleanups {
			args := []any{id}
			if stmt == `DELETE FROM friend_edges WHERE from_user = ? OR to_user = ?` {
				args = []any{id, id}
			}
			if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
				return fmt.Errorf("failed to clean up after user %d: %w", id, err)
			}
		}
		return nil
	})
	metrics.RecordDBQuery("delete", "users", start, err)
	return err
}

// userExistsTx reports whether a user row exists inside a transaction.
func userExistsTx(ctx context.Context, tx *sql.Tx, id int64) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE user_id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NotFound("user", id)
	}
	if err != nil {
		return fmt.Errorf("failed to check user %d: %w", id, err)
	}
	return nil
}
