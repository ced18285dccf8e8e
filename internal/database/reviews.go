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

// reviewSelect projects a review with its usefulness score. Usefulness is
// always derived from the vote relation: positive votes minus negative votes.
const reviewSelect = `
	SELECT rv.review_id, rv.film_id, rv.user_id, rv.content, rv.is_positive,
	       COALESCE((SELECT SUM(CASE WHEN v.positive THEN 1 ELSE -1 END)
	                 FROM review_votes v WHERE v.review_id = rv.review_id), 0) AS useful
	FROM reviews rv`

// CreateReview inserts a new review and appends a feed event owned by the
// author in the same transaction. The event's entity id is set to the new
// review id.
func (db *DB) CreateReview(ctx context.Context, review *models.Review, ev models.FeedEvent) error {
	start := time.Now()
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		if err := userExistsTx(ctx, tx, review.UserID); err != nil {
			return err
		}
		if err := filmExistsTx(ctx, tx, review.FilmID); err != nil {
			return err
		}

		err := tx.QueryRowContext(ctx,
			`INSERT INTO reviews (review_id, film_id, user_id, content, is_positive)
			 VALUES (nextval('seq_reviews'), ?, ?, ?, ?)
			 RETURNING review_id`,
			review.FilmID, review.UserID, review.Content, review.IsPositive,
		).Scan(&review.ID)
		if err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		review.Useful = 0

		ev.EntityID = review.ID
		return appendFeedEventTx(ctx, tx, ev)
	})
	metrics.RecordDBQuery("insert", "reviews", start, err)
	if err == nil {
		metrics.RecordFeedEvent(string(ev.EventType), string(ev.Operation))
	}
	return err
}

// UpdateReview changes the content and verdict of an existing review. Film
// and author bindings are immutable. The feed event is owned by the original
// author regardless of who submitted the update.
func (db *DB) UpdateReview(ctx context.Context, review *models.Review, ev models.FeedEvent) error {
	start := time.Now()
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		var authorID, filmID int64
		err := tx.QueryRowContext(ctx,
			`SELECT user_id, film_id FROM reviews WHERE review_id = ?`,
			review.ID).Scan(&authorID, &filmID)
		if errors.Is(err, sql.ErrNoRows) {
			return models.NotFound("review", review.ID)
		}
		if err != nil {
			return fmt.Errorf("failed to load review %d: %w", review.ID, err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE reviews SET content = ?, is_positive = ? WHERE review_id = ?`,
			review.Content, review.IsPositive, review.ID)
		if err != nil {
			return fmt.Errorf("failed to update review %d: %w", review.ID, err)
		}

		review.UserID = authorID
		review.FilmID = filmID
		ev.UserID = authorID
		ev.EntityID = review.ID
		return appendFeedEventTx(ctx, tx, ev)
	})
	metrics.RecordDBQuery("update", "reviews", start, err)
	if err != nil {
		return err
	}
	metrics.RecordFeedEvent(string(ev.EventType), string(ev.Operation))

	loaded, err := db.GetReview(ctx, review.ID)
	if err != nil {
		return err
	}
	*review = *loaded
	return nil
}

// DeleteReview removes a review and its votes, appending a feed event owned
// by the review's author.
func (db *DB) DeleteReview(ctx context.Context, id int64, ev models.FeedEvent) error {
	start := time.Now()
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		var authorID int64
		err := tx.QueryRowContext(ctx,
			`SELECT user_id FROM reviews WHERE review_id = ?`, id).Scan(&authorID)
		if errors.Is(err, sql.ErrNoRows) {
			return models.NotFound("review", id)
		}
		if err != nil {
			return fmt.Errorf("failed to load review %d: %w", id, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE review_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete review %d: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM review_votes WHERE review_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete review votes: %w", err)
		}

		ev.UserID = authorID
		ev.EntityID = id
		return appendFeedEventTx(ctx, tx, ev)
	})
	metrics.RecordDBQuery("delete", "reviews", start, err)
	if err == nil {
		metrics.RecordFeedEvent(string(ev.EventType), string(ev.Operation))
	}
	return err
}

// GetReview loads a single review by id.
func (db *DB) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	start := time.Now()
	review := &models.Review{}
	err := db.conn.QueryRowContext(ctx, reviewSelect+` WHERE rv.review_id = ?`, id).Scan(
		&review.ID, &review.FilmID, &review.UserID, &review.Content,
		&review.IsPositive, &review.Useful)
	metrics.RecordDBQuery("select", "reviews", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("review", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review %d: %w", id, err)
	}
	return review, nil
}

// ListReviews returns reviews ordered by usefulness, most useful first.
// A filmID of zero lists reviews across all films.
func (db *DB) ListReviews(ctx context.Context, filmID int64, count int) ([]models.Review, error) {
	start := time.Now()

	query := reviewSelect
	args := []any{}
	if filmID != 0 {
		if err := db.requireFilm(ctx, filmID); err != nil {
			return nil, err
		}
		query += ` WHERE rv.film_id = ?`
		args = append(args, filmID)
	}
	query += ` ORDER BY useful DESC, rv.review_id LIMIT ?`
	args = append(args, count)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "reviews", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer closeRows(rows)

	reviews := []models.Review{}
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.FilmID, &r.UserID, &r.Content, &r.IsPositive, &r.Useful); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// VoteReview records a user's usefulness vote on a review. Each user holds at
// most one vote per review; voting again in the same direction changes
// nothing, voting in the other direction switches the vote. Returns true when
// the stored state changed.
func (db *DB) VoteReview(ctx context.Context, reviewID, userID int64, positive bool, ev models.FeedEvent) (bool, error) {
	start := time.Now()
	var changed bool
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		if err := reviewExistsTx(ctx, tx, reviewID); err != nil {
			return err
		}
		if err := userExistsTx(ctx, tx, userID); err != nil {
			return err
		}

		var current bool
		err := tx.QueryRowContext(ctx,
			`SELECT positive FROM review_votes WHERE review_id = ? AND user_id = ?`,
			reviewID, userID).Scan(&current)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			_, err = tx.ExecContext(ctx,
				`INSERT INTO review_votes (review_id, user_id, positive) VALUES (?, ?, ?)`,
				reviewID, userID, positive)
			if err != nil {
				return fmt.Errorf("failed to insert vote: %w", err)
			}
			changed = true
		case err != nil:
			return fmt.Errorf("failed to check vote: %w", err)
		case current == positive:
			return nil
		default:
			_, err = tx.ExecContext(ctx,
				`UPDATE review_votes SET positive = ? WHERE review_id = ? AND user_id = ?`,
				positive, reviewID, userID)
			if err != nil {
				return fmt.Errorf("failed to switch vote: %w", err)
			}
			changed = true
		}

		return appendFeedEventTx(ctx, tx, ev)
	})
	metrics.RecordDBQuery("upsert", "review_votes", start, err)
	if err == nil && changed {
		direction := "down"
		if positive {
			direction = "up"
		}
		metrics.ReviewVotesTotal.WithLabelValues(direction).Inc()
		metrics.RecordFeedEvent(string(ev.EventType), string(ev.Operation))
	}
	return changed, err
}

// RemoveVote withdraws a user's vote from a review. Removing an absent vote
// changes nothing. Returns true when a vote was actually removed.
func (db *DB) RemoveVote(ctx context.Context, reviewID, userID int64, ev models.FeedEvent) (bool, error) {
	start := time.Now()
	var changed bool
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		if err := reviewExistsTx(ctx, tx, reviewID); err != nil {
			return err
		}
		if err := userExistsTx(ctx, tx, userID); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			`DELETE FROM review_votes WHERE review_id = ? AND user_id = ?`,
			reviewID, userID)
		if err != nil {
			return fmt.Errorf("failed to remove vote: %w", err)
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
	metrics.RecordDBQuery("delete", "review_votes", start, err)
	if err == nil && changed {
		metrics.ReviewVotesTotal.WithLabelValues("retract").Inc()
		metrics.RecordFeedEvent(string(ev.EventType), string(ev.Operation))
	}
	return changed, err
}

// reviewExistsTx reports whether a review row exists inside a transaction.
func reviewExistsTx(ctx context.Context, tx *sql.Tx, id int64) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM reviews WHERE review_id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NotFound("review", id)
	}
	if err != nil {
		return fmt.Errorf("failed to check review %d: %w", id, err)
	}
	return nil
}
