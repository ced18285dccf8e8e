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

// ListGenres returns the genre catalogue ordered by id.
func (db *DB) ListGenres(ctx context.Context) ([]models.Genre, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `SELECT genre_id, name FROM genres ORDER BY genre_id`)
	metrics.RecordDBQuery("select", "genres", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	defer closeRows(rows)

	genres := []models.Genre{}
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// GetGenre loads a single genre by id.
func (db *DB) GetGenre(ctx context.Context, id int64) (*models.Genre, error) {
	start := time.Now()
	g := &models.Genre{}
	err := db.conn.QueryRowContext(ctx,
		`SELECT genre_id, name FROM genres WHERE genre_id = ?`, id).Scan(&g.ID, &g.Name)
	metrics.RecordDBQuery("select", "genres", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("genre", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get genre %d: %w", id, err)
	}
	return g, nil
}

// ListMPARatings returns the MPA rating catalogue ordered by id.
func (db *DB) ListMPARatings(ctx context.Context) ([]models.MPARating, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT rating_id, name, description FROM mpa_ratings ORDER BY rating_id`)
	metrics.RecordDBQuery("select", "mpa_ratings", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list mpa ratings: %w", err)
	}
	defer closeRows(rows)

	ratings := []models.MPARating{}
	for rows.Next() {
		var r models.MPARating
		if err := rows.Scan(&r.ID, &r.Name, &r.Description); err != nil {
			return nil, fmt.Errorf("failed to scan mpa rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

// GetMPARating loads a single MPA rating by id.
func (db *DB) GetMPARating(ctx context.Context, id int64) (*models.MPARating, error) {
	start := time.Now()
	r := &models.MPARating{}
	err := db.conn.QueryRowContext(ctx,
		`SELECT rating_id, name, description FROM mpa_ratings WHERE rating_id = ?`,
		id).Scan(&r.ID, &r.Name, &r.Description)
	metrics.RecordDBQuery("select", "mpa_ratings", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("mpa rating", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mpa rating %d: %w", id, err)
	}
	return r, nil
}

// CreateDirector inserts a new director and assigns its id.
func (db *DB) CreateDirector(ctx context.Context, director *models.Director) error {
	start := time.Now()
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO directors (director_id, name) VALUES (nextval('seq_directors'), ?)
		 RETURNING director_id`,
		director.Name).Scan(&director.ID)
	metrics.RecordDBQuery("insert", "directors", start, err)
	if err != nil {
		return fmt.Errorf("failed to create director: %w", err)
	}
	return nil
}

// UpdateDirector renames an existing director.
func (db *DB) UpdateDirector(ctx context.Context, director *models.Director) error {
	start := time.Now()
	res, err := db.conn.ExecContext(ctx,
		`UPDATE directors SET name = ? WHERE director_id = ?`, director.Name, director.ID)
	metrics.RecordDBQuery("update", "directors", start, err)
	if err != nil {
		return fmt.Errorf("failed to update director %d: %w", director.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return models.NotFound("director", director.ID)
	}
	return nil
}

// GetDirector loads a single director by id.
func (db *DB) GetDirector(ctx context.Context, id int64) (*models.Director, error) {
	start := time.Now()
	d := &models.Director{}
	err := db.conn.QueryRowContext(ctx,
		`SELECT director_id, name FROM directors WHERE director_id = ?`, id).Scan(&d.ID, &d.Name)
	metrics.RecordDBQuery("select", "directors", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("director", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get director %d: %w", id, err)
	}
	return d, nil
}

// ListDirectors returns all directors ordered by id.
func (db *DB) ListDirectors(ctx context.Context) ([]models.Director, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT director_id, name FROM directors ORDER BY director_id`)
	metrics.RecordDBQuery("select", "directors", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list directors: %w", err)
	}
	defer closeRows(rows)

	directors := []models.Director{}
	for rows.Next() {
		var d models.Director
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("failed to scan director: %w", err)
		}
		directors = append(directors, d)
	}
	return directors, rows.Err()
}

// DeleteDirector removes a director and its film links. Films survive the
// deletion; they simply lose the credit.
func (db *DB) DeleteDirector(ctx context.Context, id int64) error {
	start := time.Now()
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM directors WHERE director_id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete director %d: %w", id, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if affected == 0 {
			return models.NotFound("director", id)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM film_directors WHERE director_id = ?`, id); err != nil {
			return fmt.Errorf("failed to unlink director %d: %w", id, err)
		}
		return nil
	})
	metrics.RecordDBQuery("delete", "directors", start, err)
	return err
}
