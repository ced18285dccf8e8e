// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cinegraph/cinegraph/internal/metrics"
	"github.com/cinegraph/cinegraph/internal/models"
)

// PopularFilms returns the most liked films, ties broken by film id. Films
// with zero likes still rank. genreID and year are optional filters; zero
// disables each.
func (db *DB) PopularFilms(ctx context.Context, count int, genreID int64, year int) ([]models.Film, error) {
	start := time.Now()

	query := filmSelect
	args := []any{}
	where := ""
	if genreID != 0 {
		if _, err := db.GetGenre(ctx, genreID); err != nil {
			return nil, err
		}
		where += ` AND f.film_id IN (SELECT film_id FROM film_genres WHERE genre_id = ?)`
		args = append(args, genreID)
	}
	if year != 0 {
		where += ` AND EXTRACT(year FROM f.release_date) = ?`
		args = append(args, year)
	}
	if where != "" {
		query += ` WHERE` + where[4:]
	}
	query += ` ORDER BY likes DESC, f.film_id LIMIT ?`
	args = append(args, count)

	films, err := db.queryFilms(ctx, query, args...)
	metrics.RecordDBQuery("select", "films", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to load popular films: %w", err)
	}
	return films, nil
}

// CommonFilms returns the films two users both like, most popular first.
func (db *DB) CommonFilms(ctx context.Context, userID, friendID int64) ([]models.Film, error) {
	start := time.Now()

	if err := db.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := db.requireUser(ctx, friendID); err != nil {
		return nil, err
	}

	query := filmSelect + `
		WHERE f.film_id IN (SELECT film_id FROM film_likes WHERE user_id = ?)
		  AND f.film_id IN (SELECT film_id FROM film_likes WHERE user_id = ?)
		ORDER BY likes DESC, f.film_id`

	films, err := db.queryFilms(ctx, query, userID, friendID)
	metrics.RecordDBQuery("select", "films", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to load common films: %w", err)
	}
	return films, nil
}

// SearchFilms finds films whose title or director name contains the query,
// case-insensitively, most popular first. At least one of byTitle and
// byDirector must be set; the caller validates that.
func (db *DB) SearchFilms(ctx context.Context, query string, byTitle, byDirector bool) ([]models.Film, error) {
	start := time.Now()

	pattern := "%" + query + "%"
	conditions := ""
	args := []any{}
	if byTitle {
		conditions = `f.title ILIKE ?`
		args = append(args, pattern)
	}
	if byDirector {
		if conditions != "" {
			conditions += ` OR `
		}
		conditions += `f.film_id IN (
			SELECT fd.film_id FROM film_directors fd
			JOIN directors d ON d.director_id = fd.director_id
			WHERE d.name ILIKE ?)`
		args = append(args, pattern)
	}

	sqlQuery := filmSelect + ` WHERE ` + conditions + ` ORDER BY likes DESC, f.film_id`
	films, err := db.queryFilms(ctx, sqlQuery, args...)
	metrics.RecordDBQuery("select", "films", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to search films: %w", err)
	}
	return films, nil
}

// DirectorFilms returns a director's filmography ordered by release year
// ascending or like count descending.
func (db *DB) DirectorFilms(ctx context.Context, directorID int64, sort models.DirectorSort) ([]models.Film, error) {
	start := time.Now()

	if _, err := db.GetDirector(ctx, directorID); err != nil {
		return nil, err
	}

	order := ` ORDER BY f.release_date, f.film_id`
	if sort == models.SortByLikes {
		order = ` ORDER BY likes DESC, f.film_id`
	}

	query := filmSelect + `
		WHERE f.film_id IN (SELECT film_id FROM film_directors WHERE director_id = ?)` + order

	films, err := db.queryFilms(ctx, query, directorID)
	metrics.RecordDBQuery("select", "films", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to load director films: %w", err)
	}
	return films, nil
}

// FilmsByIDs loads a hydrated film batch preserving the order of ids.
func (db *DB) FilmsByIDs(ctx context.Context, ids []int64) ([]models.Film, error) {
	if len(ids) == 0 {
		return []models.Film{}, nil
	}
	start := time.Now()

	ordered := make([]models.Film, 0, len(ids))
	for _, id := range ids {
		film, err := db.GetFilm(ctx, id)
		if err != nil {
			return nil, err
		}
		ordered = append(ordered, *film)
	}
	metrics.RecordDBQuery("select", "films", start, nil)
	return ordered, nil
}
