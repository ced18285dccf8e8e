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
	"strings"
	"time"

	"github.com/cinegraph/cinegraph/internal/metrics"
	"github.com/cinegraph/cinegraph/internal/models"
)

// filmSelect is the base projection for film queries. The like count is
// always computed from the film_likes relation, never cached on the film row.
const filmSelect = `
	SELECT f.film_id, f.title, f.description, f.release_date, f.duration,
	       f.rating_id, COALESCE(r.name, ''), COALESCE(r.description, ''),
	       (SELECT COUNT(*) FROM film_likes fl WHERE fl.film_id = f.film_id) AS likes
	FROM films f
	LEFT JOIN mpa_ratings r ON r.rating_id = f.rating_id`

// CreateFilm inserts a new film with its genre and director links and
// assigns its id. Unknown genre, director or MPA rating ids are rejected
// with NotFound.
func (db *DB) CreateFilm(ctx context.Context, film *models.Film) error {
	start := time.Now()
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireReferencesTx(ctx, tx, film); err != nil {
			return err
		}

		err := tx.QueryRowContext(ctx,
			`INSERT INTO films (film_id, title, description, release_date, duration, rating_id)
			 VALUES (nextval('seq_films'), ?, ?, ?, ?, ?)
			 RETURNING film_id`,
			film.Title, film.Description, film.ReleaseDate.Time, film.Duration, ratingID(film),
		).Scan(&film.ID)
		if err != nil {
			return fmt.Errorf("failed to create film: %w", err)
		}

		return replaceFilmLinksTx(ctx, tx, film)
	})
	metrics.RecordDBQuery("insert", "films", start, err)
	if err != nil {
		return err
	}
	return db.hydrateFilm(ctx, film)
}

// UpdateFilm replaces all mutable fields of an existing film, including its
// genre and director links.
func (db *DB) UpdateFilm(ctx context.Context, film *models.Film) error {
	start := time.Now()
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireReferencesTx(ctx, tx, film); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE films SET title = ?, description = ?, release_date = ?, duration = ?, rating_id = ?
			 WHERE film_id = ?`,
			film.Title, film.Description, film.ReleaseDate.Time, film.Duration, ratingID(film), film.ID)
		if err != nil {
			return fmt.Errorf("failed to update film %d: %w", film.ID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if affected == 0 {
			return models.NotFound("film", film.ID)
		}

		for _, stmt := range []string{
			`DELETE FROM film_genres WHERE film_id = ?`,
			`DELETE FROM film_directors WHERE film_id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, film.ID); err != nil {
				return fmt.Errorf("failed to clear film links: %w", err)
			}
		}
		return replaceFilmLinksTx(ctx, tx, film)
	})
	metrics.RecordDBQuery("update", "films", start, err)
	if err != nil {
		return err
	}
	return db.hydrateFilm(ctx, film)
}

// GetFilm loads a single film by id, hydrated with genres, directors, MPA
// rating and like count.
func (db *DB) GetFilm(ctx context.Context, id int64) (*models.Film, error) {
	start := time.Now()
	film, err := db.scanOneFilm(ctx, filmSelect+` WHERE f.film_id = ?`, id)
	metrics.RecordDBQuery("select", "films", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound("film", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get film %d: %w", id, err)
	}
	if err := db.attachFilmLinks(ctx, []*models.Film{film}); err != nil {
		return nil, err
	}
	return film, nil
}

// ListFilms returns all films ordered by id.
func (db *DB) ListFilms(ctx context.Context) ([]models.Film, error) {
	start := time.Now()
	films, err := db.queryFilms(ctx, filmSelect+` ORDER BY f.film_id`)
	metrics.RecordDBQuery("select", "films", start, err)
	return films, err
}

// DeleteFilm removes a film with its genre links, director links, likes,
// reviews and the votes on those reviews.
func (db *DB) DeleteFilm(ctx context.Context, id int64) error {
	start := time.Now()
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM films WHERE film_id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete film %d: %w", id, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if affected == 0 {
			return models.NotFound("film", id)
		}

		for _, stmt := range []string{
			`DELETE FROM film_genres WHERE film_id = ?`,
			`DELETE FROM film_directors WHERE film_id = ?`,
			`DELETE FROM film_likes WHERE film_id = ?`,
			`DELETE FROM review_votes WHERE review_id IN (SELECT review_id FROM reviews WHERE film_id = ?)`,
			`DELETE FROM reviews WHERE film_id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("failed to clean up after film %d: %w", id, err)
			}
		}
		return nil
	})
	metrics.RecordDBQuery("delete", "films", start, err)
	return err
}

// ratingID returns the film's MPA rating id, or nil when unset.
func ratingID(film *models.Film) any {
	if film.MPA.ID == 0 {
		return nil
	}
	return film.MPA.ID
}

// requireReferencesTx verifies that the MPA rating, genres and directors
// referenced by a film exist.
func requireReferencesTx(ctx context.Context, tx *sql.Tx, film *models.Film) error {
	if film.MPA.ID != 0 {
		var one int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM mpa_ratings WHERE rating_id = ?`, film.MPA.ID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return models.NotFound("mpa rating", film.MPA.ID)
		}
		if err != nil {
			return fmt.Errorf("failed to check mpa rating %d: %w", film.MPA.ID, err)
		}
	}
	for _, g := range film.Genres {
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM genres WHERE genre_id = ?`, g.ID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return models.NotFound("genre", g.ID)
		}
		if err != nil {
			return fmt.Errorf("failed to check genre %d: %w", g.ID, err)
		}
	}
	for _, d := range film.Directors {
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM directors WHERE director_id = ?`, d.ID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return models.NotFound("director", d.ID)
		}
		if err != nil {
			return fmt.Errorf("failed to check director %d: %w", d.ID, err)
		}
	}
	return nil
}

// replaceFilmLinksTx inserts genre and director links, deduplicating repeats
// in the request payload.
func replaceFilmLinksTx(ctx context.Context, tx *sql.Tx, film *models.Film) error {
	for _, g := range film.Genres {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO film_genres (film_id, genre_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
			film.ID, g.ID)
		if err != nil {
			return fmt.Errorf("failed to link genre %d: %w", g.ID, err)
		}
	}
	for _, d := range film.Directors {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO film_directors (film_id, director_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
			film.ID, d.ID)
		if err != nil {
			return fmt.Errorf("failed to link director %d: %w", d.ID, err)
		}
	}
	return nil
}

// scanOneFilm runs a single-row film query.
func (db *DB) scanOneFilm(ctx context.Context, query string, args ...any) (*models.Film, error) {
	film := &models.Film{}
	var ratingID sql.NullInt64
	var ratingName, ratingDesc string
	err := db.conn.QueryRowContext(ctx, query, args...).Scan(
		&film.ID, &film.Title, &film.Description, &film.ReleaseDate.Time,
		&film.Duration, &ratingID, &ratingName, &ratingDesc, &film.Likes)
	if err != nil {
		return nil, err
	}
	if ratingID.Valid {
		film.MPA = models.MPARating{ID: ratingID.Int64, Name: ratingName, Description: ratingDesc}
	}
	return film, nil
}

// queryFilms runs a multi-row film query and hydrates genre and director links.
func (db *DB) queryFilms(ctx context.Context, query string, args ...any) ([]models.Film, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query films: %w", err)
	}
	defer closeRows(rows)

	films := []models.Film{}
	for rows.Next() {
		var film models.Film
		var ratingID sql.NullInt64
		var ratingName, ratingDesc string
		if err := rows.Scan(
			&film.ID, &film.Title, &film.Description, &film.ReleaseDate.Time,
			&film.Duration, &ratingID, &ratingName, &ratingDesc, &film.Likes); err != nil {
			return nil, fmt.Errorf("failed to scan film: %w", err)
		}
		if ratingID.Valid {
			film.MPA = models.MPARating{ID: ratingID.Int64, Name: ratingName, Description: ratingDesc}
		}
		films = append(films, film)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ptrs := make([]*models.Film, len(films))
	for i := range films {
		ptrs[i] = &films[i]
	}
	if err := db.attachFilmLinks(ctx, ptrs); err != nil {
		return nil, err
	}
	return films, nil
}

// hydrateFilm reloads a film's derived fields after a write.
func (db *DB) hydrateFilm(ctx context.Context, film *models.Film) error {
	loaded, err := db.GetFilm(ctx, film.ID)
	if err != nil {
		return err
	}
	*film = *loaded
	return nil
}

// attachFilmLinks loads genres and directors for a batch of films in two
// queries instead of two per film.
func (db *DB) attachFilmLinks(ctx context.Context, films []*models.Film) error {
	if len(films) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Film, len(films))
	ids := make([]string, 0, len(films))
	args := make([]any, 0, len(films))
	for _, f := range films {
		f.Genres = []models.Genre{}
		f.Directors = []models.Director{}
		byID[f.ID] = f
		ids = append(ids, "?")
		args = append(args, f.ID)
	}
	placeholder := strings.Join(ids, ", ")

	rows, err := db.conn.QueryContext(ctx,
		`SELECT fg.film_id, g.genre_id, g.name
		 FROM film_genres fg JOIN genres g ON g.genre_id = fg.genre_id
		 WHERE fg.film_id IN (`+placeholder+`)
		 ORDER BY g.genre_id`, args...)
	if err != nil {
		return fmt.Errorf("failed to load film genres: %w", err)
	}
	defer closeRows(rows)
	for rows.Next() {
		var filmID int64
		var g models.Genre
		if err := rows.Scan(&filmID, &g.ID, &g.Name); err != nil {
			return fmt.Errorf("failed to scan film genre: %w", err)
		}
		byID[filmID].Genres = append(byID[filmID].Genres, g)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	drows, err := db.conn.QueryContext(ctx,
		`SELECT fd.film_id, d.director_id, d.name
		 FROM film_directors fd JOIN directors d ON d.director_id = fd.director_id
		 WHERE fd.film_id IN (`+placeholder+`)
		 ORDER BY d.director_id`, args...)
	if err != nil {
		return fmt.Errorf("failed to load film directors: %w", err)
	}
	defer closeRows(drows)
	for drows.Next() {
		var filmID int64
		var d models.Director
		if err := drows.Scan(&filmID, &d.ID, &d.Name); err != nil {
			return fmt.Errorf("failed to scan film director: %w", err)
		}
		byID[filmID].Directors = append(byID[filmID].Directors, d)
	}
	return drows.Err()
}

// requireFilm returns NotFound when the film id does not exist.
func (db *DB) requireFilm(ctx context.Context, id int64) error {
	var one int
	err := db.conn.QueryRowContext(ctx, `SELECT 1 FROM films WHERE film_id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NotFound("film", id)
	}
	if err != nil {
		return fmt.Errorf("failed to check film %d: %w", id, err)
	}
	return nil
}
