// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package database

import (
	"fmt"
)

// schemaStatements defines the Cinegraph schema. DuckDB has no auto-increment
// columns, so every entity draws its id from an explicit sequence.
var schemaStatements = []string{
	`CREATE SEQUENCE IF NOT EXISTS seq_users START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_films START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_directors START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_reviews START 1`,
	`CREATE SEQUENCE IF NOT EXISTS seq_feed START 1`,

	`CREATE TABLE IF NOT EXISTS users (
		user_id  BIGINT PRIMARY KEY,
		email    VARCHAR NOT NULL,
		login    VARCHAR NOT NULL,
		name     VARCHAR NOT NULL,
		birthday DATE
	)`,

	`CREATE TABLE IF NOT EXISTS mpa_ratings (
		rating_id   BIGINT PRIMARY KEY,
		name        VARCHAR NOT NULL,
		description VARCHAR NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS genres (
		genre_id BIGINT PRIMARY KEY,
		name     VARCHAR NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS directors (
		director_id BIGINT PRIMARY KEY,
		name        VARCHAR NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS films (
		film_id      BIGINT PRIMARY KEY,
		title        VARCHAR NOT NULL,
		description  VARCHAR NOT NULL,
		release_date DATE,
		duration     INTEGER NOT NULL,
		rating_id    BIGINT
	)`,

	`CREATE TABLE IF NOT EXISTS film_genres (
		film_id  BIGINT NOT NULL,
		genre_id BIGINT NOT NULL,
		UNIQUE (film_id, genre_id)
	)`,

	`CREATE TABLE IF NOT EXISTS film_directors (
		film_id     BIGINT NOT NULL,
		director_id BIGINT NOT NULL,
		UNIQUE (film_id, director_id)
	)`,

	`CREATE TABLE IF NOT EXISTS film_likes (
		film_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		PRIMARY KEY (film_id, user_id)
	)`,

	// Directed edges. confirmed flips true when the reverse edge exists at
	// insert time; removing an edge demotes the surviving reverse edge.
	`CREATE TABLE IF NOT EXISTS friend_edges (
		from_user BIGINT NOT NULL,
		to_user   BIGINT NOT NULL,
		confirmed BOOLEAN NOT NULL DEFAULT FALSE,
		UNIQUE (from_user, to_user)
	)`,

	`CREATE TABLE IF NOT EXISTS reviews (
		review_id   BIGINT PRIMARY KEY,
		film_id     BIGINT NOT NULL,
		user_id     BIGINT NOT NULL,
		content     VARCHAR NOT NULL,
		is_positive BOOLEAN NOT NULL
	)`,

	// One vote per user per review; positive distinguishes up from down.
	`CREATE TABLE IF NOT EXISTS review_votes (
		review_id BIGINT NOT NULL,
		user_id   BIGINT NOT NULL,
		positive  BOOLEAN NOT NULL,
		UNIQUE (review_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS feed_events (
		event_id   BIGINT PRIMARY KEY,
		user_id    BIGINT NOT NULL,
		entity_id  BIGINT NOT NULL,
		event_type VARCHAR NOT NULL,
		operation  VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// createSchema creates all sequences and tables.
func (db *DB) createSchema() error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}

// seedReferenceData inserts the fixed genre and MPA rating catalogues.
// Inserts are conflict-tolerant so reopening an existing database is a no-op.
func (db *DB) seedReferenceData() error {
	ratings := []struct {
		id          int64
		name        string
		description string
	}{
		{1, "G", "No age restrictions"},
		{2, "PG", "Parental guidance suggested"},
		{3, "PG-13", "Parents strongly cautioned, some material may be inappropriate under 13"},
		{4, "R", "Restricted, under 17 requires accompanying adult"},
		{5, "NC-17", "No one 17 and under admitted"},
	}
	for _, r := range ratings {
		_, err := db.conn.Exec(
			`INSERT INTO mpa_ratings (rating_id, name, description) VALUES (?, ?, ?)
			 ON CONFLICT DO NOTHING`,
			r.id, r.name, r.description)
		if err != nil {
			return fmt.Errorf("failed to seed mpa rating %s: %w", r.name, err)
		}
	}

	genres := []struct {
		id   int64
		name string
	}{
		{1, "Comedy"},
		{2, "Drama"},
		{3, "Cartoon"},
		{4, "Thriller"},
		{5, "Documentary"},
		{6, "Action"},
	}
	for _, g := range genres {
		_, err := db.conn.Exec(
			`INSERT INTO genres (genre_id, name) VALUES (?, ?) ON CONFLICT DO NOTHING`,
			g.id, g.name)
		if err != nil {
			return fmt.Errorf("failed to seed genre %s: %w", g.name, err)
		}
	}

	return nil
}
