// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

// Package ranking implements film popularity queries: most-liked listings,
// films two users both like, title and director search, and director
// filmographies. Ordering is always by like count descending with film id
// ascending as the tie-break, so films nobody has liked still rank.
package ranking

import (
	"context"
	"strings"

	"github.com/cinegraph/cinegraph/internal/models"
)

// Store is the storage surface the ranking service needs.
type Store interface {
	PopularFilms(ctx context.Context, count int, genreID int64, year int) ([]models.Film, error)
	CommonFilms(ctx context.Context, userID, friendID int64) ([]models.Film, error)
	SearchFilms(ctx context.Context, query string, byTitle, byDirector bool) ([]models.Film, error)
	DirectorFilms(ctx context.Context, directorID int64, sort models.DirectorSort) ([]models.Film, error)
}

// Service is the ranking service.
type Service struct {
	store        Store
	defaultCount int
}

// New creates a ranking service. defaultCount applies when Popular is called
// with a zero count.
func New(store Store, defaultCount int) *Service {
	return &Service{store: store, defaultCount: defaultCount}
}

// Popular returns the count most-liked films, optionally filtered by genre
// and release year. A zero count selects the configured default.
func (s *Service) Popular(ctx context.Context, count int, genreID int64, year int) ([]models.Film, error) {
	switch {
	case count < 0:
		return nil, models.InvalidArgument("popular count must not be negative, got %d", count)
	case count == 0:
		count = s.defaultCount
	}
	if year < 0 {
		return nil, models.InvalidArgument("year filter must not be negative, got %d", year)
	}
	return s.store.PopularFilms(ctx, count, genreID, year)
}

// Common returns the films both users like, most popular first.
func (s *Service) Common(ctx context.Context, userID, friendID int64) ([]models.Film, error) {
	return s.store.CommonFilms(ctx, userID, friendID)
}

// Search finds films whose title or director name contains query,
// case-insensitively. by is a non-empty comma-separated list of "title"
// and "director".
func (s *Service) Search(ctx context.Context, query, by string) ([]models.Film, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.InvalidArgument("search query must not be empty")
	}
	if strings.TrimSpace(by) == "" {
		return nil, models.InvalidArgument("search field selector must not be empty, want title or director")
	}

	byTitle, byDirector := false, false
	for _, field := range strings.Split(by, ",") {
		switch strings.TrimSpace(field) {
		case "title":
			byTitle = true
		case "director":
			byDirector = true
		default:
			return nil, models.InvalidArgument("unknown search field %q, want title or director", field)
		}
	}
	return s.store.SearchFilms(ctx, query, byTitle, byDirector)
}

// DirectorFilms returns a director's filmography ordered by the given sort
// key ("year" or "likes").
func (s *Service) DirectorFilms(ctx context.Context, directorID int64, sort models.DirectorSort) ([]models.Film, error) {
	if !sort.Valid() {
		return nil, models.InvalidArgument("unknown sort %q, want year or likes", string(sort))
	}
	return s.store.DirectorFilms(ctx, directorID, sort)
}
