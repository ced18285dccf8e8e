// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/cinegraph/cinegraph/internal/models"
)

// byLikesThenID orders films most liked first, ties broken by id.
func byLikesThenID(films []models.Film) {
	sort.Slice(films, func(i, j int) bool {
		if films[i].Likes != films[j].Likes {
			return films[i].Likes > films[j].Likes
		}
		return films[i].ID < films[j].ID
	})
}

// PopularFilms returns the most liked films with optional genre and year filters.
func (s *Store) PopularFilms(_ context.Context, count int, genreID int64, year int) ([]models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if genreID != 0 {
		if _, ok := s.genres[genreID]; !ok {
			return nil, models.NotFound("genre", genreID)
		}
	}

	films := []models.Film{}
	for id := range s.films {
		f, _ := s.getFilmLocked(id)
		if genreID != 0 && !hasGenre(f, genreID) {
			continue
		}
		if year != 0 && f.ReleaseDate.Year() != year {
			continue
		}
		films = append(films, *f)
	}
	byLikesThenID(films)
	if len(films) > count {
		films = films[:count]
	}
	return films, nil
}

func hasGenre(f *models.Film, genreID int64) bool {
	for _, g := range f.Genres {
		if g.ID == genreID {
			return true
		}
	}
	return false
}

// CommonFilms returns the films two users both like, most popular first.
func (s *Store) CommonFilms(_ context.Context, userID, friendID int64) ([]models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	if err := s.requireUser(friendID); err != nil {
		return nil, err
	}

	films := []models.Film{}
	for filmID, userLikes := range s.likes {
		if userLikes[userID] && userLikes[friendID] {
			f, _ := s.getFilmLocked(filmID)
			films = append(films, *f)
		}
	}
	byLikesThenID(films)
	return films, nil
}

// SearchFilms finds films whose title or director name contains the query,
// case-insensitively, most popular first.
func (s *Store) SearchFilms(_ context.Context, query string, byTitle, byDirector bool) ([]models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(query)
	films := []models.Film{}
	for id := range s.films {
		f, _ := s.getFilmLocked(id)
		match := byTitle && strings.Contains(strings.ToLower(f.Title), needle)
		if !match && byDirector {
			for _, d := range f.Directors {
				if strings.Contains(strings.ToLower(d.Name), needle) {
					match = true
					break
				}
			}
		}
		if match {
			films = append(films, *f)
		}
	}
	byLikesThenID(films)
	return films, nil
}

// DirectorFilms returns a director's filmography in the requested order.
func (s *Store) DirectorFilms(_ context.Context, directorID int64, sortBy models.DirectorSort) ([]models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.directors[directorID]; !ok {
		return nil, models.NotFound("director", directorID)
	}

	films := []models.Film{}
	for id := range s.films {
		f, _ := s.getFilmLocked(id)
		for _, d := range f.Directors {
			if d.ID == directorID {
				films = append(films, *f)
				break
			}
		}
	}

	if sortBy == models.SortByLikes {
		byLikesThenID(films)
	} else {
		sort.Slice(films, func(i, j int) bool {
			if !films[i].ReleaseDate.Equal(films[j].ReleaseDate.Time) {
				return films[i].ReleaseDate.Before(films[j].ReleaseDate.Time)
			}
			return films[i].ID < films[j].ID
		})
	}
	return films, nil
}

// FilmsByIDs loads films preserving the order of ids.
func (s *Store) FilmsByIDs(_ context.Context, ids []int64) ([]models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	films := make([]models.Film, 0, len(ids))
	for _, id := range ids {
		f, err := s.getFilmLocked(id)
		if err != nil {
			return nil, err
		}
		films = append(films, *f)
	}
	return films, nil
}
