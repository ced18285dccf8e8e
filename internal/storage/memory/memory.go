// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

// Package memory provides a mutex-guarded in-memory store with the same
// semantics as the DuckDB layer. It backs service unit tests and keeps the
// behavioural contract (idempotent likes, confirmation-aware friendship,
// transactional feed appends) in one second implementation.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cinegraph/cinegraph/internal/models"
)

type edge struct {
	from, to int64
}

type vote struct {
	reviewID, userID int64
}

// Store is an in-memory implementation of the storage interfaces consumed by
// the service packages. All methods are safe for concurrent use.
type Store struct {
	mu sync.Mutex

	users     map[int64]models.User
	films     map[int64]models.Film
	directors map[int64]models.Director
	genres    map[int64]models.Genre
	ratings   map[int64]models.MPARating

	likes   map[int64]map[int64]bool // filmID -> userID
	friends map[edge]bool            // directed edge -> confirmed
	reviews map[int64]models.Review
	votes   map[vote]bool // -> positive

	feed []models.FeedEvent

	nextUser, nextFilm, nextDirector, nextReview, nextEvent int64
}

// New returns an empty store with the reference catalogues seeded.
func New() *Store {
	s := &Store{
		users:     map[int64]models.User{},
		films:     map[int64]models.Film{},
		directors: map[int64]models.Director{},
		genres: map[int64]models.Genre{
			1: {ID: 1, Name: "Comedy"},
			2: {ID: 2, Name: "Drama"},
			3: {ID: 3, Name: "Cartoon"},
			4: {ID: 4, Name: "Thriller"},
			5: {ID: 5, Name: "Documentary"},
			6: {ID: 6, Name: "Action"},
		},
		ratings: map[int64]models.MPARating{
			1: {ID: 1, Name: "G", Description: "No age restrictions"},
			2: {ID: 2, Name: "PG", Description: "Parental guidance suggested"},
			3: {ID: 3, Name: "PG-13", Description: "Parents strongly cautioned, some material may be inappropriate under 13"},
			4: {ID: 4, Name: "R", Description: "Restricted, under 17 requires accompanying adult"},
			5: {ID: 5, Name: "NC-17", Description: "No one 17 and under admitted"},
		},
		likes:   map[int64]map[int64]bool{},
		friends: map[edge]bool{},
		reviews: map[int64]models.Review{},
		votes:   map[vote]bool{},
	}
	return s
}

// appendFeed assigns the event id and timestamp and stores the event.
// Callers must hold s.mu.
func (s *Store) appendFeed(ev models.FeedEvent) {
	s.nextEvent++
	ev.EventID = s.nextEvent
	ev.Timestamp = models.EpochMillis(time.Now().UTC())
	s.feed = append(s.feed, ev)
}

func (s *Store) requireUser(id int64) error {
	if _, ok := s.users[id]; !ok {
		return models.NotFound("user", id)
	}
	return nil
}

func (s *Store) requireFilm(id int64) error {
	if _, ok := s.films[id]; !ok {
		return models.NotFound("film", id)
	}
	return nil
}

// CreateUser inserts a user, defaulting a blank name to the login.
func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.Name == "" {
		user.Name = user.Login
	}
	s.nextUser++
	user.ID = s.nextUser
	s.users[user.ID] = *user
	return nil
}

// UpdateUser replaces a user's mutable fields.
func (s *Store) UpdateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUser(user.ID); err != nil {
		return err
	}
	if user.Name == "" {
		user.Name = user.Login
	}
	s.users[user.ID] = *user
	return nil
}

// GetUser loads a user by id.
func (s *Store) GetUser(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, models.NotFound("user", id)
	}
	return &u, nil
}

// ListUsers returns all users ordered by id.
func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// DeleteUser removes a user and everything referencing it.
func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUser(id); err != nil {
		return err
	}
	delete(s.users, id)

	for _, userLikes := range s.likes {
		delete(userLikes, id)
	}
	for e := range s.friends {
		if e.from == id || e.to == id {
			delete(s.friends, e)
		}
	}
	for v := range s.votes {
		if v.userID == id {
			delete(s.votes, v)
		}
	}
	for rid, r := range s.reviews {
		if r.UserID == id {
			delete(s.reviews, rid)
			for v := range s.votes {
				if v.reviewID == rid {
					delete(s.votes, v)
				}
			}
		}
	}
	kept := s.feed[:0]
	for _, ev := range s.feed {
		if ev.UserID != id {
			kept = append(kept, ev)
		}
	}
	s.feed = kept
	return nil
}

// CreateFilm inserts a film after resolving its reference data.
func (s *Store) CreateFilm(_ context.Context, film *models.Film) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.resolveFilmRefs(film); err != nil {
		return err
	}
	s.nextFilm++
	film.ID = s.nextFilm
	film.Likes = 0
	s.films[film.ID] = *film
	return nil
}

// UpdateFilm replaces a film's mutable fields and links.
func (s *Store) UpdateFilm(_ context.Context, film *models.Film) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFilm(film.ID); err != nil {
		return err
	}
	if err := s.resolveFilmRefs(film); err != nil {
		return err
	}
	film.Likes = int64(len(s.likes[film.ID]))
	s.films[film.ID] = *film
	return nil
}

// resolveFilmRefs validates genre, director and MPA ids and attaches their
// names, deduplicating repeated links. Callers must hold s.mu.
func (s *Store) resolveFilmRefs(film *models.Film) error {
	if film.MPA.ID != 0 {
		r, ok := s.ratings[film.MPA.ID]
		if !ok {
			return models.NotFound("mpa rating", film.MPA.ID)
		}
		film.MPA = r
	}

	seenGenres := map[int64]bool{}
	genres := []models.Genre{}
	for _, g := range film.Genres {
		full, ok := s.genres[g.ID]
		if !ok {
			return models.NotFound("genre", g.ID)
		}
		if !seenGenres[g.ID] {
			seenGenres[g.ID] = true
			genres = append(genres, full)
		}
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	film.Genres = genres

	seenDirectors := map[int64]bool{}
	directors := []models.Director{}
	for _, d := range film.Directors {
		full, ok := s.directors[d.ID]
		if !ok {
			return models.NotFound("director", d.ID)
		}
		if !seenDirectors[d.ID] {
			seenDirectors[d.ID] = true
			directors = append(directors, full)
		}
	}
	sort.Slice(directors, func(i, j int) bool { return directors[i].ID < directors[j].ID })
	film.Directors = directors
	return nil
}

// GetFilm loads a film by id with its like count.
func (s *Store) GetFilm(_ context.Context, id int64) (*models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getFilmLocked(id)
}

func (s *Store) getFilmLocked(id int64) (*models.Film, error) {
	f, ok := s.films[id]
	if !ok {
		return nil, models.NotFound("film", id)
	}
	f.Likes = int64(len(s.likes[id]))
	return &f, nil
}

// ListFilms returns all films ordered by id.
func (s *Store) ListFilms(_ context.Context) ([]models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	films := make([]models.Film, 0, len(s.films))
	for id := range s.films {
		f, _ := s.getFilmLocked(id)
		films = append(films, *f)
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })
	return films, nil
}

// DeleteFilm removes a film, its likes, reviews and their votes.
func (s *Store) DeleteFilm(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFilm(id); err != nil {
		return err
	}
	delete(s.films, id)
	delete(s.likes, id)
	for rid, r := range s.reviews {
		if r.FilmID == id {
			delete(s.reviews, rid)
			for v := range s.votes {
				if v.reviewID == rid {
					delete(s.votes, v)
				}
			}
		}
	}
	return nil
}

// CreateDirector inserts a director.
func (s *Store) CreateDirector(_ context.Context, d *models.Director) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextDirector++
	d.ID = s.nextDirector
	s.directors[d.ID] = *d
	return nil
}

// UpdateDirector renames a director.
func (s *Store) UpdateDirector(_ context.Context, d *models.Director) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.directors[d.ID]; !ok {
		return models.NotFound("director", d.ID)
	}
	s.directors[d.ID] = *d
	return nil
}

// GetDirector loads a director by id.
func (s *Store) GetDirector(_ context.Context, id int64) (*models.Director, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.directors[id]
	if !ok {
		return nil, models.NotFound("director", id)
	}
	return &d, nil
}

// ListDirectors returns all directors ordered by id.
func (s *Store) ListDirectors(_ context.Context) ([]models.Director, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	directors := make([]models.Director, 0, len(s.directors))
	for _, d := range s.directors {
		directors = append(directors, d)
	}
	sort.Slice(directors, func(i, j int) bool { return directors[i].ID < directors[j].ID })
	return directors, nil
}

// DeleteDirector removes a director and its film credits.
func (s *Store) DeleteDirector(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.directors[id]; !ok {
		return models.NotFound("director", id)
	}
	delete(s.directors, id)
	for fid, f := range s.films {
		kept := f.Directors[:0]
		for _, d := range f.Directors {
			if d.ID != id {
				kept = append(kept, d)
			}
		}
		f.Directors = kept
		s.films[fid] = f
	}
	return nil
}

// ListGenres returns the genre catalogue.
func (s *Store) ListGenres(_ context.Context) ([]models.Genre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	genres := make([]models.Genre, 0, len(s.genres))
	for _, g := range s.genres {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	return genres, nil
}

// GetGenre loads a genre by id.
func (s *Store) GetGenre(_ context.Context, id int64) (*models.Genre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.genres[id]
	if !ok {
		return nil, models.NotFound("genre", id)
	}
	return &g, nil
}

// ListMPARatings returns the MPA rating catalogue.
func (s *Store) ListMPARatings(_ context.Context) ([]models.MPARating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ratings := make([]models.MPARating, 0, len(s.ratings))
	for _, r := range s.ratings {
		ratings = append(ratings, r)
	}
	sort.Slice(ratings, func(i, j int) bool { return ratings[i].ID < ratings[j].ID })
	return ratings, nil
}

// GetMPARating loads an MPA rating by id.
func (s *Store) GetMPARating(_ context.Context, id int64) (*models.MPARating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.ratings[id]
	if !ok {
		return nil, models.NotFound("mpa rating", id)
	}
	return &r, nil
}
