// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

// Package catalog implements user, film and director management plus the
// film like relation. Entity payloads are validated before they reach the
// store; referential errors surface as NotFound from the storage layer.
package catalog

import (
	"context"

	"github.com/cinegraph/cinegraph/internal/logging"
	"github.com/cinegraph/cinegraph/internal/models"
	"github.com/cinegraph/cinegraph/internal/validation"
)

// Store is the storage surface the catalog service needs.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id int64) error

	CreateFilm(ctx context.Context, film *models.Film) error
	UpdateFilm(ctx context.Context, film *models.Film) error
	GetFilm(ctx context.Context, id int64) (*models.Film, error)
	ListFilms(ctx context.Context) ([]models.Film, error)
	DeleteFilm(ctx context.Context, id int64) error

	CreateDirector(ctx context.Context, d *models.Director) error
	UpdateDirector(ctx context.Context, d *models.Director) error
	GetDirector(ctx context.Context, id int64) (*models.Director, error)
	ListDirectors(ctx context.Context) ([]models.Director, error)
	DeleteDirector(ctx context.Context, id int64) error

	ListGenres(ctx context.Context) ([]models.Genre, error)
	GetGenre(ctx context.Context, id int64) (*models.Genre, error)
	ListMPARatings(ctx context.Context) ([]models.MPARating, error)
	GetMPARating(ctx context.Context, id int64) (*models.MPARating, error)

	AddLike(ctx context.Context, filmID, userID int64, ev models.FeedEvent) (bool, error)
	RemoveLike(ctx context.Context, filmID, userID int64, ev models.FeedEvent) (bool, error)
}

// Service is the catalog service.
type Service struct {
	store Store
}

// New creates a catalog service.
func New(store Store) *Service {
	return &Service{store: store}
}

// validate maps struct validation failures to InvalidArgument.
func validate(v interface{}) error {
	if verr := validation.ValidateStruct(v); verr != nil {
		return models.InvalidArgument("%s", verr.Error())
	}
	return nil
}

// CreateUser validates and stores a new user.
func (s *Service) CreateUser(ctx context.Context, user *models.User) error {
	if err := validate(user); err != nil {
		return err
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return err
	}
	logging.Ctx(ctx).Info().Int64("user_id", user.ID).Str("login", user.Login).Msg("user created")
	return nil
}

// UpdateUser validates and replaces an existing user.
func (s *Service) UpdateUser(ctx context.Context, user *models.User) error {
	if err := validate(user); err != nil {
		return err
	}
	return s.store.UpdateUser(ctx, user)
}

// GetUser loads a user by id.
func (s *Service) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

// DeleteUser removes a user and all dependent state.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	logging.Ctx(ctx).Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

// CreateFilm validates and stores a new film.
func (s *Service) CreateFilm(ctx context.Context, film *models.Film) error {
	if err := validate(film); err != nil {
		return err
	}
	if err := s.store.CreateFilm(ctx, film); err != nil {
		return err
	}
	logging.Ctx(ctx).Info().Int64("film_id", film.ID).Str("title", film.Title).Msg("film created")
	return nil
}

// UpdateFilm validates and replaces an existing film.
func (s *Service) UpdateFilm(ctx context.Context, film *models.Film) error {
	if err := validate(film); err != nil {
		return err
	}
	return s.store.UpdateFilm(ctx, film)
}

// GetFilm loads a film by id.
func (s *Service) GetFilm(ctx context.Context, id int64) (*models.Film, error) {
	return s.store.GetFilm(ctx, id)
}

// ListFilms returns all films.
func (s *Service) ListFilms(ctx context.Context) ([]models.Film, error) {
	return s.store.ListFilms(ctx)
}

// DeleteFilm removes a film and all dependent state.
func (s *Service) DeleteFilm(ctx context.Context, id int64) error {
	return s.store.DeleteFilm(ctx, id)
}

// CreateDirector validates and stores a new director.
func (s *Service) CreateDirector(ctx context.Context, d *models.Director) error {
	if err := validate(d); err != nil {
		return err
	}
	return s.store.CreateDirector(ctx, d)
}

// UpdateDirector validates and renames an existing director.
func (s *Service) UpdateDirector(ctx context.Context, d *models.Director) error {
	if err := validate(d); err != nil {
		return err
	}
	return s.store.UpdateDirector(ctx, d)
}

// GetDirector loads a director by id.
func (s *Service) GetDirector(ctx context.Context, id int64) (*models.Director, error) {
	return s.store.GetDirector(ctx, id)
}

// ListDirectors returns all directors.
func (s *Service) ListDirectors(ctx context.Context) ([]models.Director, error) {
	return s.store.ListDirectors(ctx)
}

// DeleteDirector removes a director; films keep existing without the credit.
func (s *Service) DeleteDirector(ctx context.Context, id int64) error {
	return s.store.DeleteDirector(ctx, id)
}

// ListGenres returns the genre catalogue.
func (s *Service) ListGenres(ctx context.Context) ([]models.Genre, error) {
	return s.store.ListGenres(ctx)
}

// GetGenre loads a genre by id.
func (s *Service) GetGenre(ctx context.Context, id int64) (*models.Genre, error) {
	return s.store.GetGenre(ctx, id)
}

// ListMPARatings returns the MPA rating catalogue.
func (s *Service) ListMPARatings(ctx context.Context) ([]models.MPARating, error) {
	return s.store.ListMPARatings(ctx)
}

// GetMPARating loads an MPA rating by id.
func (s *Service) GetMPARating(ctx context.Context, id int64) (*models.MPARating, error) {
	return s.store.GetMPARating(ctx, id)
}

// AddLike records that userID likes filmID. Repeats are no-ops and do not
// duplicate feed events.
func (s *Service) AddLike(ctx context.Context, filmID, userID int64) error {
	ev := models.NewFeedEvent(userID, models.EventLike, models.OpAdd, filmID)
	changed, err := s.store.AddLike(ctx, filmID, userID, ev)
	if err != nil {
		return err
	}
	if changed {
		logging.Ctx(ctx).Debug().Int64("film_id", filmID).Int64("user_id", userID).Msg("like added")
	}
	return nil
}

// RemoveLike withdraws userID's like from filmID. Removing an absent like
// is a no-op.
func (s *Service) RemoveLike(ctx context.Context, filmID, userID int64) error {
	ev := models.NewFeedEvent(userID, models.EventLike, models.OpRemove, filmID)
	changed, err := s.store.RemoveLike(ctx, filmID, userID, ev)
	if err != nil {
		return err
	}
	if changed {
		logging.Ctx(ctx).Debug().Int64("film_id", filmID).Int64("user_id", userID).Msg("like removed")
	}
	return nil
}
