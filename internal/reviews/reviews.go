// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

// Package reviews implements film reviews and their usefulness votes.
//
// Every review mutation lands in the activity feed of the review's original
// author, not whoever issued the call. Usefulness votes are idempotent per
// user and feed only on state change.
package reviews

import (
	"context"

	"github.com/cinegraph/cinegraph/internal/logging"
	"github.com/cinegraph/cinegraph/internal/models"
	"github.com/cinegraph/cinegraph/internal/validation"
)

// Store is the storage surface the reviews service needs.
type Store interface {
	CreateReview(ctx context.Context, review *models.Review, ev models.FeedEvent) error
	UpdateReview(ctx context.Context, review *models.Review, ev models.FeedEvent) error
	DeleteReview(ctx context.Context, id int64, ev models.FeedEvent) error
	GetReview(ctx context.Context, id int64) (*models.Review, error)
	ListReviews(ctx context.Context, filmID int64, count int) ([]models.Review, error)
	VoteReview(ctx context.Context, reviewID, userID int64, positive bool, ev models.FeedEvent) (bool, error)
	RemoveVote(ctx context.Context, reviewID, userID int64, ev models.FeedEvent) (bool, error)
}

// Service is the reviews service.
type Service struct {
	store        Store
	defaultCount int
}

// New creates a reviews service. defaultCount applies when List is called
// with a zero count.
func New(store Store, defaultCount int) *Service {
	return &Service{store: store, defaultCount: defaultCount}
}

// Create validates and stores a new review, feeding the author's activity.
func (s *Service) Create(ctx context.Context, review *models.Review) error {
	if verr := validation.ValidateStruct(review); verr != nil {
		return models.InvalidArgument("%s", verr.Error())
	}

	// EntityID is filled by the store once the review id is assigned.
	ev := models.NewFeedEvent(review.UserID, models.EventReview, models.OpAdd, 0)
	if err := s.store.CreateReview(ctx, review, ev); err != nil {
		return err
	}
	logging.Ctx(ctx).Info().
		Int64("review_id", review.ID).
		Int64("film_id", review.FilmID).
		Int64("user_id", review.UserID).
		Msg("review created")
	return nil
}

// Update replaces a review's content and verdict. The film and author
// bindings are immutable; the store keeps the originals and credits the
// feed event to the original author.
func (s *Service) Update(ctx context.Context, review *models.Review) error {
	if verr := validation.ValidateStruct(review); verr != nil {
		return models.InvalidArgument("%s", verr.Error())
	}

	ev := models.NewFeedEvent(0, models.EventReview, models.OpUpdate, review.ID)
	return s.store.UpdateReview(ctx, review, ev)
}

// Delete removes a review; the removal feeds the author's activity.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ev := models.NewFeedEvent(0, models.EventReview, models.OpRemove, id)
	return s.store.DeleteReview(ctx, id, ev)
}

// Get loads a review with its current usefulness score.
func (s *Service) Get(ctx context.Context, id int64) (*models.Review, error) {
	return s.store.GetReview(ctx, id)
}

// List returns reviews ordered by usefulness, most useful first. A filmID
// of zero lists across all films; a count of zero selects the default.
func (s *Service) List(ctx context.Context, filmID int64, count int) ([]models.Review, error) {
	switch {
	case count < 0:
		return nil, models.InvalidArgument("review count must not be negative, got %d", count)
	case count == 0:
		count = s.defaultCount
	}
	return s.store.ListReviews(ctx, filmID, count)
}

// Vote records userID's usefulness vote on a review. Voting the same
// direction twice is a no-op; voting the opposite direction switches the
// vote. Only state changes feed the voter's activity.
func (s *Service) Vote(ctx context.Context, reviewID, userID int64, positive bool) error {
	op := models.OpAdd
	if !positive {
		op = models.OpRemove
	}
	ev := models.NewFeedEvent(userID, models.EventLike, op, reviewID)
	_, err := s.store.VoteReview(ctx, reviewID, userID, positive, ev)
	return err
}

// RemoveVote retracts userID's vote from a review if one exists.
func (s *Service) RemoveVote(ctx context.Context, reviewID, userID int64) error {
	ev := models.NewFeedEvent(userID, models.EventLike, models.OpRemove, reviewID)
	_, err := s.store.RemoveVote(ctx, reviewID, userID, ev)
	return err
}
