// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package memory

import (
	"context"
	"sort"

	"github.com/cinegraph/cinegraph/internal/models"
)

// CreateReview inserts a review and appends the author's feed event.
func (s *Store) CreateReview(_ context.Context, review *models.Review, ev models.FeedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUser(review.UserID); err != nil {
		return err
	}
	if err := s.requireFilm(review.FilmID); err != nil {
		return err
	}

	s.nextReview++
	review.ID = s.nextReview
	review.Useful = 0
	s.reviews[review.ID] = *review

	ev.EntityID = review.ID
	s.appendFeed(ev)
	return nil
}

// UpdateReview changes content and verdict only; author and film are immutable.
func (s *Store) UpdateReview(_ context.Context, review *models.Review, ev models.FeedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.reviews[review.ID]
	if !ok {
		return models.NotFound("review", review.ID)
	}
	stored.Content = review.Content
	stored.IsPositive = review.IsPositive
	s.reviews[review.ID] = stored

	*review = stored
	review.Useful = s.usefulLocked(review.ID)

	ev.UserID = stored.UserID
	ev.EntityID = stored.ID
	s.appendFeed(ev)
	return nil
}

// DeleteReview removes a review and its votes, appending the author's feed event.
func (s *Store) DeleteReview(_ context.Context, id int64, ev models.FeedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.reviews[id]
	if !ok {
		return models.NotFound("review", id)
	}
	delete(s.reviews, id)
	for v := range s.votes {
		if v.reviewID == id {
			delete(s.votes, v)
		}
	}

	ev.UserID = stored.UserID
	ev.EntityID = id
	s.appendFeed(ev)
	return nil
}

// GetReview loads a review with its usefulness score.
func (s *Store) GetReview(_ context.Context, id int64) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reviews[id]
	if !ok {
		return nil, models.NotFound("review", id)
	}
	r.Useful = s.usefulLocked(id)
	return &r, nil
}

// ListReviews returns reviews ordered by usefulness, most useful first.
// A filmID of zero lists reviews across all films.
func (s *Store) ListReviews(_ context.Context, filmID int64, count int) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if filmID != 0 {
		if err := s.requireFilm(filmID); err != nil {
			return nil, err
		}
	}

	reviews := []models.Review{}
	for id, r := range s.reviews {
		if filmID != 0 && r.FilmID != filmID {
			continue
		}
		r.Useful = s.usefulLocked(id)
		reviews = append(reviews, r)
	}
	sort.Slice(reviews, func(i, j int) bool {
		if reviews[i].Useful != reviews[j].Useful {
			return reviews[i].Useful > reviews[j].Useful
		}
		return reviews[i].ID < reviews[j].ID
	})
	if len(reviews) > count {
		reviews = reviews[:count]
	}
	return reviews, nil
}

// VoteReview records or switches a usefulness vote.
func (s *Store) VoteReview(_ context.Context, reviewID, userID int64, positive bool, ev models.FeedEvent) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[reviewID]; !ok {
		return false, models.NotFound("review", reviewID)
	}
	if err := s.requireUser(userID); err != nil {
		return false, err
	}

	key := vote{reviewID, userID}
	if current, ok := s.votes[key]; ok && current == positive {
		return false, nil
	}
	s.votes[key] = positive
	s.appendFeed(ev)
	return true, nil
}

// RemoveVote withdraws a usefulness vote.
func (s *Store) RemoveVote(_ context.Context, reviewID, userID int64, ev models.FeedEvent) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[reviewID]; !ok {
		return false, models.NotFound("review", reviewID)
	}
	if err := s.requireUser(userID); err != nil {
		return false, err
	}

	key := vote{reviewID, userID}
	if _, ok := s.votes[key]; !ok {
		return false, nil
	}
	delete(s.votes, key)
	s.appendFeed(ev)
	return true, nil
}

// usefulLocked computes positive minus negative votes. Callers must hold s.mu.
func (s *Store) usefulLocked(reviewID int64) int64 {
	var useful int64
	for v, positive := range s.votes {
		if v.reviewID != reviewID {
			continue
		}
		if positive {
			useful++
		} else {
			useful--
		}
	}
	return useful
}
