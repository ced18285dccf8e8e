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

// AddFriend inserts a directed friend edge, confirming both directions when
// the reverse edge already exists, and appends the feed event.
func (s *Store) AddFriend(_ context.Context, userID, friendID int64, ev models.FeedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUser(userID); err != nil {
		return err
	}
	if err := s.requireUser(friendID); err != nil {
		return err
	}

	_, reverse := s.friends[edge{friendID, userID}]
	if _, exists := s.friends[edge{userID, friendID}]; !exists {
		s.friends[edge{userID, friendID}] = reverse
	}
	if reverse {
		s.friends[edge{userID, friendID}] = true
		s.friends[edge{friendID, userID}] = true
	}

	s.appendFeed(ev)
	return nil
}

// RemoveFriend deletes a directed friend edge, demoting the reverse edge,
// and appends the feed event.
func (s *Store) RemoveFriend(_ context.Context, userID, friendID int64, ev models.FeedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUser(userID); err != nil {
		return err
	}
	if err := s.requireUser(friendID); err != nil {
		return err
	}

	delete(s.friends, edge{userID, friendID})
	if _, ok := s.friends[edge{friendID, userID}]; ok {
		s.friends[edge{friendID, userID}] = false
	}

	s.appendFeed(ev)
	return nil
}

// ListFriends returns the users this user has added, ordered by id.
func (s *Store) ListFriends(_ context.Context, userID int64) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	return s.friendsOfLocked(userID), nil
}

// CommonFriends returns the users both arguments have added, ordered by id.
func (s *Store) CommonFriends(_ context.Context, userID, otherID int64) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUser(userID); err != nil {
		return nil, err
	}
	if err := s.requireUser(otherID); err != nil {
		return nil, err
	}

	mine := map[int64]bool{}
	for _, u := range s.friendsOfLocked(userID) {
		mine[u.ID] = true
	}
	common := []models.User{}
	for _, u := range s.friendsOfLocked(otherID) {
		if mine[u.ID] {
			common = append(common, u)
		}
	}
	return common, nil
}

func (s *Store) friendsOfLocked(userID int64) []models.User {
	friends := []models.User{}
	for e := range s.friends {
		if e.from == userID {
			if u, ok := s.users[e.to]; ok {
				friends = append(friends, u)
			}
		}
	}
	sort.Slice(friends, func(i, j int) bool { return friends[i].ID < friends[j].ID })
	return friends
}

// AddLike records a like, appending the feed event only when state changed.
func (s *Store) AddLike(_ context.Context, filmID, userID int64, ev models.FeedEvent) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUser(userID); err != nil {
		return false, err
	}
	if err := s.requireFilm(filmID); err != nil {
		return false, err
	}

	if s.likes[filmID] == nil {
		s.likes[filmID] = map[int64]bool{}
	}
	if s.likes[filmID][userID] {
		return false, nil
	}
	s.likes[filmID][userID] = true
	s.appendFeed(ev)
	return true, nil
}

// RemoveLike withdraws a like, appending the feed event only when state changed.
func (s *Store) RemoveLike(_ context.Context, filmID, userID int64, ev models.FeedEvent) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUser(userID); err != nil {
		return false, err
	}
	if err := s.requireFilm(filmID); err != nil {
		return false, err
	}

	if !s.likes[filmID][userID] {
		return false, nil
	}
	delete(s.likes[filmID], userID)
	s.appendFeed(ev)
	return true, nil
}

// GetFeed returns the user's own activity, oldest first. A non-positive
// limit returns the full history; a positive limit keeps only the most
// recent events.
func (s *Store) GetFeed(_ context.Context, userID int64, limit int) ([]models.FeedEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireUser(userID); err != nil {
		return nil, err
	}

	events := []models.FeedEvent{}
	for _, ev := range s.feed {
		if ev.UserID == userID {
			events = append(events, ev)
		}
	}
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	return events, nil
}

// LikesByUser returns the like relation as user id to liked film ids.
func (s *Store) LikesByUser(_ context.Context) (map[int64][]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	likes := map[int64][]int64{}
	for filmID, userLikes := range s.likes {
		for userID := range userLikes {
			likes[userID] = append(likes[userID], filmID)
		}
	}
	for userID := range likes {
		sort.Slice(likes[userID], func(i, j int) bool { return likes[userID][i] < likes[userID][j] })
	}
	return likes, nil
}
