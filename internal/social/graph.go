// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

// Package social implements the friend graph and activity feed services.
//
// Friendship is a directed relation: adding a friend makes them visible in
// the caller's friend list immediately, without consent from the other side.
// When both directions exist the edges are marked confirmed, which is
// bookkeeping only and never gates visibility.
package social

import (
	"context"

	"github.com/cinegraph/cinegraph/internal/logging"
	"github.com/cinegraph/cinegraph/internal/models"
)

// GraphStore is the storage surface the friend graph service needs.
type GraphStore interface {
	AddFriend(ctx context.Context, userID, friendID int64, ev models.FeedEvent) error
	RemoveFriend(ctx context.Context, userID, friendID int64, ev models.FeedEvent) error
	ListFriends(ctx context.Context, userID int64) ([]models.User, error)
	CommonFriends(ctx context.Context, userID, otherID int64) ([]models.User, error)
}

// Graph is the friend graph service.
type Graph struct {
	store GraphStore
}

// NewGraph creates a friend graph service.
func NewGraph(store GraphStore) *Graph {
	return &Graph{store: store}
}

// AddFriend adds friendID to userID's friend list. Self-friendship is
// rejected. The operation always lands in userID's feed, even when the edge
// already existed.
func (g *Graph) AddFriend(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return models.InvalidArgument("user %d cannot befriend themselves", userID)
	}

	ev := models.NewFeedEvent(userID, models.EventFriend, models.OpAdd, friendID)
	if err := g.store.AddFriend(ctx, userID, friendID, ev); err != nil {
		return err
	}
	logging.Ctx(ctx).Info().
		Int64("user_id", userID).
		Int64("friend_id", friendID).
		Msg("friend added")
	return nil
}

// RemoveFriend removes friendID from userID's friend list. Removing an
// absent friendship succeeds and still lands in the feed.
func (g *Graph) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return models.InvalidArgument("user %d cannot unfriend themselves", userID)
	}

	ev := models.NewFeedEvent(userID, models.EventFriend, models.OpRemove, friendID)
	if err := g.store.RemoveFriend(ctx, userID, friendID, ev); err != nil {
		return err
	}
	logging.Ctx(ctx).Info().
		Int64("user_id", userID).
		Int64("friend_id", friendID).
		Msg("friend removed")
	return nil
}

// Friends lists the users userID has added, ordered by id.
func (g *Graph) Friends(ctx context.Context, userID int64) ([]models.User, error) {
	return g.store.ListFriends(ctx, userID)
}

// CommonFriends lists the users both userID and otherID have added.
func (g *Graph) CommonFriends(ctx context.Context, userID, otherID int64) ([]models.User, error) {
	return g.store.CommonFriends(ctx, userID, otherID)
}
