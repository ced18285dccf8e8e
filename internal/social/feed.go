// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package social

import (
	"context"

	"github.com/cinegraph/cinegraph/internal/models"
)

// FeedStore is the storage surface the feed service needs.
type FeedStore interface {
	GetFeed(ctx context.Context, userID int64, limit int) ([]models.FeedEvent, error)
}

// Feed serves a user's own activity history.
type Feed struct {
	store    FeedStore
	maxLimit int
}

// NewFeed creates a feed service. maxLimit caps explicit limit requests.
func NewFeed(store FeedStore, maxLimit int) *Feed {
	return &Feed{store: store, maxLimit: maxLimit}
}

// Events returns the user's feed, oldest first. A limit of zero returns the
// full history; a positive limit selects the most recent limit events, still
// oldest first. Negative limits are rejected.
func (f *Feed) Events(ctx context.Context, userID int64, limit int) ([]models.FeedEvent, error) {
	switch {
	case limit < 0:
		return nil, models.InvalidArgument("feed limit must not be negative, got %d", limit)
	case limit > f.maxLimit:
		limit = f.maxLimit
	}
	return f.store.GetFeed(ctx, userID, limit)
}
