// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

// Package recommend implements collaborative-filtering film recommendations.
//
// The engine finds the peer whose liked films overlap most with the target
// user's and recommends the films that peer likes which the user has not
// liked yet. A single best peer is used rather than a weighted blend; with
// the catalogue sizes Cinegraph serves this is accurate enough and keeps the
// computation one pass over the like relation.
package recommend

import (
	"context"
	"sort"
	"time"

	"github.com/cinegraph/cinegraph/internal/logging"
	"github.com/cinegraph/cinegraph/internal/metrics"
	"github.com/cinegraph/cinegraph/internal/models"
)

// Store is the storage surface the recommendation engine needs.
type Store interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	LikesByUser(ctx context.Context) (map[int64][]int64, error)
	FilmsByIDs(ctx context.Context, ids []int64) ([]models.Film, error)
}

// Engine computes film recommendations.
type Engine struct {
	store Store
	// minOverlap is the smallest number of shared likes a peer needs before
	// their taste counts as evidence.
	minOverlap int
}

// New creates a recommendation engine.
func New(store Store, minOverlap int) *Engine {
	if minOverlap < 1 {
		minOverlap = 1
	}
	return &Engine{store: store, minOverlap: minOverlap}
}

// ForUser recommends films for userID, ordered by film id. It returns an
// empty slice when the user has no likes, no peer shares enough likes, or
// the best peer has nothing the user hasn't already liked.
func (e *Engine) ForUser(ctx context.Context, userID int64) ([]models.Film, error) {
	start := time.Now()

	if _, err := e.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	likes, err := e.store.LikesByUser(ctx)
	if err != nil {
		return nil, err
	}

	own := make(map[int64]bool, len(likes[userID]))
	for _, filmID := range likes[userID] {
		own[filmID] = true
	}

	peerID, overlap := bestPeer(likes, userID, own)
	if overlap < e.minOverlap {
		metrics.RecordRecommendation(start, 0)
		return []models.Film{}, nil
	}

	var candidateIDs []int64
	for _, filmID := range likes[peerID] {
		if !own[filmID] {
			candidateIDs = append(candidateIDs, filmID)
		}
	}
	sort.Slice(candidateIDs, func(i, j int) bool { return candidateIDs[i] < candidateIDs[j] })
	if len(candidateIDs) == 0 {
		metrics.RecordRecommendation(start, 0)
		return []models.Film{}, nil
	}

	films, err := e.store.FilmsByIDs(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}
	metrics.RecordRecommendation(start, len(films))
	logging.Ctx(ctx).Debug().
		Int64("user_id", userID).
		Int64("peer_id", peerID).
		Int("overlap", overlap).
		Int("films", len(films)).
		Msg("recommendations computed")
	return films, nil
}

// bestPeer returns the user whose likes overlap most with own. Ties go to
// the lowest user id so results are stable across runs.
func bestPeer(likes map[int64][]int64, userID int64, own map[int64]bool) (peerID int64, overlap int) {
	for candidate, filmIDs := range likes {
		if candidate == userID {
			continue
		}
		shared := 0
		for _, filmID := range filmIDs {
			if own[filmID] {
				shared++
			}
		}
		if shared > overlap || (shared == overlap && shared > 0 && candidate < peerID) {
			peerID, overlap = candidate, shared
		}
	}
	return peerID, overlap
}
