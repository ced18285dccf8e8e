// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

// Package api exposes the Cinegraph HTTP surface: user, film, director and
// reference-data management, the friend graph, activity feeds, popularity
// rankings, reviews and collaborative-filtering recommendations.
package api

import (
	"github.com/cinegraph/cinegraph/internal/catalog"
	"github.com/cinegraph/cinegraph/internal/ranking"
	"github.com/cinegraph/cinegraph/internal/recommend"
	"github.com/cinegraph/cinegraph/internal/reviews"
	"github.com/cinegraph/cinegraph/internal/social"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	catalog   *catalog.Service
	graph     *social.Graph
	feed      *social.Feed
	ranking   *ranking.Service
	recommend *recommend.Engine
	reviews   *reviews.Service
}

// NewHandler creates the API handler.
func NewHandler(
	cat *catalog.Service,
	graph *social.Graph,
	feed *social.Feed,
	rank *ranking.Service,
	rec *recommend.Engine,
	rev *reviews.Service,
) *Handler {
	return &Handler{
		catalog:   cat,
		graph:     graph,
		feed:      feed,
		ranking:   rank,
		recommend: rec,
		reviews:   rev,
	}
}
