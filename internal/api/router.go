// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cinegraph/cinegraph/internal/config"
	"github.com/cinegraph/cinegraph/internal/middleware"
)

// Routes builds the full HTTP routing table.
func Routes(h *Handler, db Pinger, cfg *config.APIConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestLogging)

	// Observability endpoints sit outside the rate limit so monitoring is
	// never throttled.
	r.Get("/health", Health(db))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
		r.Use(middleware.PrometheusMetrics)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.CreateUser)
			r.Put("/", h.UpdateUser)
			r.Get("/", h.ListUsers)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetUser)
				r.Delete("/", h.DeleteUser)
				r.Get("/feed", h.GetFeed)
				r.Get("/recommendations", h.GetRecommendations)

				r.Route("/friends", func(r chi.Router) {
					r.Get("/", h.ListFriends)
					r.Get("/common/{otherId}", h.CommonFriends)
					r.Put("/{friendId}", h.AddFriend)
					r.Delete("/{friendId}", h.RemoveFriend)
				})
			})
		})

		r.Route("/films", func(r chi.Router) {
			r.Post("/", h.CreateFilm)
			r.Put("/", h.UpdateFilm)
			r.Get("/", h.ListFilms)

			// Fixed-path routes before the id wildcard.
			r.Get("/popular", h.PopularFilms)
			r.Get("/common", h.CommonFilms)
			r.Get("/search", h.SearchFilms)
			r.Get("/director/{directorId}", h.DirectorFilms)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetFilm)
				r.Delete("/", h.DeleteFilm)
				r.Put("/like/{userId}", h.AddLike)
				r.Delete("/like/{userId}", h.RemoveLike)
			})
		})

		r.Route("/directors", func(r chi.Router) {
			r.Post("/", h.CreateDirector)
			r.Put("/", h.UpdateDirector)
			r.Get("/", h.ListDirectors)
			r.Get("/{id}", h.GetDirector)
			r.Delete("/{id}", h.DeleteDirector)
		})

		r.Route("/genres", func(r chi.Router) {
			r.Get("/", h.ListGenres)
			r.Get("/{id}", h.GetGenre)
		})

		r.Route("/mpa", func(r chi.Router) {
			r.Get("/", h.ListMPARatings)
			r.Get("/{id}", h.GetMPARating)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", h.CreateReview)
			r.Put("/", h.UpdateReview)
			r.Get("/", h.ListReviews)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetReview)
				r.Delete("/", h.DeleteReview)
				r.Put("/like/{userId}", h.UpvoteReview)
				r.Put("/dislike/{userId}", h.DownvoteReview)
				r.Delete("/like/{userId}", h.RemoveReviewVote)
				r.Delete("/dislike/{userId}", h.RemoveReviewVote)
			})
		})
	})

	return r
}
