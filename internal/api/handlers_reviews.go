// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package api

import (
	"net/http"

	"github.com/cinegraph/cinegraph/internal/models"
)

// CreateReview handles POST /reviews.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if err := decodeBody(r, &review); err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.reviews.Create(r.Context(), &review); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, review)
}

// UpdateReview handles PUT /reviews.
func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if err := decodeBody(r, &review); err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.reviews.Update(r.Context(), &review); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, review)
}

// DeleteReview handles DELETE /reviews/{id}.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.reviews.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetReview handles GET /reviews/{id}.
func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	review, err := h.reviews.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, review)
}

// ListReviews handles GET /reviews?filmId=&count=.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	filmID, err := queryInt64(r, "filmId", 0)
	if err != nil {
		respondError(w, r, err)
		return
	}
	count, err := queryInt(r, "count", 0)
	if err != nil {
		respondError(w, r, err)
		return
	}
	reviews, err := h.reviews.List(r.Context(), filmID, count)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, reviews)
}

// voteReview factors the shared shape of the four vote endpoints.
func (h *Handler) voteReview(w http.ResponseWriter, r *http.Request, apply func(reviewID, userID int64) error) {
	reviewID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := apply(reviewID, userID); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpvoteReview handles PUT /reviews/{id}/like/{userId}.
func (h *Handler) UpvoteReview(w http.ResponseWriter, r *http.Request) {
	h.voteReview(w, r, func(reviewID, userID int64) error {
		return h.reviews.Vote(r.Context(), reviewID, userID, true)
	})
}

// DownvoteReview handles PUT /reviews/{id}/dislike/{userId}.
func (h *Handler) DownvoteReview(w http.ResponseWriter, r *http.Request) {
	h.voteReview(w, r, func(reviewID, userID int64) error {
		return h.reviews.Vote(r.Context(), reviewID, userID, false)
	})
}

// RemoveReviewVote handles DELETE /reviews/{id}/like/{userId} and
// DELETE /reviews/{id}/dislike/{userId}; both retract whatever vote exists.
func (h *Handler) RemoveReviewVote(w http.ResponseWriter, r *http.Request) {
	h.voteReview(w, r, func(reviewID, userID int64) error {
		return h.reviews.RemoveVote(r.Context(), reviewID, userID)
	})
}
