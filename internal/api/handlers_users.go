// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package api

import (
	"net/http"

	"github.com/cinegraph/cinegraph/internal/models"
)

// CreateUser handles POST /users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := decodeBody(r, &user); err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.catalog.CreateUser(r.Context(), &user); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, user)
}

// UpdateUser handles PUT /users.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := decodeBody(r, &user); err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.catalog.UpdateUser(r.Context(), &user); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, user)
}

// ListUsers handles GET /users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.catalog.ListUsers(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, users)
}

// GetUser handles GET /users/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	user, err := h.catalog.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, user)
}

// DeleteUser handles DELETE /users/{id}.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.catalog.DeleteUser(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddFriend handles PUT /users/{id}/friends/{friendId}.
func (h *Handler) AddFriend(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	friendID, err := pathID(r, "friendId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.graph.AddFriend(r.Context(), id, friendID); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveFriend handles DELETE /users/{id}/friends/{friendId}.
func (h *Handler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	friendID, err := pathID(r, "friendId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.graph.RemoveFriend(r.Context(), id, friendID); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFriends handles GET /users/{id}/friends.
func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	friends, err := h.graph.Friends(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, friends)
}

// CommonFriends handles GET /users/{id}/friends/common/{otherId}.
func (h *Handler) CommonFriends(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	otherID, err := pathID(r, "otherId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	common, err := h.graph.CommonFriends(r.Context(), id, otherID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, common)
}

// GetFeed handles GET /users/{id}/feed.
func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		respondError(w, r, err)
		return
	}
	events, err := h.feed.Events(r.Context(), id, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, events)
}

// GetRecommendations handles GET /users/{id}/recommendations.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	films, err := h.recommend.ForUser(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, films)
}
