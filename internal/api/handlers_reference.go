// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package api

import (
	"net/http"

	"github.com/cinegraph/cinegraph/internal/models"
)

// ListGenres handles GET /genres.
func (h *Handler) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.catalog.ListGenres(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, genres)
}

// GetGenre handles GET /genres/{id}.
func (h *Handler) GetGenre(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	genre, err := h.catalog.GetGenre(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, genre)
}

// ListMPARatings handles GET /mpa.
func (h *Handler) ListMPARatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.catalog.ListMPARatings(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ratings)
}

// GetMPARating handles GET /mpa/{id}.
func (h *Handler) GetMPARating(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	rating, err := h.catalog.GetMPARating(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rating)
}

// CreateDirector handles POST /directors.
func (h *Handler) CreateDirector(w http.ResponseWriter, r *http.Request) {
	var d models.Director
	if err := decodeBody(r, &d); err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.catalog.CreateDirector(r.Context(), &d); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, d)
}

// UpdateDirector handles PUT /directors.
func (h *Handler) UpdateDirector(w http.ResponseWriter, r *http.Request) {
	var d models.Director
	if err := decodeBody(r, &d); err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.catalog.UpdateDirector(r.Context(), &d); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, d)
}

// ListDirectors handles GET /directors.
func (h *Handler) ListDirectors(w http.ResponseWriter, r *http.Request) {
	directors, err := h.catalog.ListDirectors(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, directors)
}

// GetDirector handles GET /directors/{id}.
func (h *Handler) GetDirector(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	d, err := h.catalog.GetDirector(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, d)
}

// DeleteDirector handles DELETE /directors/{id}.
func (h *Handler) DeleteDirector(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.catalog.DeleteDirector(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
