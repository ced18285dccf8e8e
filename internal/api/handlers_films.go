// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package api

import (
	"net/http"

	"github.com/cinegraph/cinegraph/internal/models"
)

// CreateFilm handles POST /films.
func (h *Handler) CreateFilm(w http.ResponseWriter, r *http.Request) {
	var film models.Film
	if err := decodeBody(r, &film); err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.catalog.CreateFilm(r.Context(), &film); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, film)
}

// UpdateFilm handles PUT /films.
func (h *Handler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	var film models.Film
	if err := decodeBody(r, &film); err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.catalog.UpdateFilm(r.Context(), &film); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, film)
}

// ListFilms handles GET /films.
func (h *Handler) ListFilms(w http.ResponseWriter, r *http.Request) {
	films, err := h.catalog.ListFilms(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, films)
}

// GetFilm handles GET /films/{id}.
func (h *Handler) GetFilm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	film, err := h.catalog.GetFilm(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, film)
}

// DeleteFilm handles DELETE /films/{id}.
func (h *Handler) DeleteFilm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.catalog.DeleteFilm(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddLike handles PUT /films/{id}/like/{userId}.
func (h *Handler) AddLike(w http.ResponseWriter, r *http.Request) {
	filmID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.catalog.AddLike(r.Context(), filmID, userID); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveLike handles DELETE /films/{id}/like/{userId}.
func (h *Handler) RemoveLike(w http.ResponseWriter, r *http.Request) {
	filmID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.catalog.RemoveLike(r.Context(), filmID, userID); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PopularFilms handles GET /films/popular?count=&genreId=&year=.
// An absent count selects the configured default; an explicit count must
// be positive.
func (h *Handler) PopularFilms(w http.ResponseWriter, r *http.Request) {
	count, err := queryInt(r, "count", 0)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if r.URL.Query().Get("count") != "" && count < 1 {
		respondBadRequest(w, r, "count must be a positive integer")
		return
	}
	genreID, err := queryInt64(r, "genreId", 0)
	if err != nil {
		respondError(w, r, err)
		return
	}
	year, err := queryInt(r, "year", 0)
	if err != nil {
		respondError(w, r, err)
		return
	}
	films, err := h.ranking.Popular(r.Context(), count, genreID, year)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, films)
}

// CommonFilms handles GET /films/common?userId=&friendId=.
func (h *Handler) CommonFilms(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "userId", 0)
	if err != nil {
		respondError(w, r, err)
		return
	}
	friendID, err := queryInt64(r, "friendId", 0)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if userID < 1 || friendID < 1 {
		respondBadRequest(w, r, "userId and friendId are required")
		return
	}
	films, err := h.ranking.Common(r.Context(), userID, friendID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, films)
}

// SearchFilms handles GET /films/search?query=&by=.
func (h *Handler) SearchFilms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	films, err := h.ranking.Search(r.Context(), q.Get("query"), q.Get("by"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, films)
}

// DirectorFilms handles GET /films/director/{directorId}?sortBy=.
func (h *Handler) DirectorFilms(w http.ResponseWriter, r *http.Request) {
	directorID, err := pathID(r, "directorId")
	if err != nil {
		respondError(w, r, err)
		return
	}
	sortBy := r.URL.Query().Get("sortBy")
	if sortBy == "" {
		sortBy = string(models.SortByLikes)
	}
	films, err := h.ranking.DirectorFilms(r.Context(), directorID, models.DirectorSort(sortBy))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, films)
}
