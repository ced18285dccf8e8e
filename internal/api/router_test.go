// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegraph/cinegraph/internal/catalog"
	"github.com/cinegraph/cinegraph/internal/config"
	"github.com/cinegraph/cinegraph/internal/models"
	"github.com/cinegraph/cinegraph/internal/ranking"
	"github.com/cinegraph/cinegraph/internal/recommend"
	"github.com/cinegraph/cinegraph/internal/reviews"
	"github.com/cinegraph/cinegraph/internal/social"
	"github.com/cinegraph/cinegraph/internal/storage/memory"
)

// okPinger satisfies Pinger for handler tests.
type okPinger struct{ err error }

func (p okPinger) Ping(context.Context) error { return p.err }

func newTestRouter(t *testing.T) (http.Handler, *memory.Store) {
	t.Helper()
	store := memory.New()

	h := NewHandler(
		catalog.New(store),
		social.NewGraph(store),
		social.NewFeed(store, 1000),
		ranking.New(store, 10),
		recommend.New(store, 1),
		reviews.New(store, 10),
	)
	cfg := &config.APIConfig{
		DefaultTopCount: 10,
		MaxPageSize:     1000,
		CORSOrigins:     []string{"*"},
		RateLimitReqs:   10000,
		RateLimitWindow: time.Minute,
	}
	return Routes(h, okPinger{}, cfg), store
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func createUser(t *testing.T, router http.Handler, login string) models.User {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/users", models.User{
		Email: login + "@example.com",
		Login: login,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var user models.User
	decodeInto(t, rec, &user)
	return user
}

func createFilm(t *testing.T, router http.Handler, title string) models.Film {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/films", models.Film{
		Title:    title,
		Duration: 100,
		Genres:   []models.Genre{{ID: 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var film models.Film
	decodeInto(t, rec, &film)
	return film
}

func TestUserLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	user := createUser(t, router, "alice")
	assert.Positive(t, user.ID)
	assert.Equal(t, "alice", user.Name)

	user.Name = "Alice A."
	rec := doJSON(t, router, http.MethodPut, "/users", user)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/users/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.User
	decodeInto(t, rec, &got)
	assert.Equal(t, "Alice A.", got.Name)

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/users/%d", user.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/users/%d", user.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserValidationErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/users", models.User{Email: "not-an-email", Login: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	decodeInto(t, rec, &body)
	assert.Equal(t, errCodeBadRequest, body.Error)
	assert.NotEmpty(t, body.RequestID)

	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader([]byte("{not json")))
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestFriendEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	alice := createUser(t, router, "alice")
	bob := createUser(t, router, "bob")
	carol := createUser(t, router, "carol")

	rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/users/%d/friends/%d", alice.ID, carol.ID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/users/%d/friends/%d", bob.ID, carol.ID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/users/%d/friends", alice.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var friends []models.User
	decodeInto(t, rec, &friends)
	require.Len(t, friends, 1)
	assert.Equal(t, carol.ID, friends[0].ID)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/users/%d/friends/common/%d", alice.ID, bob.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var common []models.User
	decodeInto(t, rec, &common)
	require.Len(t, common, 1)
	assert.Equal(t, carol.ID, common[0].ID)

	// Self-friendship is a 400
	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/users/%d/friends/%d", alice.ID, alice.ID), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown friend is a 404
	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/users/%d/friends/999", alice.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/users/%d/friends/%d", alice.ID, carol.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLikesAndPopular(t *testing.T) {
	router, _ := newTestRouter(t)

	alice := createUser(t, router, "alice")
	hot := createFilm(t, router, "Dune")
	createFilm(t, router, "Arrival")

	rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/films/%d/like/%d", hot.ID, alice.ID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/films/popular?count=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var films []models.Film
	decodeInto(t, rec, &films)
	require.Len(t, films, 1)
	assert.Equal(t, hot.ID, films[0].ID)
	assert.Equal(t, int64(1), films[0].Likes)

	rec = doJSON(t, router, http.MethodGet, "/films/popular?count=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/films/%d/like/%d", hot.ID, alice.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestFeedWireFormat(t *testing.T) {
	router, _ := newTestRouter(t)

	alice := createUser(t, router, "alice")
	bob := createUser(t, router, "bob")

	rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/users/%d/friends/%d", alice.ID, bob.ID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/users/%d/feed", alice.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var events []models.FeedEvent
	decodeInto(t, rec, &events)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventFriend, events[0].EventType)
	assert.Equal(t, models.OpAdd, events[0].Operation)
	assert.Equal(t, alice.ID, events[0].UserID)
	assert.Equal(t, bob.ID, events[0].EntityID)
	assert.Positive(t, events[0].Timestamp.Time().UnixMilli())
}

func TestRecommendationsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	alice := createUser(t, router, "alice")
	bob := createUser(t, router, "bob")
	shared := createFilm(t, router, "Dune")
	fresh := createFilm(t, router, "Arrival")

	for _, pair := range [][2]int64{{shared.ID, alice.ID}, {shared.ID, bob.ID}, {fresh.ID, bob.ID}} {
		rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/films/%d/like/%d", pair[0], pair[1]), nil)
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/users/%d/recommendations", alice.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var films []models.Film
	decodeInto(t, rec, &films)
	require.Len(t, films, 1)
	assert.Equal(t, fresh.ID, films[0].ID)

	rec = doJSON(t, router, http.MethodGet, "/users/999/recommendations", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviewEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	alice := createUser(t, router, "alice")
	bob := createUser(t, router, "bob")
	film := createFilm(t, router, "Dune")

	rec := doJSON(t, router, http.MethodPost, "/reviews", models.Review{
		FilmID:     film.ID,
		UserID:     alice.ID,
		Content:    "spice must flow",
		IsPositive: true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var review models.Review
	decodeInto(t, rec, &review)
	assert.Positive(t, review.ID)

	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/reviews/%d/like/%d", review.ID, bob.ID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/reviews/%d", review.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeInto(t, rec, &review)
	assert.Equal(t, int64(1), review.Useful)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/reviews?filmId=%d&count=5", film.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Review
	decodeInto(t, rec, &list)
	assert.Len(t, list, 1)

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/reviews/%d/like/%d", review.ID, bob.ID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/reviews/%d", review.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/reviews/%d", review.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchAndDirectorEndpoints(t *testing.T) {
	router, store := newTestRouter(t)
	ctx := context.Background()

	d := &models.Director{Name: "Denis Villeneuve"}
	require.NoError(t, store.CreateDirector(ctx, d))

	film := &models.Film{
		Title:     "Dune",
		Duration:  155,
		Directors: []models.Director{{ID: d.ID}},
	}
	require.NoError(t, store.CreateFilm(ctx, film))

	rec := doJSON(t, router, http.MethodGet, "/films/search?query=villeneuve&by=director", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var films []models.Film
	decodeInto(t, rec, &films)
	require.Len(t, films, 1)
	assert.Equal(t, film.ID, films[0].ID)

	rec = doJSON(t, router, http.MethodGet, "/films/search?query=dune&by=plot", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/films/search?query=dune", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/films/director/%d?sortBy=year", d.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeInto(t, rec, &films)
	assert.Len(t, films, 1)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/films/director/%d?sortBy=alphabetical", d.ID), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReferenceEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/genres", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var genres []models.Genre
	decodeInto(t, rec, &genres)
	assert.Len(t, genres, 6)

	rec = doJSON(t, router, http.MethodGet, "/mpa/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mpa models.MPARating
	decodeInto(t, rec, &mpa)
	assert.Equal(t, "G", mpa.Name)

	rec = doJSON(t, router, http.MethodGet, "/genres/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var status healthStatus
	decodeInto(t, rec, &status)
	assert.Equal(t, "ok", status.Status)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestHealthDegraded(t *testing.T) {
	h := &Handler{}
	cfg := &config.APIConfig{
		DefaultTopCount: 10, MaxPageSize: 1000,
		RateLimitReqs: 100, RateLimitWindow: time.Minute,
	}
	router := Routes(h, okPinger{err: fmt.Errorf("database is wedged")}, cfg)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
