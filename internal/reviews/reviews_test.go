// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package reviews

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegraph/cinegraph/internal/models"
	"github.com/cinegraph/cinegraph/internal/storage/memory"
)

type fixture struct {
	store *memory.Store
	svc   *Service
	alice *models.User
	bob   *models.User
	film  *models.Film
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	fx := &fixture{store: memory.New()}
	fx.svc = New(fx.store, 10)

	fx.alice = &models.User{Email: "alice@example.com", Login: "alice"}
	require.NoError(t, fx.store.CreateUser(ctx, fx.alice))
	fx.bob = &models.User{Email: "bob@example.com", Login: "bob"}
	require.NoError(t, fx.store.CreateUser(ctx, fx.bob))
	fx.film = &models.Film{Title: "Arrival", Duration: 116}
	require.NoError(t, fx.store.CreateFilm(ctx, fx.film))
	return fx
}

func (fx *fixture) review(t *testing.T, content string, positive bool) *models.Review {
	t.Helper()
	r := &models.Review{
		FilmID:     fx.film.ID,
		UserID:     fx.alice.ID,
		Content:    content,
		IsPositive: positive,
	}
	require.NoError(t, fx.svc.Create(context.Background(), r))
	return r
}

func TestCreateReview(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	r := fx.review(t, "thoughtful first contact story", true)
	assert.Positive(t, r.ID)

	// Creation feeds the author with the assigned review id
	feed, err := fx.store.GetFeed(ctx, fx.alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, models.EventReview, feed[0].EventType)
	assert.Equal(t, models.OpAdd, feed[0].Operation)
	assert.Equal(t, r.ID, feed[0].EntityID)

	err = fx.svc.Create(ctx, &models.Review{FilmID: fx.film.ID, UserID: fx.alice.ID})
	assert.True(t, models.IsInvalidArgument(err))

	err = fx.svc.Create(ctx, &models.Review{FilmID: 999, UserID: fx.alice.ID, Content: "x"})
	assert.True(t, models.IsNotFound(err))
}

func TestUpdateKeepsBindingsAndFeedsAuthor(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	r := fx.review(t, "fine", true)

	// Attempt to move the review to another author and verdict
	err := fx.svc.Update(ctx, &models.Review{
		ID:         r.ID,
		FilmID:     999,
		UserID:     fx.bob.ID,
		Content:    "actually great",
		IsPositive: false,
	})
	require.NoError(t, err)

	got, err := fx.svc.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "actually great", got.Content)
	assert.False(t, got.IsPositive)
	assert.Equal(t, fx.alice.ID, got.UserID)
	assert.Equal(t, fx.film.ID, got.FilmID)

	// The update event belongs to alice, not bob
	feed, err := fx.store.GetFeed(ctx, fx.alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, models.OpUpdate, feed[1].Operation)
	assert.Equal(t, fx.alice.ID, feed[1].UserID)

	feed, err = fx.store.GetFeed(ctx, fx.bob.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestDeleteFeedsAuthor(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	r := fx.review(t, "fine", true)
	require.NoError(t, fx.svc.Delete(ctx, r.ID))

	_, err := fx.svc.Get(ctx, r.ID)
	assert.True(t, models.IsNotFound(err))

	feed, err := fx.store.GetFeed(ctx, fx.alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, models.OpRemove, feed[1].Operation)
	assert.Equal(t, r.ID, feed[1].EntityID)

	err = fx.svc.Delete(ctx, r.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestVoteLifecycle(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	r := fx.review(t, "fine", true)

	require.NoError(t, fx.svc.Vote(ctx, r.ID, fx.bob.ID, true))
	got, err := fx.svc.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Useful)

	// Same direction again changes nothing
	require.NoError(t, fx.svc.Vote(ctx, r.ID, fx.bob.ID, true))
	got, err = fx.svc.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Useful)

	// Opposite direction switches the vote
	require.NoError(t, fx.svc.Vote(ctx, r.ID, fx.bob.ID, false))
	got, err = fx.svc.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), got.Useful)

	require.NoError(t, fx.svc.RemoveVote(ctx, r.ID, fx.bob.ID))
	got, err = fx.svc.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Useful)

	// Retracting an absent vote is a no-op
	require.NoError(t, fx.svc.RemoveVote(ctx, r.ID, fx.bob.ID))

	err = fx.svc.Vote(ctx, 999, fx.bob.ID, true)
	assert.True(t, models.IsNotFound(err))
}

func TestListOrderedByUsefulness(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	first := fx.review(t, "first", true)
	second := fx.review(t, "second", false)
	require.NoError(t, fx.svc.Vote(ctx, second.ID, fx.bob.ID, true))

	got, err := fx.svc.List(ctx, fx.film.ID, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)

	got, err = fx.svc.List(ctx, fx.film.ID, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = fx.svc.List(ctx, fx.film.ID, -1)
	assert.True(t, models.IsInvalidArgument(err))

	_, err = fx.svc.List(ctx, 999, 5)
	assert.True(t, models.IsNotFound(err))
}
