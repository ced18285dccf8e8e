// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package recommend

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegraph/cinegraph/internal/models"
	"github.com/cinegraph/cinegraph/internal/storage/memory"
)

type fixture struct {
	store *memory.Store
	users []*models.User
	films []*models.Film
}

func newFixture(t *testing.T, userCount, filmCount int) *fixture {
	t.Helper()
	fx := &fixture{store: memory.New()}
	ctx := context.Background()
	for i := 0; i < userCount; i++ {
		u := &models.User{
			Email: fmt.Sprintf("user%d@example.com", i),
			Login: fmt.Sprintf("user%d", i),
		}
		require.NoError(t, fx.store.CreateUser(ctx, u))
		fx.users = append(fx.users, u)
	}
	for i := 0; i < filmCount; i++ {
		f := &models.Film{Title: fmt.Sprintf("Film %d", i), Duration: 90}
		require.NoError(t, fx.store.CreateFilm(ctx, f))
		fx.films = append(fx.films, f)
	}
	return fx
}

func (fx *fixture) like(t *testing.T, user, film int) {
	t.Helper()
	userID, filmID := fx.users[user].ID, fx.films[film].ID
	_, err := fx.store.AddLike(context.Background(), filmID, userID,
		models.NewFeedEvent(userID, models.EventLike, models.OpAdd, filmID))
	require.NoError(t, err)
}

func TestForUserRecommendsFromBestPeer(t *testing.T) {
	fx := newFixture(t, 3, 4)
	eng := New(fx.store, 1)
	ctx := context.Background()

	// user0 and user1 share films 0 and 1; user1 also likes films 2 and 3.
	// user2 shares only film 0 and likes film 3.
	fx.like(t, 0, 0)
	fx.like(t, 0, 1)
	fx.like(t, 1, 0)
	fx.like(t, 1, 1)
	fx.like(t, 1, 2)
	fx.like(t, 1, 3)
	fx.like(t, 2, 0)
	fx.like(t, 2, 3)

	films, err := eng.ForUser(ctx, fx.users[0].ID)
	require.NoError(t, err)
	require.Len(t, films, 2)
	got := []int64{films[0].ID, films[1].ID}
	assert.ElementsMatch(t, []int64{fx.films[2].ID, fx.films[3].ID}, got)
}

func TestForUserEmptyCases(t *testing.T) {
	fx := newFixture(t, 2, 2)
	eng := New(fx.store, 1)
	ctx := context.Background()

	// No likes at all
	films, err := eng.ForUser(ctx, fx.users[0].ID)
	require.NoError(t, err)
	assert.Empty(t, films)

	// Peer's likes are a subset of the user's
	fx.like(t, 0, 0)
	fx.like(t, 0, 1)
	fx.like(t, 1, 0)
	films, err = eng.ForUser(ctx, fx.users[0].ID)
	require.NoError(t, err)
	assert.Empty(t, films)
}

func TestForUserMinOverlap(t *testing.T) {
	fx := newFixture(t, 2, 3)
	eng := New(fx.store, 2)
	ctx := context.Background()

	// Only one shared like: below the overlap floor of 2
	fx.like(t, 0, 0)
	fx.like(t, 1, 0)
	fx.like(t, 1, 2)

	films, err := eng.ForUser(ctx, fx.users[0].ID)
	require.NoError(t, err)
	assert.Empty(t, films)

	// Second shared like clears the floor
	fx.like(t, 0, 1)
	fx.like(t, 1, 1)
	films, err = eng.ForUser(ctx, fx.users[0].ID)
	require.NoError(t, err)
	require.Len(t, films, 1)
	assert.Equal(t, fx.films[2].ID, films[0].ID)
}

func TestForUserTieBreaksToLowestPeer(t *testing.T) {
	fx := newFixture(t, 3, 4)
	eng := New(fx.store, 1)
	ctx := context.Background()

	// user1 and user2 both share exactly film 0 with user0 but recommend
	// different films; the lower peer id must win.
	fx.like(t, 0, 0)
	fx.like(t, 1, 0)
	fx.like(t, 1, 1)
	fx.like(t, 2, 0)
	fx.like(t, 2, 2)

	for i := 0; i < 10; i++ {
		films, err := eng.ForUser(ctx, fx.users[0].ID)
		require.NoError(t, err)
		require.Len(t, films, 1)
		assert.Equal(t, fx.films[1].ID, films[0].ID)
	}
}

func TestForUserUnknownUser(t *testing.T) {
	fx := newFixture(t, 1, 1)
	eng := New(fx.store, 1)

	_, err := eng.ForUser(context.Background(), 999)
	assert.True(t, models.IsNotFound(err))
}
