// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegraph/cinegraph/internal/models"
)

func likeEvent(userID, filmID int64, op models.Operation) models.FeedEvent {
	return models.NewFeedEvent(userID, models.EventLike, op, filmID)
}

func TestAddLike(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	film := createTestFilm(t, db, "Heat")

	changed, err := db.AddLike(ctx, film.ID, alice.ID, likeEvent(alice.ID, film.ID, models.OpAdd))
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := db.GetFilm(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Likes)
}

func TestAddLikeIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	film := createTestFilm(t, db, "Heat")

	for i := 0; i < 3; i++ {
		_, err := db.AddLike(ctx, film.ID, alice.ID, likeEvent(alice.ID, film.ID, models.OpAdd))
		require.NoError(t, err)
	}

	got, err := db.GetFilm(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Likes)

	// Only the first call changed state, so only one feed event exists
	feed, err := db.GetFeed(ctx, alice.ID, 10)
	require.NoError(t, err)
	assert.Len(t, feed, 1)
}

func TestRemoveLike(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	film := createTestFilm(t, db, "Heat")

	_, err := db.AddLike(ctx, film.ID, alice.ID, likeEvent(alice.ID, film.ID, models.OpAdd))
	require.NoError(t, err)

	changed, err := db.RemoveLike(ctx, film.ID, alice.ID, likeEvent(alice.ID, film.ID, models.OpRemove))
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := db.GetFilm(ctx, film.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Likes)
}

func TestRemoveLikeAbsent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	film := createTestFilm(t, db, "Heat")

	changed, err := db.RemoveLike(ctx, film.ID, alice.ID, likeEvent(alice.ID, film.ID, models.OpRemove))
	require.NoError(t, err)
	assert.False(t, changed)

	feed, err := db.GetFeed(ctx, alice.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestAddLikeUnknownFilm(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	_, err := db.AddLike(ctx, 999, alice.ID, likeEvent(alice.ID, 999, models.OpAdd))
	assert.True(t, models.IsNotFound(err))
}

func TestLikesByUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	f1 := createTestFilm(t, db, "Alien")
	f2 := createTestFilm(t, db, "Aliens")

	_, err := db.AddLike(ctx, f1.ID, alice.ID, likeEvent(alice.ID, f1.ID, models.OpAdd))
	require.NoError(t, err)
	_, err = db.AddLike(ctx, f2.ID, alice.ID, likeEvent(alice.ID, f2.ID, models.OpAdd))
	require.NoError(t, err)
	_, err = db.AddLike(ctx, f1.ID, bob.ID, likeEvent(bob.ID, f1.ID, models.OpAdd))
	require.NoError(t, err)

	likes, err := db.LikesByUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{f1.ID, f2.ID}, likes[alice.ID])
	assert.Equal(t, []int64{f1.ID}, likes[bob.ID])
}
