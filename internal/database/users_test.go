// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegraph/cinegraph/internal/models"
)

func TestCreateUserAssignsID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	a := createTestUser(t, db, "alice")
	b := createTestUser(t, db, "bob")

	assert.Positive(t, a.ID)
	assert.Greater(t, b.ID, a.ID)

	got, err := db.GetUser(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "alice", got.Login)
}

func TestCreateUserDefaultsNameToLogin(t *testing.T) {
	db := setupTestDB(t)

	u := &models.User{Email: "carol@example.com", Login: "carol"}
	require.NoError(t, db.CreateUser(context.Background(), u))
	assert.Equal(t, "carol", u.Name)
}

func TestUpdateUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := createTestUser(t, db, "dave")
	u.Name = "David"
	u.Email = "david@example.com"
	require.NoError(t, db.UpdateUser(ctx, u))

	got, err := db.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "David", got.Name)
	assert.Equal(t, "david@example.com", got.Email)
}

func TestUpdateUserNotFound(t *testing.T) {
	db := setupTestDB(t)

	u := &models.User{ID: 999, Email: "x@example.com", Login: "x"}
	err := db.UpdateUser(context.Background(), u)
	assert.True(t, models.IsNotFound(err))
}

func TestGetUserNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetUser(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
	assert.EqualError(t, err, "user with id 42 not found")
}

func TestListUsers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	users, err := db.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")

	users, err = db.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Login)
	assert.Equal(t, "bob", users[1].Login)
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	film := createTestFilm(t, db, "The Departed")

	_, err := db.AddLike(ctx, film.ID, alice.ID,
		models.NewFeedEvent(alice.ID, models.EventLike, models.OpAdd, film.ID))
	require.NoError(t, err)
	require.NoError(t, db.AddFriend(ctx, alice.ID, bob.ID,
		models.NewFeedEvent(alice.ID, models.EventFriend, models.OpAdd, bob.ID)))
	require.NoError(t, db.AddFriend(ctx, bob.ID, alice.ID,
		models.NewFeedEvent(bob.ID, models.EventFriend, models.OpAdd, alice.ID)))

	review := &models.Review{FilmID: film.ID, UserID: alice.ID, Content: "great", IsPositive: true}
	require.NoError(t, db.CreateReview(ctx, review,
		models.NewFeedEvent(alice.ID, models.EventReview, models.OpAdd, 0)))

	require.NoError(t, db.DeleteUser(ctx, alice.ID))

	_, err = db.GetUser(ctx, alice.ID)
	assert.True(t, models.IsNotFound(err))

	// Like gone, film popularity drops back to zero
	got, err := db.GetFilm(ctx, film.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Likes)

	// Bob no longer lists alice as friend
	friends, err := db.ListFriends(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)

	// Alice's review is gone
	_, err = db.GetReview(ctx, review.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestDeleteUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	err := db.DeleteUser(context.Background(), 7)
	assert.True(t, models.IsNotFound(err))
}

func TestUserBirthdayRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := &models.User{
		Email:    "eve@example.com",
		Login:    "eve",
		Birthday: models.NewDate(1985, time.December, 31),
	}
	require.NoError(t, db.CreateUser(ctx, u))

	got, err := db.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1985, got.Birthday.Year())
	assert.Equal(t, time.December, got.Birthday.Month())
	assert.Equal(t, 31, got.Birthday.Day())
}
