// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegraph/cinegraph/internal/models"
)

func TestValidateStructOK(t *testing.T) {
	u := models.User{
		Email: "alice@example.com",
		Login: "alice",
	}
	assert.Nil(t, ValidateStruct(&u))
}

func TestValidateStructUser(t *testing.T) {
	tests := []struct {
		name    string
		user    models.User
		wantMsg string
	}{
		{
			name:    "missing email",
			user:    models.User{Login: "alice"},
			wantMsg: "Email is required",
		},
		{
			name:    "malformed email",
			user:    models.User{Email: "not-an-email", Login: "alice"},
			wantMsg: "Email must be a valid email address",
		},
		{
			name:    "missing login",
			user:    models.User{Email: "alice@example.com"},
			wantMsg: "Login is required",
		},
		{
			name:    "login with spaces",
			user:    models.User{Email: "alice@example.com", Login: "al ice"},
			wantMsg: `Login must not contain " "`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.user)
			require.NotNil(t, verr)
			assert.Contains(t, verr.Error(), tt.wantMsg)
		})
	}
}

func TestValidateStructFilm(t *testing.T) {
	film := models.Film{
		Title:    "",
		Duration: -10,
	}
	verr := ValidateStruct(&film)
	require.NotNil(t, verr)

	assert.Contains(t, verr.Error(), "Title is required")
	assert.Contains(t, verr.Error(), "Duration must be greater than 0")
	assert.GreaterOrEqual(t, len(verr.Fields()), 2)
}

func TestValidatorIsSingleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}
