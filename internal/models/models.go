// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

// Package models defines the domain entities shared across the Cinegraph
// application: users, films, reviews, reference data and the activity feed.
//
// All entity identifiers are store-assigned int64 values. Entities are plain
// data carriers; behaviour lives in the service packages.
package models

import (
	"time"

	"github.com/goccy/go-json"
)

// dateLayout is the wire format for calendar dates (birthdays, release dates).
const dateLayout = "2006-01-02"

// Date is a calendar date serialized as "YYYY-MM-DD" on the wire.
// It wraps time.Time so it scans cleanly from DATE columns.
type Date struct {
	time.Time
}

// NewDate returns a Date for the given calendar day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// User is a registered account. Name defaults to Login when left blank;
// the storage layer applies the default on create and update.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email" validate:"required,email"`
	Login    string `json:"login" validate:"required,excludes= "`
	Name     string `json:"name"`
	Birthday Date   `json:"birthday"`
}

// Genre is a reference-data film genre.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// MPARating is a reference-data MPA age rating (G, PG, PG-13, R, NC-17).
type MPARating struct {
	ID          int64  `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Director is a film director. Unlike genres and MPA ratings, directors are
// user-managed rather than seeded reference data.
type Director struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,max=200"`
}

// Film is a catalogued movie, hydrated with its reference data. Likes is the
// cardinality of the current like relation for the film; it is always computed
// from the relation at read time, never cached.
type Film struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"max=200"`
	ReleaseDate Date       `json:"releaseDate"`
	Duration    int        `json:"duration" validate:"gt=0"`
	MPA         MPARating  `json:"mpa"`
	Genres      []Genre    `json:"genres"`
	Directors   []Director `json:"directors"`
	Likes       int64      `json:"likes"`
}

// Review is a user's review of a film. Useful is the usefulness score: the
// number of positive votes minus the number of negative votes, maintained by
// idempotent per-user votes.
type Review struct {
	ID         int64  `json:"reviewId"`
	FilmID     int64  `json:"filmId" validate:"required"`
	UserID     int64  `json:"userId" validate:"required"`
	Content    string `json:"content" validate:"required"`
	IsPositive bool   `json:"isPositive"`
	Useful     int64  `json:"useful"`
}

// DirectorSort selects the ordering of a director's filmography.
type DirectorSort string

const (
	// SortByYear orders films by release date ascending.
	SortByYear DirectorSort = "year"
	// SortByLikes orders films by like count descending.
	SortByLikes DirectorSort = "likes"
)

// Valid reports whether s is a recognized sort key.
func (s DirectorSort) Valid() bool {
	return s == SortByYear || s == SortByLikes
}
