// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package models

import (
	"strconv"
	"time"
)

// EventType classifies a feed event by the relation it concerns.
// Values are stable wire names, never positional ordinals.
type EventType string

const (
	// EventLike records a like added to or removed from a film or review.
	EventLike EventType = "LIKE"
	// EventFriend records a friend edge added or removed.
	EventFriend EventType = "FRIEND"
	// EventReview records a review created, updated or deleted.
	EventReview EventType = "REVIEW"
)

// Operation is the kind of state change a feed event records.
type Operation string

const (
	OpAdd    Operation = "ADD"
	OpRemove Operation = "REMOVE"
	OpUpdate Operation = "UPDATE"
)

// EpochMillis is a timestamp serialized as milliseconds since the Unix epoch.
type EpochMillis time.Time

// MarshalJSON implements json.Marshaler.
func (m EpochMillis) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, time.Time(m).UnixMilli(), 10), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *EpochMillis) UnmarshalJSON(data []byte) error {
	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	*m = EpochMillis(time.UnixMilli(ms).UTC())
	return nil
}

// Time returns the timestamp as a time.Time.
func (m EpochMillis) Time() time.Time {
	return time.Time(m)
}

// FeedEvent is one immutable entry in a user's activity feed. Events are
// created exactly once per state-changing action, inside the same transaction
// as the change itself, and are never edited or deleted individually; they
// vanish only when the owning user is deleted.
//
// EventID is assigned from a monotonic sequence at append time and breaks
// ties between events that share a timestamp.
type FeedEvent struct {
	EventID   int64       `json:"eventId"`
	UserID    int64       `json:"userId"`
	EntityID  int64       `json:"entityId"`
	EventType EventType   `json:"eventType"`
	Operation Operation   `json:"operation"`
	Timestamp EpochMillis `json:"timestamp"`
}

// NewFeedEvent builds the payload of a feed event prior to append. The store
// assigns EventID and Timestamp at commit time.
func NewFeedEvent(ownerID int64, eventType EventType, op Operation, entityID int64) FeedEvent {
	return FeedEvent{
		UserID:    ownerID,
		EntityID:  entityID,
		EventType: eventType,
		Operation: op,
	}
}
