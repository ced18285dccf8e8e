// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package models

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a referenced entity does not exist. It carries
// the entity kind and id so callers can surface a message naming both.
// Store failures (connection loss, malformed SQL) are never wrapped in a
// NotFoundError; they propagate as plain errors.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

// NotFound returns a NotFoundError for the given entity kind and id.
func NotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// InvalidArgumentError reports a malformed filter, sort or count parameter.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return e.Reason
}

// InvalidArgument returns an InvalidArgumentError with the given reason.
func InvalidArgument(format string, args ...any) error {
	return &InvalidArgumentError{Reason: fmt.Sprintf(format, args...)}
}

// IsInvalidArgument reports whether err is (or wraps) an InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var ia *InvalidArgumentError
	return errors.As(err, &ia)
}
