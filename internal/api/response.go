// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/cinegraph/cinegraph/internal/logging"
	"github.com/cinegraph/cinegraph/internal/models"
)

// errorBody is the wire shape of every error response.
type errorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Error codes for API responses.
const (
	errCodeBadRequest    = "BAD_REQUEST"
	errCodeNotFound      = "NOT_FOUND"
	errCodeInternalError = "INTERNAL_ERROR"
)

// writeJSON writes data with the given status. Encoding failures are logged;
// the status line has already gone out by then.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

// respondError maps a domain error onto an HTTP error response. Unrecognized
// errors become opaque 500s so internals never leak to clients.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := logging.RequestIDFromContext(r.Context())

	switch {
	case models.IsNotFound(err):
		writeJSON(w, r, http.StatusNotFound, errorBody{
			Error: errCodeNotFound, Message: err.Error(), RequestID: requestID,
		})
	case models.IsInvalidArgument(err):
		writeJSON(w, r, http.StatusBadRequest, errorBody{
			Error: errCodeBadRequest, Message: err.Error(), RequestID: requestID,
		})
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		writeJSON(w, r, http.StatusInternalServerError, errorBody{
			Error: errCodeInternalError, Message: "an internal error occurred", RequestID: requestID,
		})
	}
}

// respondBadRequest writes a 400 with the given message.
func respondBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeJSON(w, r, http.StatusBadRequest, errorBody{
		Error:     errCodeBadRequest,
		Message:   message,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
}

// decodeBody unmarshals the request body into v.
func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return models.InvalidArgument("malformed request body: %v", err)
	}
	return nil
}

// pathID parses the named Chi URL parameter as an int64 id.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, models.InvalidArgument("%s must be a positive integer, got %q", name, raw)
	}
	return id, nil
}

// queryInt parses an optional integer query parameter, returning def when
// the parameter is absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.InvalidArgument("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

// queryInt64 parses an optional int64 query parameter, returning def when
// the parameter is absent.
func queryInt64(r *http.Request, name string, def int64) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, models.InvalidArgument("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}
