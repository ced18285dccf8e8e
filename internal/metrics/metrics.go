// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

// Package metrics defines the Prometheus instrumentation for Cinegraph:
// DuckDB query performance, API latency and throughput, and counters for the
// social domain (likes, friendships, feed events, review votes).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// Social domain metrics
	FilmLikesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "film_likes_total",
			Help: "Total number of film like state changes",
		},
		[]string{"operation"}, // "add", "remove"
	)

	FriendOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "friend_operations_total",
			Help: "Total number of friendship operations",
		},
		[]string{"operation"}, // "add", "remove"
	)

	FeedEventsAppended = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_events_appended_total",
			Help: "Total number of events appended to activity feeds",
		},
		[]string{"event_type", "operation"},
	)

	ReviewVotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_votes_total",
			Help: "Total number of review usefulness vote state changes",
		},
		[]string{"direction"}, // "up", "down", "retract"
	)

	// Recommendation metrics
	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of collaborative-filtering recommendation runs",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendationsEmpty = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_empty_total",
			Help: "Total number of recommendation runs that produced no films",
		},
	)
)

// RecordAPIRequest records an HTTP request's outcome and latency.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordDBQuery records a database query duration and any error.
func RecordDBQuery(operation, table string, start time.Time, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordFeedEvent records an event appended to a user's activity feed.
func RecordFeedEvent(eventType, operation string) {
	FeedEventsAppended.WithLabelValues(eventType, operation).Inc()
}

// RecordRecommendation records the duration of a recommendation run and
// whether it produced any films.
func RecordRecommendation(start time.Time, resultCount int) {
	RecommendationDuration.Observe(time.Since(start).Seconds())
	if resultCount == 0 {
		RecommendationsEmpty.Inc()
	}
}
