// Cinegraph - Social Movie Cataloguing and Recommendations
// Copyright 2026 Cinegraph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinegraph/cinegraph

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordDBQuery(t *testing.T) {
	before := testutil.CollectAndCount(DBQueryDuration)
	RecordDBQuery("select", "films", time.Now(), nil)
	assert.Greater(t, testutil.CollectAndCount(DBQueryDuration), before-1)
}

func TestRecordDBQueryError(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("insert", "users"))
	RecordDBQuery("insert", "users", time.Now(), errors.New("boom"))
	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("insert", "users"))
	assert.Equal(t, before+1, after)
}

func TestRecordFeedEvent(t *testing.T) {
	before := testutil.ToFloat64(FeedEventsAppended.WithLabelValues("LIKE", "ADD"))
	RecordFeedEvent("LIKE", "ADD")
	after := testutil.ToFloat64(FeedEventsAppended.WithLabelValues("LIKE", "ADD"))
	assert.Equal(t, before+1, after)
}

func TestRecordRecommendationEmpty(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsEmpty)
	RecordRecommendation(time.Now(), 0)
	RecordRecommendation(time.Now(), 5)
	after := testutil.ToFloat64(RecommendationsEmpty)
	assert.Equal(t, before+1, after)
}
