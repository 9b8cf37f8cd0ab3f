// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/resonance/internal/recommend"
)

// Compile-time check that RecommendObserver satisfies the engine hook.
var _ recommend.Observer = (*RecommendObserver)(nil)

// Collectors are global, so tests assert on deltas and use unique label values.

func TestRecommendObserver_ObserveRequest(t *testing.T) {
	obs := NewRecommendObserver()
	engine := "test-request"

	before := testutil.ToFloat64(RecommendRequestsTotal.WithLabelValues(engine))
	obs.ObserveRequest(engine, 3*time.Millisecond, 120, 20)
	obs.ObserveRequest(engine, time.Millisecond, 80, 10)

	if got := testutil.ToFloat64(RecommendRequestsTotal.WithLabelValues(engine)) - before; got != 2 {
		t.Errorf("requests delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(RecommendCatalogSize.WithLabelValues(engine)); got != 80 {
		t.Errorf("catalog size = %v, want 80", got)
	}
}

func TestRecommendObserver_RebuildAndClear(t *testing.T) {
	obs := NewRecommendObserver()
	engine := "test-rebuild"

	obs.ObserveRebuild(engine, recommend.CacheFeatures, 10*time.Millisecond, 300)
	obs.ObserveRebuild(engine, recommend.CacheSimilarity, 50*time.Millisecond, 300)
	obs.ObserveRebuild(engine, recommend.CacheSimilarity, 40*time.Millisecond, 310)

	if got := testutil.ToFloat64(CacheRebuildsTotal.WithLabelValues(engine, recommend.CacheSimilarity)); got != 2 {
		t.Errorf("similarity rebuilds = %v, want 2", got)
	}
	if got := testutil.ToFloat64(CacheEntries.WithLabelValues(engine, recommend.CacheSimilarity)); got != 310 {
		t.Errorf("similarity entries = %v, want 310", got)
	}

	obs.ObserveClear(engine)

	if got := testutil.ToFloat64(CacheClearsTotal.WithLabelValues(engine)); got != 1 {
		t.Errorf("clears = %v, want 1", got)
	}
	for _, cache := range []string{recommend.CacheFeatures, recommend.CacheSimilarity} {
		if got := testutil.ToFloat64(CacheEntries.WithLabelValues(engine, cache)); got != 0 {
			t.Errorf("%s entries after clear = %v, want 0", cache, got)
		}
	}
}

func TestRecommendObserver_WithEngine(t *testing.T) {
	e, err := recommend.NewEngine(nil, zerologNop(), recommend.WithName("test-engine"),
		recommend.WithObserver(NewRecommendObserver()))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	e.GetRecommendations(context.Background(), sampleTracks(), nil, noTrack(), 5)

	if got := testutil.ToFloat64(RecommendRequestsTotal.WithLabelValues("test-engine")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CacheRebuildsTotal.WithLabelValues("test-engine", recommend.CacheFeatures)); got != 1 {
		t.Errorf("feature rebuilds = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CacheEntries.WithLabelValues("test-engine", recommend.CacheFeatures)); got != 3 {
		t.Errorf("feature entries = %v, want 3", got)
	}
}

func TestRecordWarmerRun(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		result string
	}{
		{"success", nil, "success"},
		{"failure", errors.New("open catalog: no such file"), "error"},
		{"canceled", fmt.Errorf("warm caches: %w", context.Canceled), "canceled"},
		{"deadline", context.DeadlineExceeded, "canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(WarmerRunsTotal.WithLabelValues(tt.result))
			RecordWarmerRun(25*time.Millisecond, 42, tt.err)
			if got := testutil.ToFloat64(WarmerRunsTotal.WithLabelValues(tt.result)) - before; got != 1 {
				t.Errorf("%s delta = %v, want 1", tt.result, got)
			}
		})
	}

	RecordWarmerRun(time.Millisecond, 17, nil)
	if got := testutil.ToFloat64(CatalogTracks); got != 17 {
		t.Errorf("catalog tracks = %v, want 17", got)
	}
	if testutil.ToFloat64(WarmerLastSuccess) == 0 {
		t.Error("last success timestamp not set")
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/trending", "200"))
	RecordAPIRequest("GET", "/api/v1/trending", "200", 5*time.Millisecond)

	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/trending", "200")) - before; got != 1 {
		t.Errorf("api requests delta = %v, want 1", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)

	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 1 {
		t.Errorf("active requests delta = %v, want 1", got)
	}
	TrackActiveRequest(false)
}

func TestRecordRateLimitHit(t *testing.T) {
	RecordRateLimitHit("/test/limited")
	if got := testutil.ToFloat64(APIRateLimitHits.WithLabelValues("/test/limited")); got != 1 {
		t.Errorf("rate limit hits = %v, want 1", got)
	}
}

func TestSetAppInfo(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	SetAppInfo("v0.0.0-test", start)

	if got := testutil.ToFloat64(AppStartTime); got != 1_700_000_000 {
		t.Errorf("start time = %v, want 1700000000", got)
	}
}
