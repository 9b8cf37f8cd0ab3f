// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package metrics

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resonance_recommend_requests_total",
			Help: "Total number of scored recommendation requests",
		},
		[]string{"engine"},
	)

	RecommendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resonance_recommend_request_duration_seconds",
			Help:    "Time to score and rank a catalog, including cache rebuilds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"engine"},
	)

	RecommendCatalogSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "resonance_recommend_catalog_tracks",
			Help: "Catalog size of the most recent request",
		},
		[]string{"engine"},
	)

	RecommendResultsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resonance_recommend_results",
			Help:    "Number of scores returned per request",
			Buckets: []float64{1, 5, 10, 20, 50, 100, 500},
		},
		[]string{"engine"},
	)

	// Cache Metrics
	CacheRebuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resonance_cache_rebuilds_total",
			Help: "Total number of cache snapshot rebuilds",
		},
		[]string{"engine", "cache"}, // cache: "features", "similarity"
	)

	CacheRebuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resonance_cache_rebuild_duration_seconds",
			Help:    "Duration of cache snapshot rebuilds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
		},
		[]string{"engine", "cache"},
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "resonance_cache_entries",
			Help: "Entries in the current cache snapshot",
		},
		[]string{"engine", "cache"},
	)

	CacheClearsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resonance_cache_clears_total",
			Help: "Total number of explicit cache clears",
		},
		[]string{"engine"},
	)

	// Warmer Metrics
	WarmerRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resonance_warmer_runs_total",
			Help: "Total number of cache warmer runs",
		},
		[]string{"result"}, // "success", "error", "canceled"
	)

	WarmerDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resonance_warmer_duration_seconds",
			Help:    "Duration of cache warmer runs, including catalog loading",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120, 600},
		},
	)

	WarmerLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "resonance_warmer_last_success_timestamp",
			Help: "Unix timestamp of the last successful warmer run",
		},
	)

	CatalogTracks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "resonance_catalog_tracks",
			Help: "Tracks in the most recently loaded catalog",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resonance_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resonance_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "resonance_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resonance_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "resonance_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppStartTime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "resonance_app_start_time_seconds",
			Help: "Unix timestamp of process start",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a rejected request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordWarmerRun records one warmer cycle.
func RecordWarmerRun(duration time.Duration, tracks int, err error) {
	WarmerDuration.Observe(duration.Seconds())

	switch {
	case err == nil:
		WarmerRunsTotal.WithLabelValues("success").Inc()
		WarmerLastSuccess.Set(float64(time.Now().Unix()))
		CatalogTracks.Set(float64(tracks))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		WarmerRunsTotal.WithLabelValues("canceled").Inc()
	default:
		WarmerRunsTotal.WithLabelValues("error").Inc()
	}
}

// SetAppInfo publishes the build version and process start time.
func SetAppInfo(version string, start time.Time) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
	AppStartTime.Set(float64(start.Unix()))
}

// RecommendObserver feeds engine events into the recommendation metrics.
// It satisfies recommend.Observer.
type RecommendObserver struct{}

// NewRecommendObserver returns an observer backed by the package collectors.
func NewRecommendObserver() *RecommendObserver {
	return &RecommendObserver{}
}

// ObserveRequest records one scored request.
func (*RecommendObserver) ObserveRequest(engine string, duration time.Duration, catalogSize, results int) {
	RecommendRequestsTotal.WithLabelValues(engine).Inc()
	RecommendRequestDuration.WithLabelValues(engine).Observe(duration.Seconds())
	RecommendCatalogSize.WithLabelValues(engine).Set(float64(catalogSize))
	RecommendResultsReturned.WithLabelValues(engine).Observe(float64(results))
}

// ObserveRebuild records a cache snapshot rebuild.
func (*RecommendObserver) ObserveRebuild(engine, cache string, duration time.Duration, entries int) {
	CacheRebuildsTotal.WithLabelValues(engine, cache).Inc()
	CacheRebuildDuration.WithLabelValues(engine, cache).Observe(duration.Seconds())
	CacheEntries.WithLabelValues(engine, cache).Set(float64(entries))
}

// ObserveClear records an explicit cache clear.
func (*RecommendObserver) ObserveClear(engine string) {
	CacheClearsTotal.WithLabelValues(engine).Inc()
	CacheEntries.WithLabelValues(engine, "features").Set(0)
	CacheEntries.WithLabelValues(engine, "similarity").Set(0)
}
