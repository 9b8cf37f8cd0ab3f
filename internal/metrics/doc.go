// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

/*
Package metrics provides Prometheus instrumentation for Resonance.

Collectors are registered on the default registry with promauto and exposed
by the serve command at /metrics.

# Available Metrics

Recommendation Metrics (label: engine = "default" | "trending"):
  - resonance_recommend_requests_total: scored requests (counter)
  - resonance_recommend_request_duration_seconds: scoring latency (histogram)
  - resonance_recommend_catalog_tracks: catalog size of the last request (gauge)
  - resonance_recommend_results: scores returned per request (histogram)

Cache Metrics (labels: engine, cache = "features" | "similarity"):
  - resonance_cache_rebuilds_total: snapshot rebuilds (counter)
  - resonance_cache_rebuild_duration_seconds: rebuild latency (histogram)
  - resonance_cache_entries: entries in the current snapshot (gauge)
  - resonance_cache_clears_total: explicit clears, engine label only (counter)

Warmer Metrics:
  - resonance_warmer_runs_total: runs by result (counter)
  - resonance_warmer_duration_seconds: run latency (histogram)
  - resonance_warmer_last_success_timestamp (gauge)
  - resonance_catalog_tracks: tracks in the last loaded catalog (gauge)

API Metrics:
  - resonance_api_requests_total: labels method, endpoint, status_code
  - resonance_api_request_duration_seconds: labels method, endpoint
  - resonance_api_active_requests (gauge)
  - resonance_api_rate_limit_hits_total: label endpoint

# Engine Integration

RecommendObserver implements recommend.Observer:

	rec, err := recommend.NewRecommender(cfg, logger,
	    recommend.WithObserver(metrics.NewRecommendObserver()))

The endpoint label on API metrics is the chi route pattern, never the raw
path, so cardinality stays bounded.
*/
package metrics
