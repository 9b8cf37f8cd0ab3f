// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package recommend

import (
	"time"

	"github.com/tomtom215/resonance/internal/recommend/algorithms"
)

// RecommendationScore is a scored track with its component breakdown.
type RecommendationScore struct {
	// TrackID identifies the recommended track.
	TrackID int64 `json:"track_id"`

	// CompositeScore is the weighted sum of the component scores.
	// It is not clamped and may exceed 1 when weights sum above 1.
	CompositeScore float64 `json:"composite_score"`

	// PopularityScore is play count relative to the catalog maximum, in [0, 1].
	PopularityScore float64 `json:"popularity_score"`

	// RecencyScore decays with time since last play, in [0, 1].
	RecencyScore float64 `json:"recency_score"`

	// ContentScore is text similarity to the current track, in [0, 1].
	ContentScore float64 `json:"content_score"`

	// CollaborativeScore is similarity to recent listening, in [0, 1].
	CollaborativeScore float64 `json:"collaborative_score"`
}

// TrackFeature holds the content features derived from a track.
type TrackFeature struct {
	TrackID int64                 `json:"track_id"`
	Vector  algorithms.TermVector `json:"vector"`

	// ArtistSimilarityBaseline is currently a constant 1.0 and acts as a
	// flag enabling the artist bonus.
	ArtistSimilarityBaseline float64 `json:"artist_similarity_baseline"`
}

// artistSimilarityBaseline is assigned to every feature.
const artistSimilarityBaseline = 1.0

// Stats contains engine counters and cache state.
type Stats struct {
	// Name identifies the engine instance ("default" or "trending").
	Name string `json:"name"`

	// RequestCount is the number of GetRecommendations calls.
	RequestCount int64 `json:"request_count"`

	// FeatureBuilds is the number of feature cache rebuilds.
	FeatureBuilds int64 `json:"feature_builds"`

	// SimilarityBuilds is the number of similarity cache rebuilds.
	SimilarityBuilds int64 `json:"similarity_builds"`

	// CacheClears is the number of ClearCache calls.
	CacheClears int64 `json:"cache_clears"`

	// FeatureEntries is the size of the current feature snapshot.
	FeatureEntries int `json:"feature_entries"`

	// SimilarityEntries is the size of the current similarity snapshot.
	SimilarityEntries int `json:"similarity_entries"`

	// FeatureBuiltAt is when the current feature snapshot was built.
	// Zero when the cache is empty.
	FeatureBuiltAt time.Time `json:"feature_built_at"`

	// SimilarityBuiltAt is when the current similarity snapshot was built.
	// Zero when the cache is empty.
	SimilarityBuiltAt time.Time `json:"similarity_built_at"`
}

// Observer receives engine events for metrics collection.
// Implementations must be safe for concurrent use.
type Observer interface {
	// ObserveRequest is called once per non-empty recommendation request.
	ObserveRequest(engine string, duration time.Duration, catalogSize, results int)

	// ObserveRebuild is called after a cache snapshot has been rebuilt.
	ObserveRebuild(engine, cache string, duration time.Duration, entries int)

	// ObserveClear is called when the caches are cleared.
	ObserveClear(engine string)
}

// Cache names reported to observers.
const (
	CacheFeatures   = "features"
	CacheSimilarity = "similarity"
)

type nopObserver struct{}

func (nopObserver) ObserveRequest(string, time.Duration, int, int)    {}
func (nopObserver) ObserveRebuild(string, string, time.Duration, int) {}
func (nopObserver) ObserveClear(string)                               {}
