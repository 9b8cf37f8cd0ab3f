// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/resonance/internal/logging"
	"github.com/tomtom215/resonance/internal/models"
	"github.com/tomtom215/resonance/internal/recommend/algorithms"
)

// Engine ranks a catalog against a listener's history.
//
// Derived data lives in two caches, each an immutable snapshot behind an
// atomic pointer. Any number of requests read snapshots concurrently while
// a single writer, serialized by refreshMu, builds and publishes
// replacements. Readers never observe a partially built cache.
type Engine struct {
	// Configuration
	config    *Config
	name      string
	tokenizer algorithms.Tokenizer
	logger    zerolog.Logger
	now       func() time.Time
	observer  Observer

	// Cache snapshots
	features   atomic.Pointer[featureSnapshot]
	similarity atomic.Pointer[similaritySnapshot]
	refreshMu  sync.Mutex

	// Counters
	requestCount     atomic.Int64
	featureBuilds    atomic.Int64
	similarityBuilds atomic.Int64
	cacheClears      atomic.Int64
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock replaces time.Now. Tests use it to control cache expiry and recency.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithName labels the engine in logs, stats and metrics.
func WithName(name string) Option {
	return func(e *Engine) {
		if name != "" {
			e.name = name
		}
	}
}

// WithObserver registers an observer for request and cache events.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// NewEngine creates a new recommendation engine with empty caches.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config:    cfg.Clone(),
		name:      "default",
		tokenizer: algorithms.Tokenizer{Stem: cfg.Stemming},
		now:       time.Now,
		observer:  nopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logger.With().Str("component", "recommend").Str("engine", e.name).Logger()

	return e, nil
}

// Name returns the engine label.
func (e *Engine) Name() string {
	return e.name
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// GetRecommendations scores every catalog track and returns the topN best.
//
// Results are sorted by composite score, highest first, with catalog order
// kept for equal scores. An empty catalog or a non-positive topN yields an
// empty result without touching the caches. current may be unset.
func (e *Engine) GetRecommendations(ctx context.Context, catalog, recentlyPlayed []models.Track, current models.TrackRef, topN int) []RecommendationScore {
	if len(catalog) == 0 || topN <= 0 {
		return []RecommendationScore{}
	}

	start := e.now()
	e.requestCount.Add(1)
	logger := e.requestLogger(ctx)

	features, similarity := e.refresh(catalog, recentlyPlayed, start, logger)

	s := &scorer{
		weights:      e.config.Weights,
		decay:        e.config.RecencyDecay,
		artistBonus:  e.config.ArtistBonus,
		now:          start,
		maxPlayCount: maxPlayCount(catalog),
		current:      current,
		history:      newListeningHistory(recentlyPlayed),
		features:     features,
		similarity:   similarity,
	}

	scores := make([]RecommendationScore, len(catalog))
	for i := range catalog {
		scores[i] = s.score(catalog[i])
	}
	scores = rankScores(scores, topN)

	duration := e.now().Sub(start)
	e.observer.ObserveRequest(e.name, duration, len(catalog), len(scores))

	logger.Debug().
		Int("catalog_size", len(catalog)).
		Int("recently_played", len(recentlyPlayed)).
		Str("current_track", current.String()).
		Int("top_n", topN).
		Int("results", len(scores)).
		Dur("duration", duration).
		Msg("recommendations generated")

	return scores
}

// Warm refreshes any stale cache without scoring.
// It is a no-op for an empty catalog.
func (e *Engine) Warm(ctx context.Context, catalog, recentlyPlayed []models.Track) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(catalog) == 0 {
		return nil
	}
	e.refresh(catalog, recentlyPlayed, e.now(), e.requestLogger(ctx))
	return nil
}

// ClearCache drops both caches. The next request rebuilds them from its catalog.
// It waits for an in-flight rebuild so the cleared state is not overwritten.
func (e *Engine) ClearCache() {
	e.refreshMu.Lock()
	defer e.refreshMu.Unlock()

	e.features.Store(nil)
	e.similarity.Store(nil)
	e.cacheClears.Add(1)
	e.observer.ObserveClear(e.name)

	e.logger.Info().Msg("recommendation caches cleared")
}

// Stats returns a point-in-time view of counters and cache state.
func (e *Engine) Stats() Stats {
	st := Stats{
		Name:             e.name,
		RequestCount:     e.requestCount.Load(),
		FeatureBuilds:    e.featureBuilds.Load(),
		SimilarityBuilds: e.similarityBuilds.Load(),
		CacheClears:      e.cacheClears.Load(),
	}
	if f := e.features.Load(); f != nil {
		st.FeatureEntries = len(f.features)
		st.FeatureBuiltAt = f.builtAt
	}
	if s := e.similarity.Load(); s != nil {
		st.SimilarityEntries = len(s.index)
		st.SimilarityBuiltAt = s.builtAt
	}
	return st
}

// refresh returns fresh snapshots, rebuilding stale ones under refreshMu.
func (e *Engine) refresh(catalog, recentlyPlayed []models.Track, now time.Time, logger zerolog.Logger) (*featureSnapshot, *similaritySnapshot) {
	features := e.features.Load()
	similarity := e.similarity.Load()

	featuresFresh := features.fresh(now, e.config.FeatureCacheTTL)
	similarityFresh := similarity.fresh(now, e.config.SimilarityCacheTTL)
	if featuresFresh && similarityFresh {
		return features, similarity
	}

	e.refreshMu.Lock()
	defer e.refreshMu.Unlock()

	// Another writer may have published while we waited.
	features = e.features.Load()
	if !features.fresh(now, e.config.FeatureCacheTTL) {
		features = e.rebuildFeatures(catalog, now, logger)
	}

	similarity = e.similarity.Load()
	if !similarity.fresh(now, e.config.SimilarityCacheTTL) {
		similarity = e.rebuildSimilarity(catalog, recentlyPlayed, now, logger)
	}

	return features, similarity
}

func (e *Engine) rebuildFeatures(catalog []models.Track, now time.Time, logger zerolog.Logger) *featureSnapshot {
	start := time.Now()
	snap := buildFeatureSnapshot(catalog, e.tokenizer, now)
	e.features.Store(snap)
	e.featureBuilds.Add(1)

	duration := time.Since(start)
	e.observer.ObserveRebuild(e.name, CacheFeatures, duration, len(snap.features))
	logger.Debug().
		Int("entries", len(snap.features)).
		Dur("duration", duration).
		Msg("feature cache rebuilt")

	return snap
}

func (e *Engine) rebuildSimilarity(catalog, recentlyPlayed []models.Track, now time.Time, logger zerolog.Logger) *similaritySnapshot {
	start := time.Now()
	snap := buildSimilaritySnapshot(catalog, recentlyPlayed, e.config.NeighborCount, now)
	e.similarity.Store(snap)
	e.similarityBuilds.Add(1)

	duration := time.Since(start)
	e.observer.ObserveRebuild(e.name, CacheSimilarity, duration, len(snap.index))
	logger.Debug().
		Int("entries", len(snap.index)).
		Int("neighbor_count", e.config.NeighborCount).
		Dur("duration", duration).
		Msg("similarity cache rebuilt")

	return snap
}

// requestLogger attaches the caller's correlation id when present.
func (e *Engine) requestLogger(ctx context.Context) zerolog.Logger {
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		return e.logger.With().Str("correlation_id", id).Logger()
	}
	return e.logger
}
