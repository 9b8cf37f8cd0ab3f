// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/resonance/internal/models"
)

// Engine names used for logging, stats and metrics.
const (
	EngineDefault  = "default"
	EngineTrending = "trending"
)

// Recommender exposes personalized and trending rankings.
//
// Trending mode is a second Engine configured with the trending weights.
// It keeps its own caches because it ranks a different catalog: the
// most-played slice of the caller's catalog.
type Recommender struct {
	config   *Config
	standard *Engine
	trending *Engine
	logger   zerolog.Logger
}

// NewRecommender creates the default and trending engines from one configuration.
// Options apply to both engines; engine names are fixed.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRecommender(cfg *Config, logger zerolog.Logger, opts ...Option) (*Recommender, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	standard, err := NewEngine(cfg, logger, namedOptions(opts, EngineDefault)...)
	if err != nil {
		return nil, fmt.Errorf("create default engine: %w", err)
	}

	trendingCfg := cfg.Clone()
	trendingCfg.Weights = cfg.TrendingWeights
	trending, err := NewEngine(trendingCfg, logger, namedOptions(opts, EngineTrending)...)
	if err != nil {
		return nil, fmt.Errorf("create trending engine: %w", err)
	}

	return &Recommender{
		config:   cfg.Clone(),
		standard: standard,
		trending: trending,
		logger:   logger.With().Str("component", "recommender").Logger(),
	}, nil
}

// namedOptions copies opts and appends the engine name last so it wins.
func namedOptions(opts []Option, name string) []Option {
	named := make([]Option, 0, len(opts)+1)
	named = append(named, opts...)
	return append(named, WithName(name))
}

// GetRecommendations ranks the catalog with the default weights.
func (r *Recommender) GetRecommendations(ctx context.Context, catalog, recentlyPlayed []models.Track, current models.TrackRef, topN int) []RecommendationScore {
	return r.standard.GetRecommendations(ctx, catalog, recentlyPlayed, current, topN)
}

// GetTrendingSongs ranks the most-played tracks with the trending weights.
// Only the TrendingPoolSize most-played tracks with at least one play are scored.
func (r *Recommender) GetTrendingSongs(ctx context.Context, catalog, recentlyPlayed []models.Track, topN int) []RecommendationScore {
	pool := TopPlayed(catalog, r.config.TrendingPoolSize)
	return r.trending.GetRecommendations(ctx, pool, recentlyPlayed, models.NoTrack(), topN)
}

// ClearCache drops the caches of both engines.
func (r *Recommender) ClearCache() {
	r.standard.ClearCache()
	r.trending.ClearCache()
}

// Warm refreshes stale caches of both engines concurrently.
func (r *Recommender) Warm(ctx context.Context, catalog, recentlyPlayed []models.Track) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.standard.Warm(gctx, catalog, recentlyPlayed)
	})
	g.Go(func() error {
		return r.trending.Warm(gctx, TopPlayed(catalog, r.config.TrendingPoolSize), recentlyPlayed)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("warm caches: %w", err)
	}

	r.logger.Debug().
		Int("catalog_size", len(catalog)).
		Msg("recommendation caches warm")

	return nil
}

// Stats returns counters for both engines.
func (r *Recommender) Stats() []Stats {
	return []Stats{r.standard.Stats(), r.trending.Stats()}
}

// Config returns a copy of the configuration.
func (r *Recommender) Config() *Config {
	return r.config.Clone()
}

// TopPlayed returns up to n tracks with the highest play counts, most played
// first. Unplayed tracks are excluded and equal counts keep catalog order.
func TopPlayed(catalog []models.Track, n int) []models.Track {
	if n <= 0 {
		return []models.Track{}
	}

	played := make([]models.Track, 0, len(catalog))
	for i := range catalog {
		if catalog[i].PlayCount > 0 {
			played = append(played, catalog[i])
		}
	}

	sort.SliceStable(played, func(i, j int) bool {
		return played[i].PlayCount > played[j].PlayCount
	})

	if len(played) > n {
		played = played[:n:n]
	}
	return played
}
