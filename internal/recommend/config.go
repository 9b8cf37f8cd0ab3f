// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package recommend

import (
	"fmt"
	"math"
	"time"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/resonance/internal/recommend/algorithms"
)

// Default tuning values.
const (
	DefaultFeatureCacheTTL    = time.Hour
	DefaultSimilarityCacheTTL = 2 * time.Hour

	// DefaultRecencyDecay is the per-hour decay rate. exp(-0.1 * h) halves
	// roughly every 6.9 hours.
	DefaultRecencyDecay = 0.1

	DefaultArtistBonus      = 0.2
	DefaultTopN             = 20
	DefaultTrendingPoolSize = 50
)

// ScoringWeights sets the contribution of each component score to the composite.
// Weights are used as given; they are not required to sum to 1.
type ScoringWeights struct {
	Popularity    float64 `json:"popularity" koanf:"popularity"`
	Recency       float64 `json:"recency" koanf:"recency"`
	Content       float64 `json:"content" koanf:"content"`
	Collaborative float64 `json:"collaborative" koanf:"collaborative"`
}

// DefaultScoringWeights returns the balanced profile.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Popularity:    0.25,
		Recency:       0.25,
		Content:       0.25,
		Collaborative: 0.25,
	}
}

// TrendingScoringWeights returns the profile used for trending lists.
func TrendingScoringWeights() ScoringWeights {
	return ScoringWeights{
		Popularity:    0.5,
		Recency:       0.4,
		Content:       0.05,
		Collaborative: 0.05,
	}
}

// Sum returns the total of all weights.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w ScoringWeights) Sum() float64 {
	return w.Popularity + w.Recency + w.Content + w.Collaborative
}

// Validate checks that every weight is finite and non-negative.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w ScoringWeights) Validate() error {
	for name, v := range w.ToMap() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s weight must be finite, got %f", name, v)
		}
		if v < 0 {
			return fmt.Errorf("%s weight must be non-negative, got %f", name, v)
		}
	}
	return nil
}

// ToMap returns the weights keyed by component name.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w ScoringWeights) ToMap() map[string]float64 {
	return map[string]float64{
		"popularity":    w.Popularity,
		"recency":       w.Recency,
		"content":       w.Content,
		"collaborative": w.Collaborative,
	}
}

// Config contains all configuration for a recommendation engine.
type Config struct {
	// Weights is the profile used by GetRecommendations.
	Weights ScoringWeights `json:"weights"`

	// TrendingWeights is the profile used by GetTrendingSongs.
	TrendingWeights ScoringWeights `json:"trending_weights"`

	// FeatureCacheTTL is how long term vectors stay valid.
	// Default: 1h
	FeatureCacheTTL time.Duration `json:"feature_cache_ttl"`

	// SimilarityCacheTTL is how long the neighbor index stays valid.
	// Default: 2h
	SimilarityCacheTTL time.Duration `json:"similarity_cache_ttl"`

	// RecencyDecay is the per-hour exponential decay rate for recency scores.
	// Default: 0.1
	RecencyDecay float64 `json:"recency_decay"`

	// NeighborCount caps each track's neighbor list.
	// Default: 10
	NeighborCount int `json:"neighbor_count"`

	// ArtistBonus is added to content similarity for tracks that carry an
	// artist similarity baseline.
	// Default: 0.2
	ArtistBonus float64 `json:"artist_bonus"`

	// DefaultTopN is the result size used when a caller does not choose one.
	// Default: 20
	DefaultTopN int `json:"default_top_n"`

	// TrendingPoolSize is how many of the most-played tracks trending mode scores.
	// Default: 50
	TrendingPoolSize int `json:"trending_pool_size"`

	// Stemming enables English stemming in the term-vector tokenizer.
	// Default: false
	Stemming bool `json:"stemming"`
}

// DefaultConfig returns a configuration with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights:            DefaultScoringWeights(),
		TrendingWeights:    TrendingScoringWeights(),
		FeatureCacheTTL:    DefaultFeatureCacheTTL,
		SimilarityCacheTTL: DefaultSimilarityCacheTTL,
		RecencyDecay:       DefaultRecencyDecay,
		NeighborCount:      algorithms.DefaultNeighborCount,
		ArtistBonus:        DefaultArtistBonus,
		DefaultTopN:        DefaultTopN,
		TrendingPoolSize:   DefaultTrendingPoolSize,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	if err := c.TrendingWeights.Validate(); err != nil {
		return fmt.Errorf("trending_weights: %w", err)
	}

	if c.FeatureCacheTTL <= 0 {
		return fmt.Errorf("feature_cache_ttl must be positive, got %v", c.FeatureCacheTTL)
	}
	if c.SimilarityCacheTTL <= 0 {
		return fmt.Errorf("similarity_cache_ttl must be positive, got %v", c.SimilarityCacheTTL)
	}

	if math.IsNaN(c.RecencyDecay) || math.IsInf(c.RecencyDecay, 0) || c.RecencyDecay < 0 {
		return fmt.Errorf("recency_decay must be finite and non-negative, got %f", c.RecencyDecay)
	}
	if c.NeighborCount < 1 {
		return fmt.Errorf("neighbor_count must be positive, got %d", c.NeighborCount)
	}
	if c.ArtistBonus < 0 || c.ArtistBonus > 1 {
		return fmt.Errorf("artist_bonus must be in [0, 1], got %f", c.ArtistBonus)
	}
	if c.DefaultTopN < 1 {
		return fmt.Errorf("default_top_n must be positive, got %d", c.DefaultTopN)
	}
	if c.TrendingPoolSize < 1 {
		return fmt.Errorf("trending_pool_size must be positive, got %d", c.TrendingPoolSize)
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	// All fields are value types
	clone := *c
	return &clone
}

// MarshalJSON renders durations as strings.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	return json.Marshal(&struct {
		*Alias
		FeatureCacheTTL    string `json:"feature_cache_ttl"`
		SimilarityCacheTTL string `json:"similarity_cache_ttl"`
	}{
		Alias:              (*Alias)(c),
		FeatureCacheTTL:    c.FeatureCacheTTL.String(),
		SimilarityCacheTTL: c.SimilarityCacheTTL.String(),
	})
}
