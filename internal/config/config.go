// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package config

import (
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/resonance/internal/logging"
	"github.com/tomtom215/resonance/internal/recommend"
	"github.com/tomtom215/resonance/internal/validation"
)

// Config holds all application configuration.
type Config struct {
	Logging   LoggingConfig   `koanf:"logging" json:"logging"`
	Recommend RecommendConfig `koanf:"recommend" json:"recommend"`
	Catalog   CatalogConfig   `koanf:"catalog" json:"catalog"`
	Warmer    WarmerConfig    `koanf:"warmer" json:"warmer"`
	Server    ServerConfig    `koanf:"server" json:"server"`
	Metrics   MetricsConfig   `koanf:"metrics" json:"metrics"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error, disabled.
	// Default: info
	Level string `koanf:"level" json:"level" validate:"loglevel"`

	// Format is the output format: json or console.
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format" json:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller" json:"caller"`
}

// RecommendConfig holds the scoring and cache tuning of both engines.
type RecommendConfig struct {
	Weights         recommend.ScoringWeights `koanf:"weights" json:"weights"`
	TrendingWeights recommend.ScoringWeights `koanf:"trending_weights" json:"trending_weights"`

	// Default: 1h
	FeatureCacheTTL time.Duration `koanf:"feature_cache_ttl" json:"feature_cache_ttl" validate:"gt=0"`

	// Default: 2h
	SimilarityCacheTTL time.Duration `koanf:"similarity_cache_ttl" json:"similarity_cache_ttl" validate:"gt=0"`

	// RecencyDecay is the per-hour decay rate of recency scores.
	// Default: 0.1
	RecencyDecay float64 `koanf:"recency_decay" json:"recency_decay" validate:"finite,gte=0"`

	// Default: 10
	NeighborCount int `koanf:"neighbor_count" json:"neighbor_count" validate:"min=1,max=1000"`

	// Default: 0.2
	ArtistBonus float64 `koanf:"artist_bonus" json:"artist_bonus" validate:"finite,gte=0,lte=1"`

	// DefaultTopN is used when a request does not ask for a size.
	// Default: 20
	DefaultTopN int `koanf:"default_top_n" json:"default_top_n" validate:"min=1,max=1000"`

	// Default: 50
	TrendingPoolSize int `koanf:"trending_pool_size" json:"trending_pool_size" validate:"min=1"`

	// Stemming enables English stemming of track text.
	// Default: false
	Stemming bool `koanf:"stemming" json:"stemming"`
}

// CatalogConfig points at the catalog document served by the API and the warmer.
type CatalogConfig struct {
	// Path is a .json, .yaml or .yml catalog file. Empty disables the API
	// recommendation routes and the warmer.
	Path string `koanf:"path" json:"path"`
}

// WarmerConfig controls the background cache warmer.
type WarmerConfig struct {
	// Enabled runs the warmer when a catalog path is configured.
	// Default: true
	Enabled bool `koanf:"enabled" json:"enabled"`

	// Interval between warm runs. Keep it below the feature cache TTL so
	// requests never see a stale cache.
	// Default: 30m
	Interval time.Duration `koanf:"interval" json:"interval" validate:"gt=0"`

	// Timeout bounds a single run.
	// Default: 2m
	Timeout time.Duration `koanf:"timeout" json:"timeout" validate:"gt=0"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	// Default: 0.0.0.0:3858
	Listen string `koanf:"listen" json:"listen" validate:"hostname_port"`

	// Default: 15s
	ReadTimeout time.Duration `koanf:"read_timeout" json:"read_timeout" validate:"gt=0"`

	// Default: 30s
	WriteTimeout time.Duration `koanf:"write_timeout" json:"write_timeout" validate:"gt=0"`

	// Default: 10s
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" json:"shutdown_timeout" validate:"gt=0"`

	// CORSOrigins lists allowed origins. "*" allows any.
	// Default: ["*"]
	CORSOrigins []string `koanf:"cors_origins" json:"cors_origins"`

	// RateLimitRequests is the per-IP request budget per window.
	// Default: 100
	RateLimitRequests int `koanf:"rate_limit_requests" json:"rate_limit_requests" validate:"gte=0"`

	// Default: 1m
	RateLimitWindow time.Duration `koanf:"rate_limit_window" json:"rate_limit_window" validate:"gt=0"`

	// Default: false
	RateLimitDisabled bool `koanf:"rate_limit_disabled" json:"rate_limit_disabled"`

	// MaxTopN caps top_n on API requests.
	// Default: 100
	MaxTopN int `koanf:"max_top_n" json:"max_top_n" validate:"min=1"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// Default: true
	Enabled bool `koanf:"enabled" json:"enabled"`

	// Path is where the scrape endpoint is mounted on the API server.
	// Default: /metrics
	Path string `koanf:"path" json:"path" validate:"required,startswith=/"`
}

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	if c.Recommend.DefaultTopN > c.Server.MaxTopN {
		return fmt.Errorf("recommend.default_top_n (%d) exceeds server.max_top_n (%d)",
			c.Recommend.DefaultTopN, c.Server.MaxTopN)
	}

	if c.Warmer.Enabled && c.Warmer.Timeout > c.Warmer.Interval {
		return fmt.Errorf("warmer.timeout (%v) must not exceed warmer.interval (%v)",
			c.Warmer.Timeout, c.Warmer.Interval)
	}

	if c.Catalog.Path != "" {
		if _, err := os.Stat(c.Catalog.Path); err != nil {
			return fmt.Errorf("catalog.path: %w", err)
		}
	}

	return nil
}

// EngineConfig converts the recommend section to the engine configuration.
func (c *Config) EngineConfig() *recommend.Config {
	r := c.Recommend
	return &recommend.Config{
		Weights:            r.Weights,
		TrendingWeights:    r.TrendingWeights,
		FeatureCacheTTL:    r.FeatureCacheTTL,
		SimilarityCacheTTL: r.SimilarityCacheTTL,
		RecencyDecay:       r.RecencyDecay,
		NeighborCount:      r.NeighborCount,
		ArtistBonus:        r.ArtistBonus,
		DefaultTopN:        r.DefaultTopN,
		TrendingPoolSize:   r.TrendingPoolSize,
		Stemming:           r.Stemming,
	}
}

// LoggingConfig converts the logging section for logging.Init.
func (c *Config) LoggingConfig() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.Logging.Level
	lc.Format = c.Logging.Format
	lc.Caller = c.Logging.Caller
	return lc
}

// MarshalJSON renders durations as strings.
func (c *Config) MarshalJSON() ([]byte, error) {
	type recommendJSON struct {
		RecommendConfig
		FeatureCacheTTL    string `json:"feature_cache_ttl"`
		SimilarityCacheTTL string `json:"similarity_cache_ttl"`
	}
	type warmerJSON struct {
		WarmerConfig
		Interval string `json:"interval"`
		Timeout  string `json:"timeout"`
	}
	type serverJSON struct {
		ServerConfig
		ReadTimeout     string `json:"read_timeout"`
		WriteTimeout    string `json:"write_timeout"`
		ShutdownTimeout string `json:"shutdown_timeout"`
		RateLimitWindow string `json:"rate_limit_window"`
	}

	return json.Marshal(&struct {
		Logging   LoggingConfig `json:"logging"`
		Recommend recommendJSON `json:"recommend"`
		Catalog   CatalogConfig `json:"catalog"`
		Warmer    warmerJSON    `json:"warmer"`
		Server    serverJSON    `json:"server"`
		Metrics   MetricsConfig `json:"metrics"`
	}{
		Logging: c.Logging,
		Recommend: recommendJSON{
			RecommendConfig:    c.Recommend,
			FeatureCacheTTL:    c.Recommend.FeatureCacheTTL.String(),
			SimilarityCacheTTL: c.Recommend.SimilarityCacheTTL.String(),
		},
		Catalog: c.Catalog,
		Warmer: warmerJSON{
			WarmerConfig: c.Warmer,
			Interval:     c.Warmer.Interval.String(),
			Timeout:      c.Warmer.Timeout.String(),
		},
		Server: serverJSON{
			ServerConfig:    c.Server,
			ReadTimeout:     c.Server.ReadTimeout.String(),
			WriteTimeout:    c.Server.WriteTimeout.String(),
			ShutdownTimeout: c.Server.ShutdownTimeout.String(),
			RateLimitWindow: c.Server.RateLimitWindow.String(),
		},
		Metrics: c.Metrics,
	})
}
