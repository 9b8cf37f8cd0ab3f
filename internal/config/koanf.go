// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/resonance/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/resonance/config.yaml",
	"/etc/resonance/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "RESONANCE_CONFIG"

// envPrefix is stripped before environment variables are mapped.
const envPrefix = "RESONANCE_"

// defaultConfig returns a Config with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	engine := recommend.DefaultConfig()

	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: RecommendConfig{
			Weights:            engine.Weights,
			TrendingWeights:    engine.TrendingWeights,
			FeatureCacheTTL:    engine.FeatureCacheTTL,
			SimilarityCacheTTL: engine.SimilarityCacheTTL,
			RecencyDecay:       engine.RecencyDecay,
			NeighborCount:      engine.NeighborCount,
			ArtistBonus:        engine.ArtistBonus,
			DefaultTopN:        engine.DefaultTopN,
			TrendingPoolSize:   engine.TrendingPoolSize,
			Stemming:           engine.Stemming,
		},
		Catalog: CatalogConfig{
			Path: "",
		},
		Warmer: WarmerConfig{
			Enabled:  true,
			Interval: 30 * time.Minute,
			Timeout:  2 * time.Minute,
		},
		Server: ServerConfig{
			Listen:            "0.0.0.0:3858",
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			MaxTopN:           100,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Default returns the built-in configuration without reading files or the environment.
func Default() *Config {
	return defaultConfig()
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Defaults: built-in values
//  2. Config File: optional YAML file
//  3. Environment Variables: RESONANCE_* overrides
//
// Precedence is ENV > File > Defaults.
func LoadWithKoanf() (*Config, error) {
	return load(findConfigFile())
}

// LoadFile loads configuration from an explicit YAML file plus the environment.
// An empty path behaves like LoadWithKoanf.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return LoadWithKoanf()
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	return load(path)
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment
	// RESONANCE_RECENCY_DECAY -> recommend.recency_decay
	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed from comma-separated strings.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices.
// Environment variables arrive as strings; YAML lists are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps RESONANCE_* names, prefix stripped and lowercased, to koanf paths.
var envMappings = map[string]string{
	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Scoring weights
	"weight_popularity":             "recommend.weights.popularity",
	"weight_recency":                "recommend.weights.recency",
	"weight_content":                "recommend.weights.content",
	"weight_collaborative":          "recommend.weights.collaborative",
	"trending_weight_popularity":    "recommend.trending_weights.popularity",
	"trending_weight_recency":       "recommend.trending_weights.recency",
	"trending_weight_content":       "recommend.trending_weights.content",
	"trending_weight_collaborative": "recommend.trending_weights.collaborative",

	// Engine tuning
	"feature_cache_ttl":    "recommend.feature_cache_ttl",
	"similarity_cache_ttl": "recommend.similarity_cache_ttl",
	"recency_decay":        "recommend.recency_decay",
	"neighbor_count":       "recommend.neighbor_count",
	"artist_bonus":         "recommend.artist_bonus",
	"default_top_n":        "recommend.default_top_n",
	"trending_pool_size":   "recommend.trending_pool_size",
	"stemming":             "recommend.stemming",

	// Catalog and warmer
	"catalog_path":   "catalog.path",
	"warmer_enabled": "warmer.enabled",
	"warm_interval":  "warmer.interval",
	"warm_timeout":   "warmer.timeout",

	// HTTP server
	"http_listen":           "server.listen",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"cors_origins":          "server.cors_origins",
	"rate_limit_requests":   "server.rate_limit_requests",
	"rate_limit_window":     "server.rate_limit_window",
	"disable_rate_limit":    "server.rate_limit_disabled",
	"max_top_n":             "server.max_top_n",

	// Metrics
	"metrics_enabled": "metrics.enabled",
	"metrics_path":    "metrics.path",
}

// envTransformFunc maps an environment variable name to a koanf path.
// Unknown variables return "" and are skipped.
//
// Examples:
//   - RESONANCE_LOG_LEVEL -> logging.level
//   - RESONANCE_RECENCY_DECAY -> recommend.recency_decay
//   - RESONANCE_HTTP_LISTEN -> server.listen
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	return envMappings[key]
}
