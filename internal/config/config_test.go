// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/resonance/internal/recommend"
)

func TestConfig_ValidateDefaults(t *testing.T) {
	t.Parallel()

	if err := defaultConfig().Validate(); err != nil {
		t.Fatalf("defaultConfig().Validate() error = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"negative decay", func(c *Config) { c.Recommend.RecencyDecay = -0.5 }, "recommend.recency_decay"},
		{"NaN decay", func(c *Config) { c.Recommend.RecencyDecay = math.NaN() }, "recommend.recency_decay"},
		{"zero feature ttl", func(c *Config) { c.Recommend.FeatureCacheTTL = 0 }, "recommend.feature_cache_ttl"},
		{"zero neighbors", func(c *Config) { c.Recommend.NeighborCount = 0 }, "recommend.neighbor_count"},
		{"artist bonus above one", func(c *Config) { c.Recommend.ArtistBonus = 2 }, "recommend.artist_bonus"},
		{"negative weight", func(c *Config) { c.Recommend.Weights.Content = -1 }, "content weight"},
		{"infinite trending weight", func(c *Config) { c.Recommend.TrendingWeights.Recency = math.Inf(1) }, "trending_weights"},
		{"bad listen address", func(c *Config) { c.Server.Listen = "nowhere" }, "server.listen"},
		{"zero warmer interval", func(c *Config) { c.Warmer.Interval = 0 }, "warmer.interval"},
		{"warmer timeout above interval", func(c *Config) { c.Warmer.Timeout = time.Hour }, "warmer.timeout"},
		{"top n above api cap", func(c *Config) { c.Server.MaxTopN = 5 }, "server.max_top_n"},
		{"relative metrics path", func(c *Config) { c.Metrics.Path = "metrics" }, "metrics.path"},
		{"missing catalog", func(c *Config) { c.Catalog.Path = "/does/not/exist.json" }, "catalog.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateWarmerTimeoutIgnoredWhenDisabled(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Warmer.Enabled = false
	cfg.Warmer.Timeout = time.Hour
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestConfig_EngineConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Recommend.RecencyDecay = 0.3
	cfg.Recommend.Stemming = true
	cfg.Recommend.Weights.Content = 0.7

	engine := cfg.EngineConfig()
	if engine.RecencyDecay != 0.3 || !engine.Stemming || engine.Weights.Content != 0.7 {
		t.Errorf("EngineConfig() = %+v, did not copy overrides", engine)
	}
	if engine.TrendingWeights != recommend.TrendingScoringWeights() {
		t.Errorf("TrendingWeights = %+v, want the trending profile", engine.TrendingWeights)
	}
	if err := engine.Validate(); err != nil {
		t.Errorf("EngineConfig().Validate() error = %v", err)
	}

	engine.NeighborCount = 1
	if cfg.Recommend.NeighborCount == 1 {
		t.Error("EngineConfig() shares state with Config")
	}
}

func TestConfig_LoggingConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Logging = LoggingConfig{Level: "debug", Format: "console", Caller: true}

	lc := cfg.LoggingConfig()
	if lc.Level != "debug" || lc.Format != "console" || !lc.Caller {
		t.Errorf("LoggingConfig() = %+v", lc)
	}
	if lc.Output == nil {
		t.Error("LoggingConfig().Output = nil, want the default writer")
	}
}

func TestConfig_MarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(defaultConfig())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded struct {
		Recommend struct {
			FeatureCacheTTL string  `json:"feature_cache_ttl"`
			RecencyDecay    float64 `json:"recency_decay"`
			Weights         struct {
				Popularity float64 `json:"popularity"`
			} `json:"weights"`
		} `json:"recommend"`
		Warmer struct {
			Interval string `json:"interval"`
		} `json:"warmer"`
		Server struct {
			Listen          string   `json:"listen"`
			RateLimitWindow string   `json:"rate_limit_window"`
			CORSOrigins     []string `json:"cors_origins"`
		} `json:"server"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v\n%s", err, data)
	}

	if decoded.Recommend.FeatureCacheTTL != "1h0m0s" {
		t.Errorf("feature_cache_ttl = %q, want 1h0m0s", decoded.Recommend.FeatureCacheTTL)
	}
	if decoded.Recommend.RecencyDecay != 0.1 {
		t.Errorf("recency_decay = %f, want 0.1", decoded.Recommend.RecencyDecay)
	}
	if decoded.Recommend.Weights.Popularity != 0.25 {
		t.Errorf("weights.popularity = %f, want 0.25", decoded.Recommend.Weights.Popularity)
	}
	if decoded.Warmer.Interval != "30m0s" {
		t.Errorf("warmer.interval = %q, want 30m0s", decoded.Warmer.Interval)
	}
	if decoded.Server.RateLimitWindow != "1m0s" {
		t.Errorf("server.rate_limit_window = %q, want 1m0s", decoded.Server.RateLimitWindow)
	}
	if decoded.Server.Listen != "0.0.0.0:3858" || len(decoded.Server.CORSOrigins) != 1 {
		t.Errorf("server = %+v", decoded.Server)
	}
}

// writeFile writes content under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
