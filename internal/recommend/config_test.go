// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package recommend

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if got := cfg.Weights.Sum(); math.Abs(got-1) > epsilon {
		t.Errorf("default weights sum = %f, want 1", got)
	}
	if got := cfg.TrendingWeights.Sum(); math.Abs(got-1) > epsilon {
		t.Errorf("trending weights sum = %f, want 1", got)
	}
	if cfg.FeatureCacheTTL != time.Hour {
		t.Errorf("FeatureCacheTTL = %v, want 1h", cfg.FeatureCacheTTL)
	}
	if cfg.SimilarityCacheTTL != 2*time.Hour {
		t.Errorf("SimilarityCacheTTL = %v, want 2h", cfg.SimilarityCacheTTL)
	}
	if cfg.TrendingWeights.Popularity <= cfg.Weights.Popularity {
		t.Error("trending profile should favor popularity")
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero weights allowed", func(c *Config) { c.Weights = ScoringWeights{} }, ""},
		{"negative weight", func(c *Config) { c.Weights.Content = -0.1 }, "content weight"},
		{"NaN trending weight", func(c *Config) { c.TrendingWeights.Recency = math.NaN() }, "trending_weights"},
		{"infinite weight", func(c *Config) { c.Weights.Popularity = math.Inf(1) }, "finite"},
		{"zero feature ttl", func(c *Config) { c.FeatureCacheTTL = 0 }, "feature_cache_ttl"},
		{"negative similarity ttl", func(c *Config) { c.SimilarityCacheTTL = -time.Second }, "similarity_cache_ttl"},
		{"negative decay", func(c *Config) { c.RecencyDecay = -1 }, "recency_decay"},
		{"zero decay allowed", func(c *Config) { c.RecencyDecay = 0 }, ""},
		{"zero neighbors", func(c *Config) { c.NeighborCount = 0 }, "neighbor_count"},
		{"artist bonus above one", func(c *Config) { c.ArtistBonus = 1.5 }, "artist_bonus"},
		{"zero top n", func(c *Config) { c.DefaultTopN = 0 }, "default_top_n"},
		{"zero trending pool", func(c *Config) { c.TrendingPoolSize = 0 }, "trending_pool_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Weights.Popularity = 0.9
	clone.NeighborCount = 3

	if cfg.Weights.Popularity != 0.25 || cfg.NeighborCount != 10 {
		t.Error("Clone() shares state with the original")
	}
}

func TestConfig_MarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded["feature_cache_ttl"] != "1h0m0s" {
		t.Errorf("feature_cache_ttl = %v, want 1h0m0s", decoded["feature_cache_ttl"])
	}
	if decoded["similarity_cache_ttl"] != "2h0m0s" {
		t.Errorf("similarity_cache_ttl = %v, want 2h0m0s", decoded["similarity_cache_ttl"])
	}
	weights, ok := decoded["weights"].(map[string]any)
	if !ok {
		t.Fatalf("weights = %T, want object", decoded["weights"])
	}
	if weights["collaborative"] != 0.25 {
		t.Errorf("weights.collaborative = %v, want 0.25", weights["collaborative"])
	}
}

func TestScoringWeights_ToMap(t *testing.T) {
	t.Parallel()

	m := TrendingScoringWeights().ToMap()
	want := map[string]float64{"popularity": 0.5, "recency": 0.4, "content": 0.05, "collaborative": 0.05}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("ToMap()[%q] = %f, want %f", k, m[k], v)
		}
	}
	if len(m) != len(want) {
		t.Errorf("ToMap() has %d keys, want %d", len(m), len(want))
	}
}
