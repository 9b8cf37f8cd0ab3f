// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

/*
Package config loads Resonance configuration.

Configuration is layered with koanf:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $RESONANCE_CONFIG, then config.yaml, config.yml,
    /etc/resonance/config.yaml and /etc/resonance/config.yml
 3. RESONANCE_* environment variables

Later layers win. The result is validated with struct tags through
internal/validation, then by recommend.Config.Validate and a few cross-field
rules.

# File Layout

	logging:
	  level: info
	  format: json
	recommend:
	  weights:
	    popularity: 0.25
	    recency: 0.25
	    content: 0.25
	    collaborative: 0.25
	  feature_cache_ttl: 1h
	  similarity_cache_ttl: 2h
	  recency_decay: 0.1
	  neighbor_count: 10
	catalog:
	  path: /data/catalog.json
	warmer:
	  enabled: true
	  interval: 30m
	server:
	  listen: 0.0.0.0:3858
	  cors_origins: ["*"]
	metrics:
	  enabled: true
	  path: /metrics

# Environment Variables

Each variable maps to one key, for example:

  - RESONANCE_LOG_LEVEL: logging.level
  - RESONANCE_RECENCY_DECAY: recommend.recency_decay
  - RESONANCE_WEIGHT_CONTENT: recommend.weights.content
  - RESONANCE_CATALOG_PATH: catalog.path
  - RESONANCE_HTTP_LISTEN: server.listen
  - RESONANCE_CORS_ORIGINS: server.cors_origins (comma-separated)

Durations accept Go syntax ("90m", "2h"). Unknown RESONANCE_* variables are ignored.

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    return err
	}
	logging.Init(cfg.LoggingConfig())
	rec, err := recommend.NewRecommender(cfg.EngineConfig(), logging.Logger())

The returned Config is not modified afterwards and may be shared between goroutines.
*/
package config
