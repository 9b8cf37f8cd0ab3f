// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/resonance/internal/catalog"
	"github.com/tomtom215/resonance/internal/metrics"
	"github.com/tomtom215/resonance/internal/models"
)

// CacheWarmer rebuilds engine caches ahead of requests.
// Satisfied by *recommend.Recommender.
type CacheWarmer interface {
	Warm(ctx context.Context, catalog, recentlyPlayed []models.Track) error
}

// WarmerServiceConfig holds configuration for the cache warmer.
type WarmerServiceConfig struct {
	// Interval between runs. Default: 30m
	Interval time.Duration

	// Timeout bounds one run, catalog load included. Default: 2m
	Timeout time.Duration

	// WarmOnStartup runs once before the first tick.
	WarmOnStartup bool
}

// WarmerService periodically loads the catalog and warms the engine caches
// so requests rarely pay for a feature or similarity rebuild.
type WarmerService struct {
	warmer CacheWarmer
	source catalog.Source
	config WarmerServiceConfig
	logger zerolog.Logger
	name   string
}

// NewWarmerService creates a warmer service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWarmerService(warmer CacheWarmer, source catalog.Source, cfg WarmerServiceConfig, logger zerolog.Logger) *WarmerService {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &WarmerService{
		warmer: warmer,
		source: source,
		config: cfg,
		logger: logger.With().Str("service", "cache-warmer").Logger(),
		name:   "cache-warmer",
	}
}

// Serve implements suture.Service. Failed runs are logged and retried on
// the next tick; they never stop the service.
func (s *WarmerService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("warm_on_startup", s.config.WarmOnStartup).
		Dur("interval", s.config.Interval).
		Msg("cache warmer starting")

	if s.config.WarmOnStartup {
		if err := s.runOnce(ctx); err != nil && ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("initial cache warm failed (will retry on schedule)")
		}
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("cache warmer shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.runOnce(ctx); err != nil && ctx.Err() == nil {
				s.logger.Warn().Err(err).Msg("scheduled cache warm failed")
			}
		}
	}
}

// runOnce loads the catalog and warms both engines.
func (s *WarmerService) runOnce(ctx context.Context) (err error) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	tracks := 0
	defer func() {
		metrics.RecordWarmerRun(time.Since(start), tracks, err)
	}()

	c, err := s.source.Load(runCtx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if c == nil {
		return errors.New("load catalog: source returned no catalog")
	}
	tracks = len(c.Tracks)

	if len(c.Unresolved) > 0 {
		s.logger.Warn().
			Int("count", len(c.Unresolved)).
			Interface("track_ids", c.Unresolved).
			Msg("recently played tracks missing from catalog")
	}

	if err := s.warmer.Warm(runCtx, c.Tracks, c.RecentlyPlayed); err != nil {
		return fmt.Errorf("warm caches: %w", err)
	}

	s.logger.Info().
		Int("tracks", tracks).
		Int("recently_played", len(c.RecentlyPlayed)).
		Dur("duration", time.Since(start)).
		Msg("cache warm complete")
	return nil
}

// String returns the service name for logging.
func (s *WarmerService) String() string {
	return s.name
}
