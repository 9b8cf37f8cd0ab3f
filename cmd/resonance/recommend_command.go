// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/resonance/internal/api"
	"github.com/tomtom215/resonance/internal/catalog"
	"github.com/tomtom215/resonance/internal/config"
	"github.com/tomtom215/resonance/internal/logging"
	"github.com/tomtom215/resonance/internal/models"
	"github.com/tomtom215/resonance/internal/recommend"
)

var errNoCatalog = errors.New("no catalog configured; pass --catalog or set catalog.path")

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	var topN int
	var current int64

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank the catalog for the next track",
		Long: `Rank the catalog for the next track using popularity, recency, text
similarity to the current track and co-listening with recent plays.

The current track defaults to the catalog's current_track.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cat, rec, err := loadForScoring(cmd, cfg)
			if err != nil {
				return err
			}

			ref := cat.Current
			if cmd.Flags().Changed("current") {
				if !containsTrack(cat.Tracks, current) {
					return fmt.Errorf("track %d is not in the catalog", current)
				}
				ref = models.RefTo(current)
			}

			n := resolveTopN(cmd, topN, cfg)
			scores := rec.GetRecommendations(cmd.Context(), cat.Tracks, cat.RecentlyPlayed, ref, n)

			out := api.RecommendationsResponse{
				Engine:     recommend.EngineDefault,
				Scores:     scores,
				Unresolved: cat.Unresolved,
			}
			if id, ok := ref.Get(); ok {
				out.CurrentTrack = &id
			}
			return writeJSON(cmd, out)
		},
	}

	cmd.Flags().IntVarP(&topN, "top-n", "n", 0, "Number of results (default: recommend.default_top_n)")
	cmd.Flags().Int64Var(&current, "current", 0, "Current track id; overrides the catalog's current_track")
	return cmd
}

func newTrendingCommand(ctx *commandContext) *cobra.Command {
	var topN int

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Rank the most played tracks by popularity and recency",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cat, rec, err := loadForScoring(cmd, cfg)
			if err != nil {
				return err
			}

			n := resolveTopN(cmd, topN, cfg)
			scores := rec.GetTrendingSongs(cmd.Context(), cat.Tracks, cat.RecentlyPlayed, n)

			return writeJSON(cmd, api.RecommendationsResponse{
				Engine:     recommend.EngineTrending,
				Scores:     scores,
				Unresolved: cat.Unresolved,
			})
		},
	}

	cmd.Flags().IntVarP(&topN, "top-n", "n", 0, "Number of results (default: recommend.default_top_n)")
	return cmd
}

// loadForScoring reads the configured catalog and builds a recommender.
func loadForScoring(cmd *cobra.Command, cfg *config.Config) (*catalog.Catalog, *recommend.Recommender, error) {
	if cfg.Catalog.Path == "" {
		return nil, nil, errNoCatalog
	}

	cat, err := catalog.LoadFile(cmd.Context(), cfg.Catalog.Path)
	if err != nil {
		return nil, nil, err
	}
	if len(cat.Unresolved) > 0 {
		logging.Warn().
			Interface("track_ids", cat.Unresolved).
			Msg("recently played tracks missing from catalog")
	}

	rec, err := recommend.NewRecommender(cfg.EngineConfig(), logging.WithComponent("recommend"))
	if err != nil {
		return nil, nil, err
	}
	return cat, rec, nil
}

func resolveTopN(cmd *cobra.Command, flagValue int, cfg *config.Config) int {
	if cmd.Flags().Changed("top-n") {
		return flagValue
	}
	return cfg.Recommend.DefaultTopN
}

func containsTrack(tracks []models.Track, id int64) bool {
	for i := range tracks {
		if tracks[i].ID == id {
			return true
		}
	}
	return false
}
