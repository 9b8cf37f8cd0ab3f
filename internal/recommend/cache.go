// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package recommend

import (
	"time"

	"github.com/tomtom215/resonance/internal/models"
	"github.com/tomtom215/resonance/internal/recommend/algorithms"
)

// featureSnapshot is an immutable feature cache generation.
// It is published through an atomic pointer and never modified afterwards.
type featureSnapshot struct {
	features map[int64]TrackFeature
	builtAt  time.Time
}

// similaritySnapshot is an immutable similarity cache generation.
type similaritySnapshot struct {
	index   algorithms.SimilarityIndex
	builtAt time.Time
}

// fresh reports whether the snapshot exists, is non-empty and is younger than ttl.
func (s *featureSnapshot) fresh(now time.Time, ttl time.Duration) bool {
	return s != nil && len(s.features) > 0 && now.Before(s.builtAt.Add(ttl))
}

func (s *similaritySnapshot) fresh(now time.Time, ttl time.Duration) bool {
	return s != nil && len(s.index) > 0 && now.Before(s.builtAt.Add(ttl))
}

// feature returns the feature for id.
func (s *featureSnapshot) feature(id int64) (TrackFeature, bool) {
	if s == nil {
		return TrackFeature{}, false
	}
	f, ok := s.features[id]
	return f, ok
}

// buildFeatureSnapshot vectorizes "{title} {artist}" for every catalog track.
// When the catalog repeats an id, the first occurrence wins.
func buildFeatureSnapshot(catalog []models.Track, tokenizer algorithms.Tokenizer, now time.Time) *featureSnapshot {
	docs := make([]string, len(catalog))
	for i := range catalog {
		docs[i] = catalog[i].Document()
	}

	vectors := tokenizer.BuildVectors(docs)

	features := make(map[int64]TrackFeature, len(catalog))
	for i := range catalog {
		id := catalog[i].ID
		if _, exists := features[id]; exists {
			continue
		}
		features[id] = TrackFeature{
			TrackID:                  id,
			Vector:                   vectors[i],
			ArtistSimilarityBaseline: artistSimilarityBaseline,
		}
	}

	return &featureSnapshot{features: features, builtAt: now}
}

// buildSimilaritySnapshot builds the neighbor index over the catalog.
func buildSimilaritySnapshot(catalog, recentlyPlayed []models.Track, k int, now time.Time) *similaritySnapshot {
	return &similaritySnapshot{
		index:   algorithms.BuildSimilarityIndex(catalog, recentlyPlayed, k),
		builtAt: now,
	}
}
