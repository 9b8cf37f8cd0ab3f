// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package recommend

import (
	"math"
	"sort"
	"time"

	"github.com/tomtom215/resonance/internal/models"
	"github.com/tomtom215/resonance/internal/recommend/algorithms"
)

// Collaborative fallback tiers used when the neighbor index has nothing to say.
const (
	recentlyPlayedFallback = 0.8
	sameArtistFallback     = 0.5
)

// listeningHistory indexes the recently played tracks for one request.
type listeningHistory struct {
	ids     []int64
	played  map[int64]struct{}
	artists map[int64]struct{}
}

func newListeningHistory(recentlyPlayed []models.Track) listeningHistory {
	h := listeningHistory{
		ids:     make([]int64, 0, len(recentlyPlayed)),
		played:  make(map[int64]struct{}, len(recentlyPlayed)),
		artists: make(map[int64]struct{}, len(recentlyPlayed)),
	}
	for i := range recentlyPlayed {
		t := &recentlyPlayed[i]
		h.ids = append(h.ids, t.ID)
		h.played[t.ID] = struct{}{}
		if t.HasKnownArtist() {
			h.artists[t.ArtistID] = struct{}{}
		}
	}
	return h
}

func (h listeningHistory) contains(id int64) bool {
	_, ok := h.played[id]
	return ok
}

func (h listeningHistory) hasArtist(artistID int64) bool {
	if artistID == models.UnknownArtistID {
		return false
	}
	_, ok := h.artists[artistID]
	return ok
}

// scorer computes component scores against one pair of cache snapshots.
type scorer struct {
	weights      ScoringWeights
	decay        float64
	artistBonus  float64
	now          time.Time
	maxPlayCount int64
	current      models.TrackRef
	history      listeningHistory
	features     *featureSnapshot
	similarity   *similaritySnapshot
}

// score computes the full breakdown for one track.
//
//nolint:gocritic // Track is read-only here
func (s *scorer) score(track models.Track) RecommendationScore {
	popularity := popularityScore(track.PlayCount, s.maxPlayCount)
	recency := recencyScore(track, s.now, s.decay)
	content := s.contentScore(track.ID)
	collaborative := s.collaborativeScore(track)

	composite := s.weights.Popularity*popularity +
		s.weights.Recency*recency +
		s.weights.Content*content +
		s.weights.Collaborative*collaborative

	return RecommendationScore{
		TrackID:            track.ID,
		CompositeScore:     composite,
		PopularityScore:    popularity,
		RecencyScore:       recency,
		ContentScore:       content,
		CollaborativeScore: collaborative,
	}
}

// contentScore compares the candidate to the current track.
// A missing current track, a self comparison or a feature cache miss scores 0.
func (s *scorer) contentScore(candidateID int64) float64 {
	currentID, ok := s.current.Get()
	if !ok || currentID == candidateID {
		return 0
	}

	candidate, ok := s.features.feature(candidateID)
	if !ok {
		return 0
	}
	current, ok := s.features.feature(currentID)
	if !ok {
		return 0
	}

	sim := algorithms.CosineSimilarity(candidate.Vector, current.Vector)
	if candidate.ArtistSimilarityBaseline > 0 {
		sim += s.artistBonus
	}
	return math.Min(1, sim)
}

// collaborativeScore uses the neighbor index first and falls back to
// history heuristics when the index yields nothing.
//
//nolint:gocritic // Track is read-only here
func (s *scorer) collaborativeScore(track models.Track) float64 {
	var index algorithms.SimilarityIndex
	if s.similarity != nil {
		index = s.similarity.index
	}

	if score := algorithms.CollaborativeScore(track.ID, s.history.ids, index); score > 0 {
		return score
	}

	switch {
	case s.history.contains(track.ID):
		return recentlyPlayedFallback
	case s.history.hasArtist(track.ArtistID):
		return sameArtistFallback
	default:
		return 0
	}
}

// popularityScore is playCount relative to the catalog maximum.
func popularityScore(playCount, maxPlayCount int64) float64 {
	if maxPlayCount <= 0 || playCount <= 0 {
		return 0
	}
	return math.Min(1, float64(playCount)/float64(maxPlayCount))
}

// recencyScore decays exponentially with hours since the last play.
// Never-played tracks score 0. Plays in the future count as just played.
//
//nolint:gocritic // Track is read-only here
func recencyScore(track models.Track, now time.Time, decay float64) float64 {
	last, ok := track.LastPlayed()
	if !ok {
		return 0
	}
	ageHours := now.Sub(last).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	return math.Exp(-decay * ageHours)
}

// maxPlayCount returns the largest play count in the catalog.
func maxPlayCount(catalog []models.Track) int64 {
	var maxCount int64
	for i := range catalog {
		if catalog[i].PlayCount > maxCount {
			maxCount = catalog[i].PlayCount
		}
	}
	return maxCount
}

// rankScores sorts by composite score descending, keeping input order on
// ties, and truncates to topN.
func rankScores(scores []RecommendationScore, topN int) []RecommendationScore {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].CompositeScore > scores[j].CompositeScore
	})

	if topN < len(scores) {
		scores = scores[:topN:topN]
	}
	return scores
}
