// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package algorithms

import (
	"math"
	"sort"

	"github.com/tomtom215/resonance/internal/models"
)

// Pairwise similarity weights. Each signal is bounded to [0, 1] before weighting.
const (
	ArtistMatchWeight = 0.6
	CoPlayWeight      = 0.3
	PlayCountWeight   = 0.1

	// DefaultNeighborCount is the neighbor list cap used when k <= 0.
	DefaultNeighborCount = 10
)

// Neighbor is a single entry in a track's neighbor list.
type Neighbor struct {
	ID         int64   `json:"id"`
	Similarity float64 `json:"similarity"`
}

// SimilarityIndex maps a track id to its neighbors, most similar first.
// Every track of the catalog the index was built from has an entry,
// possibly empty.
type SimilarityIndex map[int64][]Neighbor

// Neighbors returns the neighbor list for id, or nil if id was not indexed.
func (idx SimilarityIndex) Neighbors(id int64) []Neighbor {
	return idx[id]
}

// Similarity returns the similarity of to within from's neighbor list.
func (idx SimilarityIndex) Similarity(from, to int64) (float64, bool) {
	for _, n := range idx[from] {
		if n.ID == to {
			return n.Similarity, true
		}
	}
	return 0, false
}

// Contains reports whether id was part of the indexed catalog.
func (idx SimilarityIndex) Contains(id int64) bool {
	_, ok := idx[id]
	return ok
}

// PlayCountSimilarity compares two play counts.
//
// Both positive: (c1*c2) / (sqrt(c1)*sqrt(c2)) bounded to 1.
// Both zero: 1. Exactly one zero: 0.
func PlayCountSimilarity(c1, c2 int64) float64 {
	switch {
	case c1 <= 0 && c2 <= 0:
		return 1
	case c1 <= 0 || c2 <= 0:
		return 0
	}
	a, b := float64(c1), float64(c2)
	return clamp01((a * b) / (math.Sqrt(a) * math.Sqrt(b)))
}

// TrackSimilarity returns the blended similarity of two distinct tracks in [0, 1].
// recent holds the ids of recently played tracks.
//
//nolint:gocritic // tracks are passed by value to keep the call site simple
func TrackSimilarity(a, b models.Track, recent map[int64]struct{}) float64 {
	var artist, coPlay float64

	if a.HasKnownArtist() && a.ArtistID == b.ArtistID {
		artist = 1
	}

	_, aRecent := recent[a.ID]
	_, bRecent := recent[b.ID]
	if aRecent && bRecent {
		coPlay = 1
	}

	plays := PlayCountSimilarity(a.PlayCount, b.PlayCount)

	return clamp01(ArtistMatchWeight*artist + CoPlayWeight*coPlay + PlayCountWeight*plays)
}

// BuildSimilarityIndex computes the k nearest neighbors of every catalog track.
//
// Self pairs and non-positive similarities are skipped. Ties keep catalog
// order. When the catalog repeats an id, the first occurrence is indexed.
func BuildSimilarityIndex(catalog, recentlyPlayed []models.Track, k int) SimilarityIndex {
	if k <= 0 {
		k = DefaultNeighborCount
	}

	recent := make(map[int64]struct{}, len(recentlyPlayed))
	for i := range recentlyPlayed {
		recent[recentlyPlayed[i].ID] = struct{}{}
	}

	index := make(SimilarityIndex, len(catalog))
	for i := range catalog {
		track := &catalog[i]
		if index.Contains(track.ID) {
			continue
		}
		index[track.ID] = computeTrackNeighbors(track, catalog, recent, k)
	}

	return index
}

// computeTrackNeighbors computes the k most similar tracks for a given track.
func computeTrackNeighbors(track *models.Track, catalog []models.Track, recent map[int64]struct{}, k int) []Neighbor {
	neighbors := make([]Neighbor, 0, len(catalog))
	seen := make(map[int64]struct{}, len(catalog))

	for j := range catalog {
		other := &catalog[j]
		if other.ID == track.ID {
			continue
		}
		if _, dup := seen[other.ID]; dup {
			continue
		}
		seen[other.ID] = struct{}{}

		sim := TrackSimilarity(*track, *other, recent)
		if sim > 0 {
			neighbors = append(neighbors, Neighbor{ID: other.ID, Similarity: sim})
		}
	}

	// Sort by similarity (descending) and take top K
	sort.SliceStable(neighbors, func(a, b int) bool {
		return neighbors[a].Similarity > neighbors[b].Similarity
	})

	if len(neighbors) > k {
		neighbors = neighbors[:k:k]
	}

	return neighbors
}

// CollaborativeScore averages the candidate's similarity over the neighbor
// lists of the recently played tracks. Recently played ids without a
// matching entry are ignored; the result is 0 when nothing matches.
func CollaborativeScore(candidateID int64, recentlyPlayedIDs []int64, index SimilarityIndex) float64 {
	if len(recentlyPlayedIDs) == 0 {
		return 0
	}

	var sum float64
	var found int
	for _, id := range recentlyPlayedIDs {
		if sim, ok := index.Similarity(id, candidateID); ok {
			sum += sim
			found++
		}
	}

	if found == 0 {
		return 0
	}
	return clamp01(sum / float64(found))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
