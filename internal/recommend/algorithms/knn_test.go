// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package algorithms

import (
	"math"
	"testing"

	"github.com/tomtom215/resonance/internal/models"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestPlayCountSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		c1, c2 int64
		want   float64
	}{
		{"both zero", 0, 0, 1},
		{"first zero", 0, 10, 0},
		{"second zero", 10, 0, 0},
		{"both one", 1, 1, 1},
		{"both positive bounded", 100, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := PlayCountSimilarity(tt.c1, tt.c2); !approxEqual(got, tt.want) {
				t.Errorf("PlayCountSimilarity(%d, %d) = %f, want %f", tt.c1, tt.c2, got, tt.want)
			}
		})
	}
}

func TestTrackSimilarity(t *testing.T) {
	t.Parallel()

	recent := map[int64]struct{}{1: {}, 2: {}}

	tests := []struct {
		name string
		a, b models.Track
		want float64
	}{
		{
			name: "same artist, both recent, both unplayed",
			a:    models.Track{ID: 1, ArtistID: 7},
			b:    models.Track{ID: 2, ArtistID: 7},
			want: 1,
		},
		{
			name: "same artist only",
			a:    models.Track{ID: 3, ArtistID: 7, PlayCount: 5},
			b:    models.Track{ID: 4, ArtistID: 7},
			want: ArtistMatchWeight,
		},
		{
			name: "unknown artist never matches",
			a:    models.Track{ID: 3, ArtistID: models.UnknownArtistID, PlayCount: 5},
			b:    models.Track{ID: 4, ArtistID: models.UnknownArtistID},
			want: 0,
		},
		{
			name: "co-played only",
			a:    models.Track{ID: 1, ArtistID: 1, PlayCount: 5},
			b:    models.Track{ID: 2, ArtistID: 2},
			want: CoPlayWeight,
		},
		{
			name: "play counts only",
			a:    models.Track{ID: 3, ArtistID: 1, PlayCount: 5},
			b:    models.Track{ID: 4, ArtistID: 2, PlayCount: 9},
			want: PlayCountWeight,
		},
		{
			name: "nothing in common",
			a:    models.Track{ID: 3, ArtistID: 1, PlayCount: 5},
			b:    models.Track{ID: 4, ArtistID: 2},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := TrackSimilarity(tt.a, tt.b, recent)
			if !approxEqual(got, tt.want) {
				t.Errorf("TrackSimilarity() = %f, want %f", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("TrackSimilarity() = %f, outside [0, 1]", got)
			}
			if rev := TrackSimilarity(tt.b, tt.a, recent); rev != got {
				t.Errorf("TrackSimilarity not symmetric: %f vs %f", got, rev)
			}
		})
	}
}

func TestBuildSimilarityIndex(t *testing.T) {
	t.Parallel()

	catalog := []models.Track{
		{ID: 1, ArtistID: 1, PlayCount: 100},
		{ID: 2, ArtistID: 1, PlayCount: 10},
		{ID: 3, ArtistID: 2, PlayCount: 0},
		{ID: 4, ArtistID: 3, PlayCount: 3},
	}
	recent := []models.Track{catalog[0]}

	index := BuildSimilarityIndex(catalog, recent, 10)

	if len(index) != len(catalog) {
		t.Fatalf("index has %d entries, want %d", len(index), len(catalog))
	}

	for id, neighbors := range index {
		for i, n := range neighbors {
			if n.ID == id {
				t.Errorf("track %d lists itself as a neighbor", id)
			}
			if n.Similarity <= 0 || n.Similarity > 1 {
				t.Errorf("track %d neighbor %d similarity %f outside (0, 1]", id, n.ID, n.Similarity)
			}
			if i > 0 && neighbors[i-1].Similarity < n.Similarity {
				t.Errorf("track %d neighbors not sorted descending at %d", id, i)
			}
		}
	}

	// 1 and 2 share an artist and both have plays.
	if sim, ok := index.Similarity(1, 2); !ok || !approxEqual(sim, ArtistMatchWeight+PlayCountWeight) {
		t.Errorf("Similarity(1, 2) = (%f, %v), want (%f, true)", sim, ok, ArtistMatchWeight+PlayCountWeight)
	}

	// 3 is unplayed and shares nothing with anyone played.
	if got := index.Neighbors(3); len(got) != 0 {
		t.Errorf("Neighbors(3) = %v, want empty", got)
	}

	// 1 and 2 tie against 4 on play counts alone; catalog order is kept.
	n4 := index.Neighbors(4)
	if len(n4) != 2 || n4[0].ID != 1 || n4[1].ID != 2 {
		t.Errorf("Neighbors(4) = %v, want [1 2] in catalog order", n4)
	}
}

func TestBuildSimilarityIndex_TruncatesToK(t *testing.T) {
	t.Parallel()

	catalog := make([]models.Track, 0, 30)
	for i := int64(1); i <= 30; i++ {
		catalog = append(catalog, models.Track{ID: i, ArtistID: 1, PlayCount: i})
	}

	tests := []struct {
		name string
		k    int
		want int
	}{
		{"explicit k", 5, 5},
		{"zero k uses default", 0, DefaultNeighborCount},
		{"negative k uses default", -3, DefaultNeighborCount},
		{"k larger than catalog", 100, 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			index := BuildSimilarityIndex(catalog, nil, tt.k)
			for id, neighbors := range index {
				if len(neighbors) != tt.want {
					t.Errorf("track %d has %d neighbors, want %d", id, len(neighbors), tt.want)
				}
			}
		})
	}
}

func TestBuildSimilarityIndex_DuplicateIDs(t *testing.T) {
	t.Parallel()

	catalog := []models.Track{
		{ID: 1, ArtistID: 1, PlayCount: 2},
		{ID: 1, ArtistID: 1, PlayCount: 2},
		{ID: 2, ArtistID: 1, PlayCount: 2},
	}

	index := BuildSimilarityIndex(catalog, nil, 10)
	if len(index) != 2 {
		t.Fatalf("index has %d entries, want 2", len(index))
	}
	if got := index.Neighbors(2); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("Neighbors(2) = %v, want a single entry for 1", got)
	}
	if got := index.Neighbors(1); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("Neighbors(1) = %v, want a single entry for 2", got)
	}
}

func TestBuildSimilarityIndex_EmptyCatalog(t *testing.T) {
	t.Parallel()

	index := BuildSimilarityIndex(nil, nil, 10)
	if len(index) != 0 {
		t.Errorf("index has %d entries, want 0", len(index))
	}
}

func TestCollaborativeScore(t *testing.T) {
	t.Parallel()

	index := SimilarityIndex{
		1: {{ID: 2, Similarity: 0.9}, {ID: 3, Similarity: 0.4}},
		2: {{ID: 3, Similarity: 0.6}},
		3: {},
	}

	tests := []struct {
		name      string
		candidate int64
		recent    []int64
		want      float64
	}{
		{"no history", 3, nil, 0},
		{"single hit", 2, []int64{1}, 0.9},
		{"mean over hits", 3, []int64{1, 2}, 0.5},
		{"misses are ignored", 3, []int64{1, 3, 99}, 0.4},
		{"no hits", 1, []int64{2, 3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CollaborativeScore(tt.candidate, tt.recent, index); !approxEqual(got, tt.want) {
				t.Errorf("CollaborativeScore() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestCollaborativeScore_EmptyHistorySkipsIndex(t *testing.T) {
	t.Parallel()

	// A nil index would still be safe, but the empty-history path must not
	// depend on the index at all.
	if got := CollaborativeScore(1, []int64{}, nil); got != 0 {
		t.Errorf("CollaborativeScore() = %f, want 0", got)
	}
}

func BenchmarkBuildSimilarityIndex(b *testing.B) {
	catalog := make([]models.Track, 500)
	for i := range catalog {
		catalog[i] = models.Track{ID: int64(i), ArtistID: int64(i % 25), PlayCount: int64(i % 40)}
	}
	recent := catalog[:20]

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = BuildSimilarityIndex(catalog, recent, DefaultNeighborCount)
	}
}
