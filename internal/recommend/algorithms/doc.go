// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

// Package algorithms implements the signal models behind the recommendation engine.
//
// # Term-Vector Model
//
// Each track's "{title} {artist}" text is tokenized and weighted with TF-IDF:
//
//	tf(t, d)  = count(t, d) / len(d)
//	idf(t)    = ln((1 + N) / (1 + df(t))) + 1
//	weight    = tf * idf
//
// The smoothed idf keeps every present term strictly positive, so two tracks
// with identical text always have cosine similarity 1.0 even in a two-track
// catalog.
//
// # Neighbor Model
//
// BuildSimilarityIndex compares every pair of distinct tracks with a fixed
// blend of three bounded signals:
//
//	artist match        0.6
//	recent co-play      0.3
//	play-count affinity 0.1
//
// and keeps the k most similar neighbors per track. The build is O(n²) in
// catalog size; callers limit the catalog before building.
//
// CollaborativeScore averages a candidate's similarity across the neighbor
// lists of the listener's recently played tracks.
//
// # Thread Safety
//
// All functions are pure. TermVector and SimilarityIndex values are not
// modified after construction and may be shared between goroutines.
package algorithms
