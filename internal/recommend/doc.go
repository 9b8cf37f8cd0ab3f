// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

// Package recommend ranks a music catalog for a listener.
//
// # Scoring
//
// Every catalog track receives four component scores in [0, 1], blended by
// ScoringWeights into a composite score:
//
//   - Popularity: play count relative to the catalog maximum
//   - Recency: exp(-decay * hours since last play), 0 if never played
//   - Content: TF-IDF cosine similarity to the current track plus an artist
//     bonus, 0 without a current track
//   - Collaborative: average neighbor-index similarity to recently played
//     tracks, falling back to 0.8 for a recently played track and 0.5 for a
//     track by a recently played artist
//
// Results are sorted by composite score with catalog order as the tie-break
// and truncated to the requested size.
//
// # Caches
//
// Term vectors (1h) and the neighbor index (2h) are derived from the whole
// catalog and cached. A stale or empty cache is rebuilt from the catalog of
// the request that observes it. ClearCache forces a rebuild on the next request.
//
// # Usage
//
//	rec, err := recommend.NewRecommender(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//
//	scores := rec.GetRecommendations(ctx, catalog, history, models.RefTo(nowPlaying), 20)
//	trending := rec.GetTrendingSongs(ctx, catalog, history, 10)
//
// # Thread Safety
//
// Engine and Recommender are safe for concurrent use. Cache snapshots are
// immutable and swapped atomically; rebuilds are serialized so concurrent
// requests never rebuild the same cache twice.
package recommend
