// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

// Package catalog loads catalog documents for the CLI, the cache warmer and
// the HTTP API.
//
// A document lists the catalog tracks, the listener's recently played track
// IDs (most recent first) and an optional current track:
//
//	tracks:
//	  - id: 1
//	    title: Teardrop
//	    artist_name: Massive Attack
//	    artist_id: 7
//	    play_count: 42
//	    last_played_at: 2026-03-14T11:00:00Z
//	recently_played: [1]
//	current_track: 1
//
// JSON documents use the same keys. The format follows the file extension
// (.json, .yaml, .yml).
//
// Resolve turns a document into a Catalog: recently played IDs become the
// matching tracks, and IDs missing from the catalog are reported in
// Catalog.Unresolved rather than failing the load.
package catalog
