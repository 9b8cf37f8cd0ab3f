// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package models

import (
	"fmt"
	"strings"
	"time"
)

// UnknownArtistID marks a track whose artist could not be resolved.
// Two tracks with the unknown artist are never treated as sharing an artist.
const UnknownArtistID int64 = -1

// Track is a single catalog entry as supplied by the caller.
//
// Tracks are treated as immutable for the duration of a recommendation call.
// LastPlayedAt is nil for tracks that have never been played.
type Track struct {
	ID           int64      `json:"id" yaml:"id"`
	Title        string     `json:"title" yaml:"title"`
	ArtistName   string     `json:"artist_name" yaml:"artist_name"`
	ArtistID     int64      `json:"artist_id" yaml:"artist_id"`
	PlayCount    int64      `json:"play_count" yaml:"play_count"`
	LastPlayedAt *time.Time `json:"last_played_at,omitempty" yaml:"last_played_at,omitempty"`
}

// LastPlayed returns the last play time and whether the track was ever played.
//
//nolint:gocritic // value receiver keeps Track usable as a map value
func (t Track) LastPlayed() (time.Time, bool) {
	if t.LastPlayedAt == nil {
		return time.Time{}, false
	}
	return *t.LastPlayedAt, true
}

// HasKnownArtist reports whether the track carries a resolved artist id.
//
//nolint:gocritic // value receiver keeps Track usable as a map value
func (t Track) HasKnownArtist() bool {
	return t.ArtistID != UnknownArtistID
}

// Document returns the text the term-vector model is built from.
//
//nolint:gocritic // value receiver keeps Track usable as a map value
func (t Track) Document() string {
	return strings.TrimSpace(t.Title + " " + t.ArtistName)
}

// Validate checks the fields the engine relies on.
//
//nolint:gocritic // value receiver keeps Track usable as a map value
func (t Track) Validate() error {
	if t.PlayCount < 0 {
		return fmt.Errorf("track %d: play_count must be non-negative, got %d", t.ID, t.PlayCount)
	}
	if t.ArtistID < UnknownArtistID {
		return fmt.Errorf("track %d: artist_id must be >= %d, got %d", t.ID, UnknownArtistID, t.ArtistID)
	}
	return nil
}

// TrackRef optionally names a track by id.
// The zero value names no track.
type TrackRef struct {
	id    int64
	valid bool
}

// RefTo returns a reference to the track with the given id.
func RefTo(id int64) TrackRef {
	return TrackRef{id: id, valid: true}
}

// NoTrack returns an empty reference.
func NoTrack() TrackRef {
	return TrackRef{}
}

// Get returns the referenced id and whether the reference is set.
func (r TrackRef) Get() (int64, bool) {
	return r.id, r.valid
}

// IsSet reports whether the reference names a track.
func (r TrackRef) IsSet() bool {
	return r.valid
}

// Is reports whether the reference names the given id.
func (r TrackRef) Is(id int64) bool {
	return r.valid && r.id == id
}

// String implements fmt.Stringer.
func (r TrackRef) String() string {
	if !r.valid {
		return "none"
	}
	return fmt.Sprintf("%d", r.id)
}

// TrackIDs returns the ids of the given tracks in order.
func TrackIDs(tracks []Track) []int64 {
	ids := make([]int64, len(tracks))
	for i := range tracks {
		ids[i] = tracks[i].ID
	}
	return ids
}
