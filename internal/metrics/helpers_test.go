// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package metrics

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/resonance/internal/models"
)

func zerologNop() zerolog.Logger {
	return zerolog.Nop()
}

func noTrack() models.TrackRef {
	return models.NoTrack()
}

func sampleTracks() []models.Track {
	return []models.Track{
		{ID: 1, Title: "Teardrop", ArtistName: "Massive Attack", ArtistID: 1, PlayCount: 12},
		{ID: 2, Title: "Angel", ArtistName: "Massive Attack", ArtistID: 1, PlayCount: 4},
		{ID: 3, Title: "Glory Box", ArtistName: "Portishead", ArtistID: 2, PlayCount: 9},
	}
}
