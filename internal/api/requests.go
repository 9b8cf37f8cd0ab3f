// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package api

// Request structs bind query parameters and carry go-playground/validator
// tags. Field names in validation errors come from the query tag.
//
//	req := TrendingRequest{TopN: topN}
//	if apiErr := validateRequest(&req); apiErr != nil {
//	    respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
//	    return
//	}

// RecommendationsRequest holds the query of GET /api/v1/recommendations.
//
// Fields:
//   - TopN: result size (1-1000, default from config)
//   - CurrentTrack: track to compare against; defaults to the catalog's current track
type RecommendationsRequest struct {
	TopN         int    `query:"top_n" validate:"min=1,max=1000"`
	CurrentTrack *int64 `query:"current_track"`
}

// TrendingRequest holds the query of GET /api/v1/trending.
type TrendingRequest struct {
	TopN int `query:"top_n" validate:"min=1,max=1000"`
}
