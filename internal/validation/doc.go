// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

// Package validation wraps go-playground/validator v10 behind a process-wide
// singleton.
//
// It validates the application config and API query structs. Error field
// names follow the koanf, query or json tags, so a bad config key reads
// "recommend.weights.content must be greater than or equal to 0" rather than
// a Go field name.
//
// Custom tags:
//
//	loglevel  trace, debug, info, warn, warning, error, fatal, disabled, off
//	finite    float that is neither NaN nor infinite
//
// Example:
//
//	type TrendingRequest struct {
//	    TopN int `query:"top_n" validate:"min=1,max=500"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    apiErr := err.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	}
package validation
