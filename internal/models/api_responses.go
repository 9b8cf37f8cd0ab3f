// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope for every HTTP response.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"engine": "trending", "scores": [...]},
//	  "metadata": {"timestamp": "2026-03-14T12:00:00Z", "query_time_ms": 4, "catalog_size": 1200}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "VALIDATION_ERROR", "message": "top_n must be at least 1", "details": {"field": "top_n"}},
//	  "metadata": {"timestamp": "2026-03-14T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	Timestamp     time.Time `json:"timestamp"`
	QueryTimeMS   int64     `json:"query_time_ms,omitempty"`
	CatalogSize   int       `json:"catalog_size,omitempty"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// APIError is the error payload of a failed response.
//
// Common codes:
//   - VALIDATION_ERROR: query parameters failed validation
//   - INVALID_PARAMETER: a parameter could not be parsed
//   - CATALOG_UNAVAILABLE: the catalog source could not be read
//   - RATE_LIMITED: too many requests from this client
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
