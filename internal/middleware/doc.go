// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

// Package middleware provides HTTP middleware for the Resonance API.
//
//   - CorrelationID: attaches a correlation ID to the request context and the
//     X-Correlation-ID response header
//   - PrometheusMetrics: records request counts, latency and in-flight requests,
//     labeled by chi route pattern
//
// Both are func(http.Handler) http.Handler and plug into chi's r.Use.
package middleware
