// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

/*
Package api serves recommendations over HTTP with a chi router.

Routes:

	GET  /healthz                  liveness and version
	GET  /metrics                  Prometheus scrape endpoint (optional)
	GET  /api/v1/recommendations   ?top_n=&current_track=
	GET  /api/v1/trending          ?top_n=
	GET  /api/v1/stats             engine counters and cache state
	POST /api/v1/cache/clear       drop both engines' caches

Every response uses the models.APIResponse envelope. Errors carry a machine
readable code: VALIDATION_ERROR, INVALID_PARAMETER, TRACK_NOT_FOUND,
CATALOG_UNAVAILABLE, RATE_LIMITED, NOT_FOUND or METHOD_NOT_ALLOWED.

The catalog is read from a catalog.Source on every request, so a FileSource
picks up edits without a restart. Cache rebuilds stay governed by the engine
TTLs.

Middleware order: correlation ID, chi RealIP and Recoverer, go-chi/cors, then
for /api/v1 the HTTP metrics middleware and a per-IP go-chi/httprate limit.

Usage:

	handler := api.NewHandler(rec, source, api.HandlerConfig{DefaultTopN: 20, MaxTopN: 100})
	mw := api.NewChiMiddleware(api.NewChiMiddlewareConfig(cfg.Server))
	router := api.NewRouter(handler, mw, api.RouterConfig{MetricsEnabled: true})
	srv := &http.Server{Addr: cfg.Server.Listen, Handler: router.SetupChi()}
*/
package api
