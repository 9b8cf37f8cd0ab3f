// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

// Package logging provides the process-wide zerolog logger for Resonance.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Int("tracks", n).Msg("catalog loaded")
//	logging.Ctx(ctx).Debug().Msg("scoring request")
//
// Components take a zerolog.Logger in their constructors and derive a child
// with a "component" field:
//
//	logger := logging.WithComponent("warmer")
//
// # Correlation IDs
//
// Every CLI invocation and HTTP request carries a short correlation ID in its
// context. Ctx and CtxWith add it to log lines automatically:
//
//	ctx = logging.ContextWithNewCorrelationID(ctx)
//	logging.Ctx(ctx).Info().Msg("recommendations generated")
//	// {"level":"info","correlation_id":"3f2a9c1e","message":"recommendations generated"}
//
// # slog Bridge
//
// Libraries that accept *slog.Logger (sutureslog for the supervisor tree)
// write through SlogHandler into the same zerolog output:
//
//	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger()}
//
// # Configuration
//
// Level, format and caller reporting come from the logging section of the
// application config (RESONANCE_LOG_LEVEL, RESONANCE_LOG_FORMAT,
// RESONANCE_LOG_CALLER).
package logging
