// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

// Package models defines the data types shared across Resonance packages:
// catalog tracks, optional track references and the HTTP response envelope.
package models
