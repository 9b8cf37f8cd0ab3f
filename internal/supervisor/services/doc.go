// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

/*
Package services adapts Resonance components to suture.Service.

  - HTTPServerService runs an *http.Server and shuts it down gracefully when
    the supervisor context is canceled.
  - WarmerService reloads the catalog from a catalog.Source on an interval
    and calls Warm on the recommender, recording each run in the
    resonance_warmer_* metrics.

Both implement fmt.Stringer so suture events name them.
*/
package services
