// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

/*
Resonance scores a music catalog for "what to play next".

	resonance recommend --catalog library.json --top-n 10
	resonance trending  --catalog library.yaml
	resonance serve     --config /etc/resonance/config.yaml
	resonance config show

recommend and trending print JSON to stdout. serve runs the HTTP API and the
cache warmer under a supervisor tree until SIGINT or SIGTERM. Settings come
from defaults, an optional YAML file and RESONANCE_* environment variables;
see internal/config.
*/
package main
