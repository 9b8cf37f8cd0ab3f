// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

/*
Package supervisor runs the long-lived services of the serve command under a
suture v4 supervisor tree.

# Tree

	resonance
	├── engine-layer
	│   └── cache-warmer   (services.WarmerService, when a catalog is configured)
	└── api-layer
	    └── http-server    (services.HTTPServerService)

Each layer counts failures on its own, so a warmer that keeps failing to read
the catalog backs off without restarting the HTTP server.

# Logging

Supervisor events (service start, panic, backoff, termination timeout) go to
an slog.Logger through sutureslog. The serve command passes
logging.NewSlogLogger so these events share the zerolog output of the rest
of the process.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddEngineService(services.NewWarmerService(rec, source, warmerCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}
*/
package supervisor
