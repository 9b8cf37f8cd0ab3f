// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/resonance/internal/api"
	"github.com/tomtom215/resonance/internal/catalog"
	"github.com/tomtom215/resonance/internal/config"
	"github.com/tomtom215/resonance/internal/logging"
	"github.com/tomtom215/resonance/internal/metrics"
	"github.com/tomtom215/resonance/internal/recommend"
	"github.com/tomtom215/resonance/internal/supervisor"
	"github.com/tomtom215/resonance/internal/supervisor/services"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and cache warmer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(sigCtx, cfg)
		},
	}
}

// app is the wired serve process.
type app struct {
	tree    *supervisor.SupervisorTree
	server  *http.Server
	warmer  *services.WarmerService
	handler http.Handler
}

// buildApp wires the recommender, catalog source, API router and
// supervisor tree from cfg without starting anything.
func buildApp(cfg *config.Config) (*app, error) {
	rec, err := recommend.NewRecommender(
		cfg.EngineConfig(),
		logging.WithComponent("recommend"),
		recommend.WithObserver(metrics.NewRecommendObserver()),
	)
	if err != nil {
		return nil, fmt.Errorf("create recommender: %w", err)
	}

	var source catalog.Source
	if cfg.Catalog.Path != "" {
		fs, err := catalog.NewFileSource(cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("catalog source: %w", err)
		}
		source = fs
	} else {
		logging.Warn().Msg("No catalog configured; recommendation routes will answer 503")
	}

	handler := api.NewHandler(rec, source, api.HandlerConfig{
		DefaultTopN: cfg.Recommend.DefaultTopN,
		MaxTopN:     cfg.Server.MaxTopN,
		Version:     version,
	})
	router := api.NewRouter(handler, api.NewChiMiddleware(api.NewChiMiddlewareConfig(cfg.Server)), api.RouterConfig{
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
	})
	httpHandler := router.SetupChi()

	server := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           httpHandler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("create supervisor tree: %w", err)
	}

	a := &app{tree: tree, server: server, handler: httpHandler}

	if cfg.Warmer.Enabled && source != nil {
		a.warmer = services.NewWarmerService(rec, source, services.WarmerServiceConfig{
			Interval:      cfg.Warmer.Interval,
			Timeout:       cfg.Warmer.Timeout,
			WarmOnStartup: true,
		}, logging.WithComponent("warmer"))
		tree.AddEngineService(a.warmer)
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))

	return a, nil
}

func runServe(ctx context.Context, cfg *config.Config) error {
	a, err := buildApp(cfg)
	if err != nil {
		return err
	}

	metrics.SetAppInfo(version, time.Now())

	logging.Info().
		Str("version", version).
		Str("listen", cfg.Server.Listen).
		Str("catalog", cfg.Catalog.Path).
		Bool("warmer", a.warmer != nil).
		Bool("metrics", cfg.Metrics.Enabled).
		Msg("Starting Resonance")

	err = a.tree.Serve(ctx)

	unstopped, _ := a.tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	logging.Info().Msg("Resonance stopped")
	return nil
}
