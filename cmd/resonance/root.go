// Resonance - Music Recommendation and Ranking Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/tomtom215/resonance/internal/config"
	"github.com/tomtom215/resonance/internal/logging"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var catalogFlag string
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &catalogFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "resonance",
		Short:         "Music recommendation and ranking engine",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			lc := cfg.LoggingConfig()
			lc.Output = cmd.ErrOrStderr()
			logging.Init(lc)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (default: $RESONANCE_CONFIG or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&catalogFlag, "catalog", "", "Catalog file (.json, .yaml, .yml); overrides catalog.path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level; overrides logging.level")

	rootCmd.AddCommand(newRecommendCommand(ctx))
	rootCmd.AddCommand(newTrendingCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

// commandContext loads the configuration once per invocation and applies
// the global flag overrides.
type commandContext struct {
	configFlag   *string
	catalogFlag  *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, catalogFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		catalogFlag:  catalogFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.LoadFile(strings.TrimSpace(*c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}

		overridden := false
		if path := strings.TrimSpace(*c.catalogFlag); path != "" {
			cfg.Catalog.Path = path
			overridden = true
		}
		if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
			cfg.Logging.Level = level
			overridden = true
		}
		if overridden {
			if err := cfg.Validate(); err != nil {
				c.configErr = err
				return
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}
