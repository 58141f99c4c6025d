package main

import (
	"context"
	"fmt"
	"io"

	"github.com/mark3labs/onboardr/internal/config"
	"github.com/mark3labs/onboardr/internal/flagstore"
	"github.com/mark3labs/onboardr/internal/logger"
	"github.com/mark3labs/onboardr/internal/onboarding"
)

var globalFlags struct {
	dataDir  string
	store    string
	logLevel string
}

// loadConfig loads configuration, applies command-line overrides, validates
// it and configures the logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}
	return cfg, nil
}

func applyOverrides(cfg *config.Config) {
	if globalFlags.dataDir != "" {
		cfg.DataDir = globalFlags.dataDir
	}
	if globalFlags.store != "" {
		cfg.Store = globalFlags.store
	}
	if globalFlags.logLevel != "" {
		cfg.LogLevel = globalFlags.logLevel
	}
}

// openStore opens the configured flag store.
func openStore(ctx context.Context, cfg *config.Config) (flagstore.Store, error) {
	store, err := flagstore.Open(ctx, flagstore.Options{
		Backend: cfg.Store,
		DataDir: cfg.DataDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s flag store: %w", cfg.Store, err)
	}
	return store, nil
}

// newController builds a controller using the configured fade and
// instructions back rule.
func newController(cfg *config.Config, store onboarding.FlagStore, host onboarding.Host) (*onboarding.Controller, error) {
	fade, err := cfg.Fade()
	if err != nil {
		return nil, err
	}
	rule, err := cfg.BackRule()
	if err != nil {
		return nil, err
	}
	return onboarding.New(store, host,
		onboarding.WithFadeDuration(fade),
		onboarding.WithRegistry(onboarding.NewRegistry(onboarding.WithInstructionsBackRule(rule))),
	), nil
}

// closeStore closes store, logging failures.
func closeStore(store flagstore.Store) {
	if err := store.Close(); err != nil {
		logger.Warn("Closing flag store: %v", err)
	}
}

// printHome prints the main view shown once onboarding is complete.
func printHome(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, renderLogo())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "You're all set. Onboarding state lives in %s (%s store).\n\n", cfg.DataDir, cfg.Store)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  onboardr pipes schedule reddit-auto-posts --interval 5m   schedule a pipe")
	fmt.Fprintln(w, "  onboardr status                                           show onboarding state")
	fmt.Fprintln(w, "  onboardr reset                                            show the wizard again")
}
