package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/onboardr/internal/config"
	"github.com/mark3labs/onboardr/internal/flagstore"
	"github.com/mark3labs/onboardr/internal/hooks"
	"github.com/mark3labs/onboardr/internal/logger"
	tuionboarding "github.com/mark3labs/onboardr/internal/tui/onboarding"
	"github.com/spf13/cobra"
)

var runFlags struct {
	ephemeral bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show the onboarding wizard on first run, the home view otherwise",
	RunE:  runRun,
}

func init() {
	registerRunFlags(runCmd)
}

func registerRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&runFlags.ephemeral, "ephemeral", false, "Keep onboarding state in memory only")
}

// cliHost reloads configuration and runs on_finish hooks after onboarding
// finishes. The home view and hook output are printed once the wizard has
// left the alternate screen.
type cliHost struct {
	cfg        *config.Config
	workDir    string
	reloaded   bool
	hookOutput string
}

func (h *cliHost) Reload(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("reloading config: %w", err)
	}
	applyOverrides(cfg)
	if runFlags.ephemeral {
		cfg.Store = flagstore.BackendMemory
	}
	h.cfg = cfg
	h.reloaded = true
	logger.Debug("Configuration reloaded after onboarding")

	hooksCfg, err := hooks.LoadConfig(h.workDir)
	if err != nil {
		return err
	}
	out, err := hooks.RunOnFinish(ctx, hooksCfg, h.workDir, hooks.Variables{
		DataDir: cfg.DataDir,
		Store:   cfg.Store,
	})
	h.hookOutput = out
	return err
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runFlags.ephemeral {
		cfg.Store = flagstore.BackendMemory
	}

	ctx := cmd.Context()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	host := &cliHost{cfg: cfg, workDir: workDir}
	ctrl, err := newController(cfg, store, host)
	if err != nil {
		return err
	}

	opened, err := ctrl.Open(ctx)
	if err != nil {
		return err
	}
	if !opened {
		printHome(cmd.OutOrStdout(), cfg)
		return nil
	}

	m, err := tuionboarding.Run(ctx, ctrl)
	if err != nil {
		return err
	}
	if !m.Finished() {
		fmt.Fprintln(cmd.OutOrStdout(), "Onboarding dismissed. It will show again next time.")
		return nil
	}
	if host.reloaded {
		printHome(cmd.OutOrStdout(), host.cfg)
	}
	if host.hookOutput != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s", host.hookOutput)
	}
	return nil
}
