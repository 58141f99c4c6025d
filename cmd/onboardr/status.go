package main

import (
	"fmt"

	"github.com/mark3labs/onboardr/internal/onboarding"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether onboarding has been completed",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	value, found, err := store.GetBool(cmd.Context(), onboarding.FirstRunKey)
	if err != nil {
		return fmt.Errorf("failed to read first-run flag: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "store:    %s (%s)\n", cfg.Store, cfg.DataDir)
	switch {
	case !found:
		fmt.Fprintln(out, "status:   pending (wizard will show on next run)")
	default:
		fmt.Fprintf(out, "status:   completed (%s=%t)\n", onboarding.FirstRunKey, value)
	}
	return nil
}
