package main

import (
	"fmt"

	"github.com/mark3labs/onboardr/internal/onboarding"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget onboarding completion so the wizard shows again",
	RunE:  runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	if err := store.Delete(cmd.Context(), onboarding.FirstRunKey); err != nil {
		return fmt.Errorf("failed to reset onboarding: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Onboarding reset. The wizard will show on next run.")
	return nil
}
