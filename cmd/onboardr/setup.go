package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/onboardr/internal/config"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project bool
	force   bool
	edit    bool
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create onboardr configuration file",
	Long: `Create an onboardr configuration file with sensible defaults.

By default, creates a global config at ~/.config/onboardr/onboardr.yml.
Use --project to create a project-local config in the current directory.
Use --edit to open the file in $EDITOR afterwards.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
	setupCmd.Flags().BoolVarP(&setupFlags.edit, "edit", "e", false, "Open the config in $EDITOR after writing")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	exists := fileExists(targetPath)
	if exists && !setupFlags.force && !setupFlags.edit {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite or --edit to change it", targetPath)
	}

	if !exists || setupFlags.force {
		var err error
		if setupFlags.project {
			err = config.WriteProject(config.Default())
		} else {
			err = config.WriteGlobal(config.Default())
		}
		if err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config written to: %s\n", targetPath)
	}

	if setupFlags.edit {
		if err := editConfig(targetPath); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config at %s does not load: %w", targetPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config at %s is invalid: %w", targetPath, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'onboardr' to get started.")
	return nil
}

// editConfig opens path in the user's editor and waits for it to exit.
func editConfig(path string) error {
	c, err := editor.Command("onboardr", path)
	if err != nil {
		return fmt.Errorf("failed to find editor: %w", err)
	}
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}
	return nil
}

// fileExists checks if a file exists (helper for setup command).
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
