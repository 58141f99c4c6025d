package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/mark3labs/onboardr/internal/mcpserver"
	"github.com/mark3labs/onboardr/internal/onboarding"
	"github.com/spf13/cobra"
)

var mcpFlags struct {
	addr string
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the onboarding wizard as MCP tools over HTTP",
	Long: `Start an MCP server exposing the wizard as tools (onboarding_open,
onboarding_toggle, onboarding_next, ...). Completion is written to the
configured flag store exactly as in the terminal wizard.

The server runs until interrupted.`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpFlags.addr, "addr", "", "Listen address (default: mcp_addr from config)")
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if mcpFlags.addr != "" {
		cfg.MCPAddr = mcpFlags.addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	// Transitions settle synchronously under the driver, so fades only add latency.
	cfg.FadeDuration = "0s"
	ctrl, err := newController(cfg, store, nil)
	if err != nil {
		return err
	}

	srv := mcpserver.New(onboarding.NewDriver(ctrl), cfg.MCPAddr)
	if _, err := srv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start MCP server: %w", err)
	}
	defer func() { _ = srv.Stop() }()

	fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on %s\n", srv.URL())
	<-ctx.Done()
	fmt.Fprintln(cmd.OutOrStdout(), "\nShutting down...")
	return nil
}
