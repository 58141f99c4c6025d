package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/colorprofile"
	"github.com/mark3labs/onboardr/internal/pipes"
	"github.com/spf13/cobra"
)

var pipesFlags struct {
	interval time.Duration
	dryRun   bool
}

var pipesCmd = &cobra.Command{
	Use:   "pipes",
	Short: "Manage screenpipe pipe schedules",
}

var pipesScheduleCmd = &cobra.Command{
	Use:   "schedule <name>",
	Short: "Write the cron schedule of a pipe",
	Long: `Write <screenpipe_dir>/pipes/<name>/pipe.json so the pipe's pipeline
endpoint runs every --interval. The interval must be a whole number of
minutes between 1m and 59m.

Use --dry-run to print the change as a diff without writing it.`,
	Example: `  onboardr pipes schedule reddit-auto-posts --interval 5m
  onboardr pipes schedule reddit-auto-posts --interval 15m --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runPipesSchedule,
}

func init() {
	pipesScheduleCmd.Flags().DurationVarP(&pipesFlags.interval, "interval", "i", 5*time.Minute, "How often the pipe runs")
	pipesScheduleCmd.Flags().BoolVar(&pipesFlags.dryRun, "dry-run", false, "Print the diff instead of writing")
	pipesCmd.AddCommand(pipesScheduleCmd)
}

func runPipesSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	root := cfg.PipesRoot()
	out := cmd.OutOrStdout()

	if pipesFlags.dryRun {
		diff, err := pipes.Preview(root, args[0], pipesFlags.interval)
		if err != nil {
			return err
		}
		if diff == "" {
			fmt.Fprintln(out, "No changes.")
			return nil
		}
		fmt.Fprint(out, highlightDiff(diff, colorprofile.Detect(os.Stdout, os.Environ())))
		return nil
	}

	path, err := pipes.Write(root, args[0], pipesFlags.interval)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Pipe schedule saved to %s\n", path)
	return nil
}

// highlightDiff colors a unified diff for the given terminal profile.
// Profiles without color get the diff unchanged.
func highlightDiff(diff string, profile colorprofile.Profile) string {
	var formatterName string
	switch profile {
	case colorprofile.TrueColor:
		formatterName = "terminal16m"
	case colorprofile.ANSI256:
		formatterName = "terminal256"
	case colorprofile.ANSI:
		formatterName = "terminal16"
	default:
		return diff
	}

	lexer := lexers.Get("diff")
	if lexer == nil {
		return diff
	}
	lexer = chroma.Coalesce(lexer)

	formatter := formatters.Get(formatterName)
	style := styles.Get("catppuccin-mocha")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, diff)
	if err != nil {
		return diff
	}
	var b strings.Builder
	if err := formatter.Format(&b, style, iterator); err != nil {
		return diff
	}
	return b.String()
}
