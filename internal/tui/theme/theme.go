// Package theme holds the color palette and pre-built styles for the TUI.
package theme

import (
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string // lipgloss.Color is a string type
	Secondary string
	Tertiary  string

	// Background hierarchy (dark→light)
	BgBase     string
	BgMantle   string
	BgGutter   string
	BgSurface0 string
	BgSurface1 string
	BgSurface2 string
	BgOverlay  string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	// Status colors
	Success string
	Warning string
	Error   string
	Info    string

	// Diff colors
	DiffInsertBg  string
	DiffDeleteBg  string
	DiffEqualBg   string
	DiffMissingBg string

	// Lazy-built styles
	styles     *Styles
	stylesOnce sync.Once
}

var (
	current     *Theme
	currentOnce sync.Once
)

// Current returns the active theme.
func Current() *Theme {
	currentOnce.Do(func() {
		current = NewCatppuccinMocha()
	})
	return current
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

// FadeColor returns the foreground color for text at fade position pos,
// where 0 is invisible against the base background and 1 is fully shown.
func (t *Theme) FadeColor(pos float64) string {
	switch {
	case pos <= 0:
		return t.BgBase
	case pos >= 1:
		return t.FgBase
	}
	return InterpolateColor(t.BgBase, t.FgBase, pos)
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	button := lipgloss.NewStyle().Padding(0, 2).MarginLeft(1).MarginRight(1)

	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),
		StepLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),
		Container: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BgSurface1)).
			Padding(1, 2),
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),
		ErrorLine: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Bold(true),

		DotDone:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Tertiary)),
		DotCurrent: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Bold(true),
		DotTodo:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.BgSurface2)),

		Cursor:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Bold(true),
		OptionOn:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
		OptionOff:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)),
		OptionHelp: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)).Italic(true),

		ButtonNormal: button.
			Foreground(lipgloss.Color(t.FgBase)).
			Background(lipgloss.Color(t.BgSurface0)),
		ButtonDisabled: button.
			Foreground(lipgloss.Color(t.BgOverlay)).
			Background(lipgloss.Color(t.BgMantle)),
		ButtonFocused: button.
			Foreground(lipgloss.Color(t.BgBase)).
			Background(lipgloss.Color(t.Tertiary)).
			Bold(true),

		DiffInsert: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Background(lipgloss.Color(t.DiffInsertBg)),
		DiffDelete: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Background(lipgloss.Color(t.DiffDeleteBg)),
		DiffHunk: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),
	}
}
