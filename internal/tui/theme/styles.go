package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	// Wizard chrome
	Title     lipgloss.Style
	StepLabel lipgloss.Style
	Container lipgloss.Style
	Hint      lipgloss.Style
	ErrorLine lipgloss.Style

	// Progress dots
	DotDone    lipgloss.Style
	DotCurrent lipgloss.Style
	DotTodo    lipgloss.Style

	// Option lists
	Cursor     lipgloss.Style
	OptionOn   lipgloss.Style
	OptionOff  lipgloss.Style
	OptionHelp lipgloss.Style

	// Buttons
	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	// Diff lines
	DiffInsert lipgloss.Style
	DiffDelete lipgloss.Style
	DiffHunk   lipgloss.Style
}
