package onboarding

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/onboardr/internal/tui/theme"
)

// buttonState is the visual state of a button.
type buttonState int

const (
	buttonNormal buttonState = iota
	buttonDisabled
	buttonFocused
)

type button struct {
	label string
	state buttonState
}

// navButtons returns the Back and Next (or Finish) pair for a step.
func navButtons(canGoBack, terminal bool) []button {
	back := button{label: "← Back", state: buttonNormal}
	if !canGoBack {
		back.state = buttonDisabled
	}
	next := button{label: "Next →", state: buttonFocused}
	if terminal {
		next.label = "Finish"
	}
	return []button{back, next}
}

// renderButtons draws buttons centered in width.
func renderButtons(t *theme.Theme, buttons []button, width int) string {
	if len(buttons) == 0 {
		return ""
	}
	s := t.S()

	rendered := make([]string, 0, len(buttons))
	for _, b := range buttons {
		switch b.state {
		case buttonDisabled:
			rendered = append(rendered, s.ButtonDisabled.Render(b.label))
		case buttonFocused:
			rendered = append(rendered, s.ButtonFocused.Render(b.label))
		default:
			rendered = append(rendered, s.ButtonNormal.Render(b.label))
		}
	}

	return lipgloss.Place(width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}
