// Package onboarding is the terminal rendering of the first-run wizard.
package onboarding

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/onboardr/internal/logger"
	"github.com/mark3labs/onboardr/internal/onboarding"
	"github.com/mark3labs/onboardr/internal/tui/theme"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model renders an onboarding.Controller and feeds it key presses.
type Model struct {
	ctrl  *onboarding.Controller
	keys  KeyMap
	help  help.Model
	theme *theme.Theme
	md    markdownCache

	width  int
	height int
	cursor int
	step   onboarding.StepID

	quitting bool
	err      error
}

// New wraps an opened controller.
func New(ctrl *onboarding.Controller) *Model {
	return &Model{
		ctrl:  ctrl,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		theme: theme.Current(),
		step:  ctrl.Current(),
	}
}

// Run shows the wizard until it finishes or the user quits. It returns the
// finish error, if any.
func Run(ctx context.Context, ctrl *onboarding.Controller) (*Model, error) {
	m := New(ctrl)
	p := tea.NewProgram(m, tea.WithContext(ctx))

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("onboarding wizard failed: %w", err)
	}
	fm, ok := final.(*Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	return fm, fm.err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		cmd = m.handleKey(msg)

	case onboarding.FinishedMsg:
		m.err = msg.Err
		if m.ctrl.Finished() {
			m.quitting = true
			return m, tea.Quit
		}
		if msg.Err != nil {
			logger.Warn("Onboarding finish failed: %v", msg.Err)
		}

	default:
		cmd = m.ctrl.Update(msg)
	}

	if cur := m.ctrl.Current(); cur != m.step {
		m.step = cur
		m.cursor = 0
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	opts := optionsFor(m.ctrl.Current())

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Close()
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Next):
		return m.ctrl.GoNext()

	case key.Matches(msg, m.keys.Back):
		return m.ctrl.GoPrev()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(opts)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(opts) {
			m.choose(opts[m.cursor])
		}

	case key.Matches(msg, m.keys.Pick):
		i := int(msg.String()[0] - '1')
		if i >= 0 && i < len(opts) {
			m.cursor = i
			m.choose(opts[i])
		}
	}
	return nil
}

// choose applies o to the current step.
func (m *Model) choose(o option) {
	switch m.ctrl.Current() {
	case onboarding.StepSelection:
		m.ctrl.ToggleUseCase(o.value)
	case onboarding.StepPersonalize:
		m.ctrl.SetPersonalization(onboarding.Personalization(o.value))
	case onboarding.StepDevOrNonDev:
		m.ctrl.SetDevPreference(onboarding.DevPreference(o.value))
	}
}

// Finished reports whether onboarding completed.
func (m *Model) Finished() bool {
	return m.ctrl.Finished()
}

// Err returns the last finish error.
func (m *Model) Err() error {
	return m.err
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	w, h := m.size()
	canvas := uv.NewScreenBuffer(w, h)
	uv.NewStyledString(m.render()).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: w, Y: h},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

func (m *Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// render lays out the modal for the current props, centered on screen.
func (m *Model) render() string {
	if m.quitting {
		return ""
	}

	w, h := m.size()
	modalWidth := w - 10
	if modalWidth < 50 {
		modalWidth = 50
	}
	if modalWidth > 90 {
		modalWidth = 90
	}
	inner := modalWidth - 6

	p := m.ctrl.Props()
	s := m.theme.S()

	var sections []string
	sections = append(sections, m.renderHeader(p))
	sections = append(sections, m.renderProgress(p), "")

	if p.Visible {
		sections = append(sections, m.md.render(stepCopy[p.Step], inner))
		if opts := optionsFor(p.Step); len(opts) > 0 {
			sections = append(sections, "", m.renderOptions(p, opts))
		}
	} else {
		sections = append(sections, "")
	}

	sections = append(sections, "")
	if p.Error != "" {
		sections = append(sections, s.ErrorLine.Render("✗ "+p.Error))
	} else {
		sections = append(sections, "")
	}
	sections = append(sections, renderButtons(m.theme, navButtons(p.CanGoBack, p.Terminal), inner))

	bindings := m.keys.ShortHelp()
	if len(optionsFor(p.Step)) > 0 {
		bindings = m.keys.optionHelp()
	}
	sections = append(sections, "", m.help.ShortHelpView(bindings))

	modal := s.Container.Width(modalWidth).Render(strings.Join(sections, "\n"))
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, modal)
}

func (m *Model) renderHeader(p onboarding.Props) string {
	var pos float64
	switch p.Phase {
	case onboarding.PhaseIdle:
		pos = 1
	case onboarding.PhaseFadingIn:
		pos = 0.5
	}
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.FadeColor(pos))).
		Bold(true).
		Render(p.Title)
	label := m.theme.S().StepLabel.Render(fmt.Sprintf("Step %d of %d", p.Index+1, p.Total))
	return m.theme.S().Title.Render("onboardr") + "  " + label + "\n" + title
}

func (m *Model) renderProgress(p onboarding.Props) string {
	s := m.theme.S()
	dots := make([]string, p.Total)
	for i := range dots {
		switch {
		case i < p.Index:
			dots[i] = s.DotDone.Render("●")
		case i == p.Index:
			dots[i] = s.DotCurrent.Render("●")
		default:
			dots[i] = s.DotTodo.Render("○")
		}
	}
	return strings.Join(dots, " ")
}

func (m *Model) renderOptions(p onboarding.Props, opts []option) string {
	s := m.theme.S()
	lines := make([]string, 0, len(opts))
	for i, o := range opts {
		cursor := "  "
		if i == m.cursor {
			cursor = s.Cursor.Render("› ")
		}

		mark := "( )"
		if multiSelect(p.Step) {
			mark = "[ ]"
		}
		style := s.OptionOff
		if chosen(p.Step, p, o) {
			mark = "(•)"
			if multiSelect(p.Step) {
				mark = "[x]"
			}
			style = s.OptionOn
		}

		line := fmt.Sprintf("%s%d. %s %s", cursor, i+1, style.Render(mark), style.Render(o.label))
		if o.help != "" {
			line += "  " + s.OptionHelp.Render(o.help)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
