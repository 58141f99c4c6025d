package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/onboardr/internal/logger"
)

// FirstRunKey is the flag store key recording that onboarding was completed.
const FirstRunKey = "isFirstTimeUser"

var (
	// ErrClosed is returned for operations that need an open wizard.
	ErrClosed = errors.New("wizard is not open")
	// ErrNotTerminal is returned when finishing from a non-terminal step.
	ErrNotTerminal = errors.New("wizard is not on its last step")
)

// FlagStore is the key-value persistence holding the first-run flag.
type FlagStore interface {
	GetBool(ctx context.Context, key string) (value bool, found bool, err error)
	SetBool(ctx context.Context, key string, value bool) error
}

// Host is the application hosting the wizard. Reload is called once the
// wizard completes so choices made during onboarding apply everywhere.
type Host interface {
	Reload(ctx context.Context) error
}

// HostFunc adapts a function to the Host interface.
type HostFunc func(ctx context.Context) error

// Reload calls f(ctx).
func (f HostFunc) Reload(ctx context.Context) error {
	return f(ctx)
}

// FinishedMsg is emitted after a finish attempt. Err is nil on success.
type FinishedMsg struct {
	Err error
}

type finishMsg struct{}

// Props is what the render layer receives for the current step.
type Props struct {
	Open            bool            `json:"open"`
	Finished        bool            `json:"finished"`
	Step            StepID          `json:"step"`
	Title           string          `json:"title"`
	Index           int             `json:"index"`
	Total           int             `json:"total"`
	Phase           Phase           `json:"-"`
	Visible         bool            `json:"visible"`
	CanGoBack       bool            `json:"can_go_back"`
	Terminal        bool            `json:"terminal"`
	UseCases        []UseCase       `json:"use_cases"`
	Personalization Personalization `json:"personalization,omitempty"`
	DevPreference   DevPreference   `json:"dev_preference,omitempty"`
	Error           string          `json:"error,omitempty"`
}

// Controller owns the selection and current step of one wizard session.
// It is not safe for concurrent use; drive it from a single update loop
// or through a Driver.
type Controller struct {
	registry *Registry
	store    FlagStore
	host     Host
	orch     *Orchestrator
	ctx      context.Context

	sel      Selection
	current  StepID
	errMsg   string
	open     bool
	finished bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithRegistry replaces the default routing table.
func WithRegistry(r *Registry) Option {
	return func(c *Controller) {
		c.registry = r
	}
}

// WithFadeDuration sets the delay between hiding a step and swapping it.
func WithFadeDuration(d time.Duration) Option {
	return func(c *Controller) {
		c.orch = NewOrchestrator(d)
	}
}

// New creates a closed controller. Call Open to start a session.
func New(store FlagStore, host Host, opts ...Option) *Controller {
	c := &Controller{
		store: store,
		host:  host,
		ctx:   context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = NewRegistry()
	}
	if c.orch == nil {
		c.orch = NewOrchestrator(DefaultFadeDuration)
	}
	c.current = c.registry.First()
	return c
}

// Open starts a session when the first-run flag is absent.
// It returns false without error when onboarding was already completed.
func (c *Controller) Open(ctx context.Context) (bool, error) {
	if c.open {
		return true, nil
	}

	_, found, err := c.store.GetBool(ctx, FirstRunKey)
	if err != nil {
		logger.Error("Failed to read first-run flag: %v", err)
		return false, fmt.Errorf("reading first-run flag: %w", err)
	}
	if found {
		logger.Debug("First-run flag present, onboarding stays closed")
		return false, nil
	}

	c.ctx = ctx
	c.sel = Selection{}
	c.current = c.registry.First()
	c.errMsg = ""
	c.finished = false
	c.open = true
	logger.Info("Onboarding opened at step %s", c.current)
	return true, nil
}

// Close dismisses the wizard. The selection is discarded and any pending
// swap is invalidated, so the next Open starts fresh.
func (c *Controller) Close() {
	if !c.open {
		return
	}
	c.orch.Cancel()
	c.open = false
	c.sel = Selection{}
	c.current = c.registry.First()
	c.errMsg = ""
	logger.Debug("Onboarding closed")
}

// ToggleUseCase flips membership of tag and clears the error.
// Returns true if the tag is selected afterwards.
func (c *Controller) ToggleUseCase(tag string) bool {
	if !c.open {
		return false
	}
	uc := NormalizeUseCase(tag)
	if uc == "" {
		return false
	}
	present := c.sel.Toggle(uc)
	c.errMsg = ""
	logger.Debug("Use case %s toggled: selected=%v", uc, present)
	return present
}

// SetPersonalization records the personalization choice and clears the error.
func (c *Controller) SetPersonalization(v Personalization) {
	if !c.open {
		return
	}
	c.sel.Personalization = v
	c.errMsg = ""
}

// SetDevPreference records the dev preference choice and clears the error.
func (c *Controller) SetDevPreference(v DevPreference) {
	if !c.open {
		return
	}
	c.sel.DevPreference = v
	c.errMsg = ""
}

// GoNext validates the current step and starts a forward transition.
// On the terminal step it requests completion instead.
func (c *Controller) GoNext() tea.Cmd {
	if !c.open {
		return nil
	}
	if c.registry.Terminal(c.current) {
		return func() tea.Msg { return finishMsg{} }
	}
	if _, err := Check(c.registry, c.current, c.sel); err != nil {
		c.setGateError(err)
		return nil
	}
	return c.orch.Begin(Forward)
}

// GoPrev starts a backward transition. There is no validation going back.
func (c *Controller) GoPrev() tea.Cmd {
	if !c.open {
		return nil
	}
	if c.registry.Prev(c.current, c.sel) == StepNone {
		return nil
	}
	return c.orch.Begin(Backward)
}

// Update applies transition and completion messages.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SwapMsg:
		if !c.open || !c.orch.Accept(msg) {
			return nil
		}
		c.swap(msg.Direction)
		return c.orch.Reveal()

	case FadeInMsg, SettledMsg:
		return c.orch.Update(msg)

	case finishMsg:
		err := c.Finish(c.ctx)
		return func() tea.Msg { return FinishedMsg{Err: err} }
	}
	return nil
}

// swap resolves the destination at swap time. A forward swap re-runs the
// gate since the selection may have changed while fading out.
func (c *Controller) swap(dir Direction) {
	from := c.current
	var target StepID
	if dir == Forward {
		next, err := Check(c.registry, from, c.sel)
		if err != nil {
			c.setGateError(err)
			return
		}
		target = next
	} else {
		target = c.registry.Prev(from, c.sel)
	}
	if target == StepNone {
		return
	}
	c.current = target
	c.errMsg = ""
	logger.Debug("Step %s -> %s (%s, %s)", from, target, dir, c.sel)
}

func (c *Controller) setGateError(err error) {
	c.errMsg = GateMessage(err)
	if errors.Is(err, ErrRoutingUnresolved) {
		logger.Warn("Routing table has no next step: %v", err)
		return
	}
	logger.Debug("Navigation blocked: %v", err)
}

// Finish records completion and asks the host to reload. It only succeeds
// on the terminal step of an open wizard. When the flag cannot be written
// the wizard stays open so the user can retry.
func (c *Controller) Finish(ctx context.Context) error {
	if !c.open {
		return ErrClosed
	}
	if !c.registry.Terminal(c.current) {
		return fmt.Errorf("%w: at %s", ErrNotTerminal, c.current)
	}

	if err := c.store.SetBool(ctx, FirstRunKey, false); err != nil {
		logger.Error("Failed to write first-run flag: %v", err)
		c.errMsg = "could not save onboarding state, please try again"
		return fmt.Errorf("writing first-run flag: %w", err)
	}

	c.Close()
	c.finished = true
	logger.Info("Onboarding finished")

	if c.host == nil {
		return nil
	}
	if err := c.host.Reload(ctx); err != nil {
		return fmt.Errorf("reloading host: %w", err)
	}
	return nil
}

// Current returns the current step.
func (c *Controller) Current() StepID {
	return c.current
}

// Err returns the message to display, or "".
func (c *Controller) Err() string {
	return c.errMsg
}

// IsOpen reports whether a session is active.
func (c *Controller) IsOpen() bool {
	return c.open
}

// Finished reports whether the last session completed.
func (c *Controller) Finished() bool {
	return c.finished
}

// Selection returns a copy of the current selection.
func (c *Controller) Selection() Selection {
	return c.sel.Clone()
}

// Phase returns the transition phase.
func (c *Controller) Phase() Phase {
	return c.orch.Phase()
}

// Registry returns the routing table in use.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// Props builds the render contract for the current step.
func (c *Controller) Props() Props {
	return Props{
		Open:            c.open,
		Finished:        c.finished,
		Step:            c.current,
		Title:           c.current.Title(),
		Index:           c.current.Index(),
		Total:           len(stepOrder),
		Phase:           c.orch.Phase(),
		Visible:         c.orch.Visible(),
		CanGoBack:       c.registry.Prev(c.current, c.sel) != StepNone,
		Terminal:        c.registry.Terminal(c.current),
		UseCases:        c.sel.UseCases(),
		Personalization: c.sel.Personalization,
		DevPreference:   c.sel.DevPreference,
		Error:           c.errMsg,
	}
}
