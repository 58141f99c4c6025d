package onboarding

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// DefaultFadeDuration matches the render layer's opacity transition.
const DefaultFadeDuration = 300 * time.Millisecond

// Direction is the way a transition moves through the routing table.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Phase tells the render layer what to show while a transition runs.
type Phase int

const (
	PhaseIdle      Phase = iota // Step fully shown, nothing pending
	PhaseFadingOut              // Outgoing step is fading out, swap pending
	PhaseSwapping               // Step pointer changing, nothing visible
	PhaseFadingIn               // Incoming step is fading in
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFadingOut:
		return "fading-out"
	case PhaseSwapping:
		return "swapping"
	case PhaseFadingIn:
		return "fading-in"
	default:
		return "unknown"
	}
}

// SwapMsg fires once the fade-out delay has elapsed.
type SwapMsg struct {
	Seq       uint64
	Direction Direction
}

// FadeInMsg fires on the tick after a swap.
type FadeInMsg struct {
	Seq uint64
}

// SettledMsg fires once the fade-in has completed.
type SettledMsg struct {
	Seq uint64
}

// Orchestrator sequences hide -> swap -> show. Every Begin supersedes the
// previous transition: messages carrying an older sequence number are
// dropped, so at most one swap is ever pending.
type Orchestrator struct {
	fade    time.Duration
	phase   Phase
	seq     uint64
	pending bool
	dir     Direction
}

// NewOrchestrator creates an orchestrator with the given fade duration.
// Negative durations are treated as zero.
func NewOrchestrator(fade time.Duration) *Orchestrator {
	if fade < 0 {
		fade = 0
	}
	return &Orchestrator{fade: fade}
}

// Begin starts a transition in dir and returns the delayed swap command.
func (o *Orchestrator) Begin(dir Direction) tea.Cmd {
	o.seq++
	o.pending = true
	o.dir = dir
	o.phase = PhaseFadingOut

	seq := o.seq
	return tea.Tick(o.fade, func(time.Time) tea.Msg {
		return SwapMsg{Seq: seq, Direction: dir}
	})
}

// Accept reports whether msg is the current pending swap and, if so, moves
// into the swapping phase. Stale or duplicate swaps return false.
func (o *Orchestrator) Accept(msg SwapMsg) bool {
	if !o.pending || msg.Seq != o.seq {
		return false
	}
	o.pending = false
	o.phase = PhaseSwapping
	return true
}

// Reveal returns the command that starts the fade-in on the next tick.
func (o *Orchestrator) Reveal() tea.Cmd {
	seq := o.seq
	return func() tea.Msg {
		return FadeInMsg{Seq: seq}
	}
}

// Update advances the fade-in and settle phases.
func (o *Orchestrator) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FadeInMsg:
		if msg.Seq != o.seq || o.phase != PhaseSwapping {
			return nil
		}
		o.phase = PhaseFadingIn
		seq := o.seq
		return tea.Tick(o.fade, func(time.Time) tea.Msg {
			return SettledMsg{Seq: seq}
		})
	case SettledMsg:
		if msg.Seq == o.seq && o.phase == PhaseFadingIn {
			o.phase = PhaseIdle
		}
	}
	return nil
}

// Cancel drops any pending swap and shows the current step again.
func (o *Orchestrator) Cancel() {
	o.seq++
	o.pending = false
	o.phase = PhaseIdle
}

// Phase returns the current phase.
func (o *Orchestrator) Phase() Phase {
	return o.phase
}

// Pending reports whether a swap is scheduled.
func (o *Orchestrator) Pending() bool {
	return o.pending
}

// Direction returns the direction of the latest transition.
func (o *Orchestrator) Direction() Direction {
	return o.dir
}

// Visible reports whether the render layer should show the step at full opacity.
func (o *Orchestrator) Visible() bool {
	return o.phase != PhaseFadingOut && o.phase != PhaseSwapping
}

// FadeDuration returns the configured fade duration.
func (o *Orchestrator) FadeDuration() time.Duration {
	return o.fade
}
