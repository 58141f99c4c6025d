package onboarding

import (
	"context"
	"sync"

	tea "charm.land/bubbletea/v2"
)

// Driver runs a Controller without a Bubbletea program. Each call runs the
// resulting command chain to completion before returning, so transitions
// settle synchronously. Safe for concurrent use.
//
// Build the controller with a short fade duration: every transition waits
// for the fade twice.
type Driver struct {
	mu sync.Mutex
	c  *Controller
}

// NewDriver wraps c.
func NewDriver(c *Controller) *Driver {
	return &Driver{c: c}
}

// settle executes cmd and feeds each resulting message back into the
// controller until nothing is left. Returns the error of a finish attempt.
func (d *Driver) settle(cmd tea.Cmd) error {
	var finishErr error
	for cmd != nil {
		msg := cmd()
		if fin, ok := msg.(FinishedMsg); ok {
			finishErr = fin.Err
		}
		cmd = d.c.Update(msg)
	}
	return finishErr
}

// Open starts a session if the first-run flag is absent.
func (d *Driver) Open(ctx context.Context) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.c.Open(ctx)
}

// Close dismisses the wizard.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.c.Close()
}

// Toggle flips a use-case tag.
func (d *Driver) Toggle(tag string) Props {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.c.ToggleUseCase(tag)
	return d.c.Props()
}

// SetPersonalization records the personalization choice.
func (d *Driver) SetPersonalization(v Personalization) Props {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.c.SetPersonalization(v)
	return d.c.Props()
}

// SetDevPreference records the dev preference choice.
func (d *Driver) SetDevPreference(v DevPreference) Props {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.c.SetDevPreference(v)
	return d.c.Props()
}

// Next moves forward, finishing the wizard on the terminal step.
// A blocked move is reported through Props.Error, not as an error.
func (d *Driver) Next() (Props, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	err := d.settle(d.c.GoNext())
	return d.c.Props(), err
}

// Prev moves back one step.
func (d *Driver) Prev() Props {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.settle(d.c.GoPrev())
	return d.c.Props()
}

// Snapshot returns the current props.
func (d *Driver) Snapshot() Props {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.c.Props()
}
