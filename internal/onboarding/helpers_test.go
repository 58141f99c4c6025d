package onboarding

import (
	"context"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory FlagStore with injectable failures.
type memStore struct {
	mu       sync.Mutex
	values   map[string]bool
	getErr   error
	setErr   error
	setCalls int
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]bool)}
}

func (s *memStore) GetBool(_ context.Context, key string) (bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return false, false, s.getErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memStore) SetBool(_ context.Context, key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalls++
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

// reloadCounter records host reloads.
type reloadCounter struct {
	calls int
	err   error
}

func (r *reloadCounter) Reload(context.Context) error {
	r.calls++
	return r.err
}

// openController returns an open controller with instant fades.
func openController(t *testing.T, store *memStore, host Host, opts ...Option) *Controller {
	t.Helper()
	opts = append([]Option{WithFadeDuration(0)}, opts...)
	c := New(store, host, opts...)
	opened, err := c.Open(context.Background())
	require.NoError(t, err)
	require.True(t, opened)
	return c
}

// settle runs cmd and every follow-up command, returning the last message.
func settle(c *Controller, cmd tea.Cmd) tea.Msg {
	var last tea.Msg
	for cmd != nil {
		last = cmd()
		cmd = c.Update(last)
	}
	return last
}

// next and prev settle a single navigation request.
func next(c *Controller) tea.Msg { return settle(c, c.GoNext()) }
func prev(c *Controller) tea.Msg { return settle(c, c.GoPrev()) }

// walkTo drives c forward until it reaches step or stops moving.
func walkTo(t *testing.T, c *Controller, step StepID) {
	t.Helper()
	for c.Current() != step {
		before := c.Current()
		next(c)
		require.NotEqual(t, before, c.Current(), "stuck at %s (error %q) walking to %s", before, c.Err(), step)
	}
}
