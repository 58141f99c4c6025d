package flagstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore checks the behaviour every backend shares.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, found, err := s.GetBool(ctx, "isFirstTimeUser")
	require.NoError(t, err)
	assert.False(t, found, "fresh store has no flags")

	require.NoError(t, s.SetBool(ctx, "isFirstTimeUser", false))
	v, found, err := s.GetBool(ctx, "isFirstTimeUser")
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, v)

	require.NoError(t, s.SetBool(ctx, "isFirstTimeUser", true))
	v, _, err = s.GetBool(ctx, "isFirstTimeUser")
	require.NoError(t, err)
	assert.True(t, v, "overwrite")

	require.NoError(t, s.SetBool(ctx, "other", true))
	require.NoError(t, s.Delete(ctx, "isFirstTimeUser"))
	_, found, err = s.GetBool(ctx, "isFirstTimeUser")
	require.NoError(t, err)
	assert.False(t, found, "deleted")

	v, found, err = s.GetBool(ctx, "other")
	require.NoError(t, err)
	assert.True(t, found && v, "delete leaves other keys")

	assert.NoError(t, s.Delete(ctx, "never-set"), "deleting absent key")
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestOpen_Backends(t *testing.T) {
	for _, backend := range Backends() {
		t.Run(backend, func(t *testing.T) {
			s, err := Open(context.Background(), Options{Backend: backend, DataDir: t.TempDir()})
			require.NoError(t, err)
			defer func() { assert.NoError(t, s.Close()) }()
			exerciseStore(t, s)
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: "etcd", DataDir: t.TempDir()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownBackend))
	assert.Contains(t, err.Error(), "etcd")
}

func TestValidBackend(t *testing.T) {
	assert.True(t, ValidBackend("SQLite"))
	assert.True(t, ValidBackend("file"))
	assert.False(t, ValidBackend("redis"))
}

// flaky fails the first failures writes.
type flaky struct {
	*MemoryStore
	failures int
	calls    int
}

func (f *flaky) SetBool(ctx context.Context, key string, value bool) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("disk busy")
	}
	return f.MemoryStore.SetBool(ctx, key, value)
}

func TestWithRetry_RecoversFromTransientFailure(t *testing.T) {
	inner := &flaky{MemoryStore: NewMemoryStore(), failures: 2}
	s := WithRetry(inner, 3, time.Millisecond)

	require.NoError(t, s.SetBool(context.Background(), "k", false))
	assert.Equal(t, 3, inner.calls)

	_, found, err := s.GetBool(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestWithRetry_ReturnsLastError(t *testing.T) {
	inner := &flaky{MemoryStore: NewMemoryStore(), failures: 10}
	s := WithRetry(inner, 3, time.Millisecond)

	err := s.SetBool(context.Background(), "k", false)
	require.Error(t, err)
	assert.Equal(t, "disk busy", err.Error())
	assert.Equal(t, 3, inner.calls)
}

func TestWithRetry_StopsOnCancelledContext(t *testing.T) {
	inner := &flaky{MemoryStore: NewMemoryStore(), failures: 10}
	s := WithRetry(inner, 5, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.SetBool(ctx, "k", false)
	require.Error(t, err)
	assert.Less(t, inner.calls, 5)
}
