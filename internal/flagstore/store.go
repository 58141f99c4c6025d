// Package flagstore persists onboarding flags such as the first-run marker.
//
// Several backends are available; Open picks one by name and wraps it so
// writes are retried before an error reaches the caller.
package flagstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/mark3labs/onboardr/internal/logger"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendNATS   = "nats"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ErrUnknownBackend is returned by Open for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown flag store backend")

// Store is a persistent boolean key-value store.
type Store interface {
	// GetBool returns the stored value and whether the key exists.
	GetBool(ctx context.Context, key string) (value bool, found bool, err error)
	SetBool(ctx context.Context, key string, value bool) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backends lists the backend names in display order.
func Backends() []string {
	return []string{BackendFile, BackendNATS, BackendSQLite, BackendMemory}
}

// ValidBackend reports whether name is a known backend.
func ValidBackend(name string) bool {
	for _, b := range Backends() {
		if strings.EqualFold(name, b) {
			return true
		}
	}
	return false
}

// Options configures Open.
type Options struct {
	Backend string
	DataDir string
	// Attempts is the number of tries for each write. Zero means 3.
	Attempts uint
	// RetryDelay is the base delay between write attempts. Zero means 50ms.
	RetryDelay time.Duration
}

// Open returns the backend named by opts.Backend, rooted at opts.DataDir.
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		s   Store
		err error
	)
	switch strings.ToLower(opts.Backend) {
	case BackendFile, "":
		s = NewFileStore(filepath.Join(opts.DataDir, FileName))
	case BackendNATS:
		s, err = OpenNATS(ctx, filepath.Join(opts.DataDir, "nats"))
	case BackendSQLite:
		s, err = OpenSQLite(opts.DataDir)
	case BackendMemory:
		s = NewMemoryStore()
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownBackend, opts.Backend, strings.Join(Backends(), ", "))
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("Flag store opened: backend=%s dir=%s", opts.Backend, opts.DataDir)
	return WithRetry(s, opts.Attempts, opts.RetryDelay), nil
}

// retrying retries writes on the wrapped store.
type retrying struct {
	Store
	attempts uint
	delay    time.Duration
}

// WithRetry wraps s so SetBool and Delete are attempted up to attempts times.
// Reads are not retried.
func WithRetry(s Store, attempts uint, delay time.Duration) Store {
	if attempts == 0 {
		attempts = 3
	}
	if delay == 0 {
		delay = 50 * time.Millisecond
	}
	return &retrying{Store: s, attempts: attempts, delay: delay}
}

func (r *retrying) SetBool(ctx context.Context, key string, value bool) error {
	return r.do(ctx, "set "+key, func() error {
		return r.Store.SetBool(ctx, key, value)
	})
}

func (r *retrying) Delete(ctx context.Context, key string) error {
	return r.do(ctx, "delete "+key, func() error {
		return r.Store.Delete(ctx, key)
	})
}

func (r *retrying) do(ctx context.Context, op string, fn func() error) error {
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("Flag store %s failed (attempt %d): %v", op, n+1, err)
		}),
	)
}
