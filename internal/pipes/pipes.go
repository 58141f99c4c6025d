// Package pipes writes screenpipe pipe schedules (pipe.json).
package pipes

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aymanbagabas/go-udiff"
	"github.com/gosimple/slug"
	"github.com/mark3labs/onboardr/internal/logger"
)

// PipelinePath is the pipe endpoint invoked on every tick.
const PipelinePath = "/api/pipeline"

// FileName is the pipe configuration file inside a pipe directory.
const FileName = "pipe.json"

// ErrInvalidInterval is returned for intervals that are not a whole number
// of minutes between 1 and 59.
var ErrInvalidInterval = errors.New("interval must be a whole number of minutes between 1m and 59m")

// Cron is one scheduled call.
type Cron struct {
	Path     string `json:"path"`
	Schedule string `json:"schedule"`
}

// Config is the content of pipe.json.
type Config struct {
	Crons []Cron `json:"crons"`
}

// Schedule returns the six-field cron expression firing every interval.
func Schedule(interval time.Duration) (string, error) {
	if interval%time.Minute != 0 {
		return "", fmt.Errorf("%w: got %s", ErrInvalidInterval, interval)
	}
	minutes := int(interval / time.Minute)
	if minutes < 1 || minutes > 59 {
		return "", fmt.Errorf("%w: got %s", ErrInvalidInterval, interval)
	}
	return fmt.Sprintf("0 */%d * * * *", minutes), nil
}

// Render returns the pipe.json body for interval.
func Render(interval time.Duration) ([]byte, error) {
	schedule, err := Schedule(interval)
	if err != nil {
		return nil, err
	}
	cfg := Config{Crons: []Cron{{Path: PipelinePath, Schedule: schedule}}}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling pipe config: %w", err)
	}
	return append(data, '\n'), nil
}

// Path returns <root>/pipes/<slug(name)>/pipe.json.
func Path(root, name string) (string, error) {
	s := slug.Make(name)
	if s == "" {
		return "", fmt.Errorf("pipe name %q has no usable characters", name)
	}
	return filepath.Join(root, "pipes", s, FileName), nil
}

// Preview returns a unified diff between the current pipe.json (empty if
// missing) and the one Write would produce. The diff is empty when nothing
// would change.
func Preview(root, name string, interval time.Duration) (string, error) {
	path, err := Path(root, name)
	if err != nil {
		return "", err
	}
	next, err := Render(interval)
	if err != nil {
		return "", err
	}

	current, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	return udiff.Unified(path, path, string(current), string(next)), nil
}

// Write stores the schedule and returns the file path.
func Write(root, name string, interval time.Duration) (string, error) {
	path, err := Path(root, name)
	if err != nil {
		return "", err
	}
	data, err := Render(interval)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating pipe directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing pipe config: %w", err)
	}

	logger.Info("Pipe schedule saved to %s", path)
	return path, nil
}

// Read loads an existing pipe.json.
func Read(root, name string) (*Config, error) {
	path, err := Path(root, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pipe config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}
