package flagstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mark3labs/onboardr/internal/logger"
)

// FileName is the flag file created inside the data directory.
const FileName = "onboarding.json"

// FileStore keeps flags as a JSON object in a single file. The file is read
// on every access so edits from other processes are seen.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by path. The file and its directory
// are created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) GetBool(_ context.Context, key string) (bool, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	flags, err := f.load()
	if err != nil {
		return false, false, err
	}
	v, ok := flags[key]
	return v, ok, nil
}

func (f *FileStore) SetBool(_ context.Context, key string, value bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	flags, err := f.load()
	if err != nil {
		return err
	}
	flags[key] = value
	return f.save(flags)
}

func (f *FileStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	flags, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := flags[key]; !ok {
		return nil
	}
	delete(flags, key)
	return f.save(flags)
}

func (f *FileStore) Close() error { return nil }

// load returns an empty map when the file does not exist yet.
func (f *FileStore) load() (map[string]bool, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading flag file: %w", err)
	}

	flags := map[string]bool{}
	if len(data) == 0 {
		return flags, nil
	}
	if err := json.Unmarshal(data, &flags); err != nil {
		return nil, fmt.Errorf("parsing flag file %s: %w", f.path, err)
	}
	return flags, nil
}

// save writes through a temp file and rename so readers never see a
// partially written file.
func (f *FileStore) save(flags map[string]bool) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(flags, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling flags: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".onboarding-*.json")
	if err != nil {
		return fmt.Errorf("creating temp flag file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing flag file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing flag file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replacing flag file: %w", err)
	}

	logger.Debug("Flags saved to %s", f.path)
	return nil
}
