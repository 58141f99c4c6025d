package flagstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DBName is the SQLite database created inside the data directory.
const DBName = "onboarding.db"

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// SQLiteStore keeps flags in a SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) dir/onboarding.db.
func OpenSQLite(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("flagstore: create data dir: %w", err)
	}

	db, err := openDB("sqlite", filepath.Join(dir, DBName))
	if err != nil {
		return nil, fmt.Errorf("flagstore: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("flagstore: pragma %q: %w", p, err)
		}
	}

	const schema = `CREATE TABLE IF NOT EXISTS flags (
		key        TEXT PRIMARY KEY,
		value      INTEGER NOT NULL,
		updated_at TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("flagstore: migration: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) GetBool(ctx context.Context, key string) (bool, bool, error) {
	var v int64
	err := s.db.QueryRowContext(ctx, "SELECT value FROM flags WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("flagstore: get %s: %w", key, err)
	}
	return v != 0, true, nil
}

func (s *SQLiteStore) SetBool(ctx context.Context, key string, value bool) error {
	n := 0
	if value {
		n = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO flags (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, n, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("flagstore: set %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM flags WHERE key = ?", key); err != nil {
		return fmt.Errorf("flagstore: delete %s: %w", key, err)
	}
	return nil
}

// UpdatedAt returns when key was last written.
func (s *SQLiteStore) UpdatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT updated_at FROM flags WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("flagstore: updated_at %s: %w", key, err)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("flagstore: parse updated_at: %w", err)
	}
	return t, true, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
