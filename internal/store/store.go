package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"forge/internal/logging"
)

// Config controls where and how the Index Store's backing file is
// created.
type Config struct {
	// Dir overrides the directory the index file is created under. If
	// empty, os.TempDir() is used (spec §6 "On-disk layout").
	Dir string
}

// Store is the Index Store: a single-writer SQLite database
// implementing the schema of spec §4.5. All access goes through one
// pooled connection, so reads and writes are serialized. The file name
// carries only the process id, so two Stores opened in one process
// with the same Dir share one file; the file is removed on Close.
type Store struct {
	db      *sql.DB
	path    string
	writeMu sync.Mutex
}

// Open creates a fresh, process-specific SQLite file and initializes
// its schema. The file is named to include the process id so
// concurrent instances never collide, and is opened with WAL
// journaling and NORMAL synchronous durability — losing the index on
// crash is an accepted tradeoff for the speed it buys (spec §6).
func Open(cfg Config) (*Store, error) {
	timer := logging.StartTimer(logging.CategoryStore, "store open")
	defer timer.Stop()

	dir := cfg.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create dir %s: %w", dir, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("forge-index-%d.db", os.Getpid()))

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			logging.Get(logging.CategoryStore).Warn("pragma failed %q: %v", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}

	logging.Get(logging.CategoryStore).Info("opened index store at %s", path)
	return &Store{db: db, path: path}, nil
}

// Close closes the database handle and removes the backing file. On
// clean shutdown the file is removed per spec §9; a crash leaves it
// for the OS temp-dir janitor to reclaim.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if rmErr := os.Remove(s.path); rmErr != nil && !os.IsNotExist(rmErr) {
		logging.Get(logging.CategoryStore).Warn("failed to remove index file %s: %v", s.path, rmErr)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		os.Remove(s.path + suffix)
	}
	return err
}

// Path returns the on-disk location of the index file.
func (s *Store) Path() string {
	return s.path
}
