// Package sqlite implements the local, schema-versioned store on top of an
// embedded SQLite database. Collection repositories live in subpackages and
// share the handle, querier and transaction manager defined here.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Options configures Open.
type Options struct {
	Path        string
	BusyTimeout time.Duration
	Seed        bool
}

// Store is an explicit handle to one local database file.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open creates or opens the database at opts.Path, applies pending
// migrations and, when opts.Seed is set, inserts the demonstration records
// on first run.
//
// A database written by a newer schema than this binary knows is refused
// with *VersionError; the caller must reset the store to continue.
func Open(ctx context.Context, opts Options, log *slog.Logger) (*Store, error) {
	log = log.With("adapter", "sqlite")

	db, err := sql.Open("sqlite3", dsn(opts))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := migrate(ctx, db, log); err != nil {
		db.Close()
		return nil, err
	}

	// SQLite has a single writer; one connection keeps every statement
	// ordered and avoids SQLITE_BUSY between our own goroutines.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, log: log}

	if opts.Seed {
		if err := s.seed(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("seed database: %w", err)
		}
	}

	log.InfoContext(ctx, "store opened", slog.String("path", opts.Path))
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying *sql.DB for repositories.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Reset removes the database file and its WAL side files. The store must
// be closed first.
func Reset(path string) error {
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", p, err)
		}
	}
	return nil
}

// dsn encodes the pragmas into the connection string so that every
// connection the pool opens gets them, not only the first one.
func dsn(opts Options) string {
	busy := opts.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	return fmt.Sprintf(
		"file:%s?_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=%d",
		opts.Path, busy.Milliseconds(),
	)
}
