// Package testhelper opens isolated SQLite stores for integration tests and
// inserts fixture rows with plain SQL, independent of the repositories.
package testhelper

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/ycsite/siteops/internal/adapter/sqlite"
)

// SetupTestDB opens a fresh, migrated, unseeded store in t.TempDir().
// The store is closed via t.Cleanup.
func SetupTestDB(t *testing.T) *sqlite.Store {
	t.Helper()
	return open(t, false)
}

// SetupSeededDB is SetupTestDB with the demonstration records inserted.
func SetupSeededDB(t *testing.T) *sqlite.Store {
	t.Helper()
	return open(t, true)
}

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func open(t *testing.T, seed bool) *sqlite.Store {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := sqlite.Open(ctx, sqlite.Options{
		Path: filepath.Join(t.TempDir(), "siteops.db"),
		Seed: seed,
	}, Logger())
	if err != nil {
		t.Fatalf("testhelper: open store: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
	})

	return store
}
