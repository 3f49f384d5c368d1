package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"

	"github.com/ycsite/siteops/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// VersionError reports a database written by a newer schema than the
// embedded migrations describe.
type VersionError struct {
	DBVersion    int64
	KnownVersion int64
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("database schema version %d is newer than supported version %d; reset the local store",
		e.DBVersion, e.KnownVersion)
}

func (e *VersionError) Unwrap() error { return domain.ErrSchemaVersion }

func newProvider(db *sql.DB) (*goose.Provider, error) {
	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migrations fs: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("create migration provider: %w", err)
	}
	return provider, nil
}

// migrate applies pending migrations. Versions only move forward; a database
// ahead of the binary is refused.
func migrate(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	provider, err := newProvider(db)
	if err != nil {
		return err
	}

	current, err := provider.GetDBVersion(ctx)
	if err != nil && !errors.Is(err, database.ErrVersionNotFound) {
		return fmt.Errorf("read schema version: %w", err)
	}

	known := latestVersion(provider)
	if current > known {
		return &VersionError{DBVersion: current, KnownVersion: known}
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, r := range results {
		log.InfoContext(ctx, "migration applied",
			slog.Int64("version", r.Source.Version),
			slog.Duration("duration", r.Duration),
		)
	}
	return nil
}

func latestVersion(provider *goose.Provider) int64 {
	var latest int64
	for _, src := range provider.ListSources() {
		if src.Version > latest {
			latest = src.Version
		}
	}
	return latest
}

// SchemaVersion returns the newest migration version embedded in the binary.
func SchemaVersion() (int64, error) {
	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return 0, err
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return 0, err
	}
	var latest int64
	for _, e := range entries {
		v, err := goose.NumericComponent(e.Name())
		if err != nil {
			continue
		}
		if v > latest {
			latest = v
		}
	}
	return latest, nil
}
