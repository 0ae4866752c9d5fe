// Package sqlite opens the campaign database that holds the status catalog
// and the player/NPC roster.
package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/KirkDiggler/rpg-initiative/internal/errors"
	"github.com/KirkDiggler/rpg-initiative/internal/sqlite/migrations"
)

// Open opens (creating if needed) the SQLite database at path and applies
// the embedded migrations.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidArgument("sqlite path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "sqlite: open")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "sqlite: ping")
	}
	if err := ApplyMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// ApplyMigrations runs every embedded *.sql file once, in name order,
// recording applied files in schema_migrations.
func ApplyMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`); err != nil {
		return errors.Wrapf(err, "sqlite: ensure migration table")
	}

	files, err := migrations.Files()
	if err != nil {
		return errors.Wrapf(err, "sqlite: read migrations")
	}

	for _, file := range files {
		var applied int
		if err := db.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM schema_migrations WHERE name = ?`, file.Name,
		).Scan(&applied); err != nil {
			return errors.Wrapf(err, "sqlite: check migration %s", file.Name)
		}
		if applied > 0 {
			continue
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return errors.Wrapf(err, "sqlite: begin migration %s", file.Name)
		}
		if _, err := tx.ExecContext(ctx, file.SQL); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "sqlite: exec migration %s", file.Name)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (name, applied_at) VALUES (?, strftime('%s','now'))`, file.Name,
		); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "sqlite: record migration %s", file.Name)
		}
		if err := tx.Commit(); err != nil {
			return errors.Wrapf(err, "sqlite: commit migration %s", file.Name)
		}
	}

	return nil
}
