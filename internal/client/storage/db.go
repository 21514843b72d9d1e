// Package storage opens the on-device sqlite database and wires up the
// local repositories.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Anandrajbgp/Noteflow/internal/client/migrations"
	"github.com/Anandrajbgp/Noteflow/internal/client/repositories/kv"
	"github.com/Anandrajbgp/Noteflow/internal/client/repositories/notes"
	"github.com/Anandrajbgp/Noteflow/internal/client/repositories/tasks"
	"github.com/Anandrajbgp/Noteflow/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Repositories bundles the local stores backed by one sqlite database.
type Repositories struct {
	Notes notes.Repository
	Tasks tasks.Repository
	KV    kv.Repository
	DB    *sql.DB
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// WipeOwner removes every record an owner has on this device, notes and
// tasks together in one transaction. Used when an account is unlinked
// from the device; sync state on the backend is untouched.
func WipeOwner(ctx context.Context, db *sql.DB, ownerKey string) error {
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE owner_key=?`, ownerKey); err != nil {
			return fmt.Errorf("wiping notes: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE owner_key=?`, ownerKey); err != nil {
			return fmt.Errorf("wiping tasks: %w", err)
		}
		return nil
	})
}

// Open opens (creating if needed) the local database at dsn, migrates it,
// and returns the repository set. The caller owns closing Repositories.DB.
func Open(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Notes: notes.NewSQLiteRepository(db),
		Tasks: tasks.NewSQLiteRepository(db),
		KV:    kv.NewSQLiteRepository(db),
		DB:    db,
	}, nil
}
