// Package migration bootstraps the notes schema on a fresh database.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"notepilot/internal/logging"
)

type step struct {
	name string
	sql  string
}

// Supabase projects usually already carry these tables; every step is idempotent.
var steps = []step{
	{"create_table_notebooks", `CREATE TABLE IF NOT EXISTS notebooks (
  id         BIGINT      GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
  user_id    UUID        NOT NULL,
  name       TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`},
	{"create_table_notes", `CREATE TABLE IF NOT EXISTS notes (
  id          BIGINT      GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
  user_id     UUID        NOT NULL,
  title       TEXT        NOT NULL,
  content     TEXT        NOT NULL DEFAULT '',
  notebook_id BIGINT      REFERENCES notebooks (id) ON DELETE SET NULL,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`},
	{"create_index_notebooks_user_id", `CREATE INDEX IF NOT EXISTS idx_notebooks_user_id ON notebooks (user_id);`},
	{"create_index_notes_user_id_notebook_id", `CREATE INDEX IF NOT EXISTS idx_notes_user_id_notebook_id ON notes (user_id, notebook_id);`},
}

const schemaQuery = "SELECT to_regclass('public.notebooks') IS NOT NULL AND to_regclass('public.notes') IS NOT NULL"

type run struct {
	log   *logging.Logger
	host  string
	start time.Time
}

func (r run) emit(event, status string, fields map[string]any) {
	entry := map[string]any{
		"component":   "database",
		"event":       event,
		"status":      status,
		"db_host":     r.host,
		"duration_ms": time.Since(r.start).Milliseconds(),
	}
	for k, v := range fields {
		entry[k] = v
	}
	r.log.Log(entry)
}

// EnsureMigrated creates the notebooks and notes tables when either is missing.
// All steps run in a single transaction, so a failed step leaves no partial schema.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *logging.Logger, dbHost string) error {
	if log == nil {
		log = logging.Nop()
	}
	r := run{log: log, host: dbHost, start: time.Now()}
	r.emit("db_migration_check", "starting", nil)

	var present bool
	if err := db.QueryRowContext(ctx, schemaQuery).Scan(&present); err != nil {
		err = fmt.Errorf("check schema: %w", err)
		r.emit("db_migration_failed", "error", map[string]any{"error_message": err.Error()})
		return err
	}
	if present {
		r.emit("db_migration_skip", "success", map[string]any{"msg": "schema already exists, skipping migration"})
		return nil
	}

	if err := apply(ctx, db, r); err != nil {
		return err
	}
	r.emit("db_migration_success", "success", map[string]any{"steps": len(steps)})
	return nil
}

func apply(ctx context.Context, db *sql.DB, r run) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		err = fmt.Errorf("begin migration: %w", err)
		r.emit("db_migration_failed", "error", map[string]any{"error_message": err.Error()})
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, s := range steps {
		began := time.Now()
		if _, err := tx.ExecContext(ctx, s.sql); err != nil {
			r.emit("db_migration_failed", "error", map[string]any{
				"migration_step":   s.name,
				"error_message":    err.Error(),
				"step_duration_ms": time.Since(began).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", s.name, err)
		}
		r.emit("db_migration_step", "success", map[string]any{
			"migration_step":   s.name,
			"step_duration_ms": time.Since(began).Milliseconds(),
		})
	}

	if err := tx.Commit(); err != nil {
		err = fmt.Errorf("commit migration: %w", err)
		r.emit("db_migration_failed", "error", map[string]any{"error_message": err.Error()})
		return err
	}
	return nil
}
