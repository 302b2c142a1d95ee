package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"notepilot/internal/model"
	"notepilot/internal/repository"
)

// NotebookPostgres is a PostgreSQL implementation of repository.NotebookRepository.
type NotebookPostgres struct {
	db *sql.DB
}

// NewNotebookPostgres creates a new NotebookPostgres repository.
func NewNotebookPostgres(db *sql.DB) *NotebookPostgres {
	return &NotebookPostgres{db: db}
}

var _ repository.NotebookRepository = (*NotebookPostgres)(nil)

const notebookColumns = `id, user_id, name, created_at`

func scanNotebook(s rowScanner) (*model.Notebook, error) {
	var nb model.Notebook
	if err := s.Scan(&nb.ID, &nb.UserID, &nb.Name, &nb.CreatedAt); err != nil {
		return nil, err
	}
	return &nb, nil
}

// List returns the user's notebooks ordered by id ascending.
func (r *NotebookPostgres) List(ctx context.Context, userID string) ([]model.Notebook, error) {
	const q = `SELECT ` + notebookColumns + ` FROM notebooks WHERE user_id = $1 ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Notebook, 0)
	for rows.Next() {
		nb, err := scanNotebook(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *nb)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns sql.ErrNoRows when the notebook is missing or not owned.
func (r *NotebookPostgres) Get(ctx context.Context, userID string, id int64) (*model.Notebook, error) {
	const q = `SELECT ` + notebookColumns + ` FROM notebooks WHERE id = $1 AND user_id = $2`
	return scanNotebook(r.db.QueryRowContext(ctx, q, id, userID))
}

// Create inserts a notebook and returns the stored row.
func (r *NotebookPostgres) Create(ctx context.Context, nb *model.Notebook) (*model.Notebook, error) {
	const q = `INSERT INTO notebooks (user_id, name) VALUES ($1, $2) RETURNING ` + notebookColumns
	return scanNotebook(r.db.QueryRowContext(ctx, q, nb.UserID, nb.Name))
}

// Rename returns sql.ErrNoRows when the notebook is missing or not owned.
func (r *NotebookPostgres) Rename(ctx context.Context, userID string, id int64, name string) (*model.Notebook, error) {
	const q = `UPDATE notebooks SET name = $1 WHERE id = $2 AND user_id = $3 RETURNING ` + notebookColumns
	return scanNotebook(r.db.QueryRowContext(ctx, q, name, id, userID))
}

// Delete removes the notebook's notes first, then the notebook, atomically.
func (r *NotebookPostgres) Delete(ctx context.Context, userID string, id int64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM notes WHERE notebook_id = $1 AND user_id = $2`, id, userID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM notebooks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if err = requireAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}
