package repository

import (
	"context"

	"notepilot/internal/model"
)

// NoteRepository defines data access for notes. Every method is scoped to the
// owning user; rows of other users behave as missing (sql.ErrNoRows).
type NoteRepository interface {
	// List returns the user's notes, newest id first. A non-nil notebookID filters by notebook.
	List(ctx context.Context, userID string, notebookID *int64) ([]model.Note, error)

	// Create inserts a note and returns the stored row.
	Create(ctx context.Context, note *model.Note) (*model.Note, error)

	// Update overwrites title and content of an owned note. notebook_id is
	// changed only when note.NotebookID is non-nil.
	Update(ctx context.Context, note *model.Note) (*model.Note, error)

	// Delete removes an owned note.
	Delete(ctx context.Context, userID string, id int64) error
}

// NotebookRepository defines data access for notebooks.
type NotebookRepository interface {
	// List returns the user's notebooks in creation (id) order.
	List(ctx context.Context, userID string) ([]model.Notebook, error)

	// Get returns an owned notebook, sql.ErrNoRows otherwise.
	Get(ctx context.Context, userID string, id int64) (*model.Notebook, error)

	Create(ctx context.Context, nb *model.Notebook) (*model.Notebook, error)

	Rename(ctx context.Context, userID string, id int64, name string) (*model.Notebook, error)

	// Delete removes the notebook together with all of its notes in one transaction.
	Delete(ctx context.Context, userID string, id int64) error
}
