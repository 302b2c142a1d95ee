package postgres

import (
	"context"
	"database/sql"

	"notepilot/internal/model"
	"notepilot/internal/repository"
)

// NotePostgres is a PostgreSQL implementation of repository.NoteRepository.
type NotePostgres struct {
	db *sql.DB
}

// NewNotePostgres creates a new NotePostgres repository.
func NewNotePostgres(db *sql.DB) *NotePostgres {
	return &NotePostgres{db: db}
}

var _ repository.NoteRepository = (*NotePostgres)(nil)

const noteColumns = `id, user_id, title, content, notebook_id, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(s rowScanner) (*model.Note, error) {
	var (
		n          model.Note
		notebookID sql.NullInt64
	)
	if err := s.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &notebookID, &n.CreatedAt); err != nil {
		return nil, err
	}
	if notebookID.Valid {
		id := notebookID.Int64
		n.NotebookID = &id
	}
	return &n, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

// List returns the user's notes ordered by id descending.
func (r *NotePostgres) List(ctx context.Context, userID string, notebookID *int64) ([]model.Note, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if notebookID == nil {
		const q = `SELECT ` + noteColumns + ` FROM notes WHERE user_id = $1 ORDER BY id DESC`
		rows, err = r.db.QueryContext(ctx, q, userID)
	} else {
		const q = `SELECT ` + noteColumns + ` FROM notes WHERE user_id = $1 AND notebook_id = $2 ORDER BY id DESC`
		rows, err = r.db.QueryContext(ctx, q, userID, *notebookID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new note row and returns the stored record.
func (r *NotePostgres) Create(ctx context.Context, note *model.Note) (*model.Note, error) {
	const q = `
		INSERT INTO notes (user_id, title, content, notebook_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + noteColumns
	row := r.db.QueryRowContext(ctx, q, note.UserID, note.Title, note.Content, nullableID(note.NotebookID))
	return scanNote(row)
}

// Update returns sql.ErrNoRows when the note does not exist or belongs to someone else.
// A nil NotebookID keeps the stored notebook.
func (r *NotePostgres) Update(ctx context.Context, note *model.Note) (*model.Note, error) {
	const q = `
		UPDATE notes SET title = $1, content = $2, notebook_id = COALESCE($3, notebook_id)
		WHERE id = $4 AND user_id = $5
		RETURNING ` + noteColumns
	row := r.db.QueryRowContext(ctx, q, note.Title, note.Content, nullableID(note.NotebookID), note.ID, note.UserID)
	return scanNote(row)
}

// Delete returns sql.ErrNoRows when nothing was deleted.
func (r *NotePostgres) Delete(ctx context.Context, userID string, id int64) error {
	const q = `DELETE FROM notes WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
