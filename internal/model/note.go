package model

import "time"

// Note is a user's note as stored in the notes table.
// UserID always comes from the verified bearer token, never from the client.
type Note struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	NotebookID *int64    `json:"notebook_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// NoteInput is the client-supplied part of a note.
type NoteInput struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	NotebookID *int64 `json:"notebook_id"`
}

// Notebook groups notes of one user.
type Notebook struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
