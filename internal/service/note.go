package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"notepilot/internal/model"
	"notepilot/internal/repository"
)

var (
	ErrUserRequired = errors.New("user id is required")
	ErrNotFound     = errors.New("not found")
	ErrNameRequired = errors.New("name is required")
)

// NoteService defines the note and notebook use cases of a verified user.
type NoteService interface {
	ListNotes(ctx context.Context, userID string, notebookID *int64) ([]model.Note, error)
	CreateNote(ctx context.Context, userID string, in model.NoteInput) (*model.Note, error)
	UpdateNote(ctx context.Context, userID string, id int64, in model.NoteInput) (*model.Note, error)
	DeleteNote(ctx context.Context, userID string, id int64) error

	ListNotebooks(ctx context.Context, userID string) ([]model.Notebook, error)
	CreateNotebook(ctx context.Context, userID, name string) (*model.Notebook, error)
	RenameNotebook(ctx context.Context, userID string, id int64, name string) (*model.Notebook, error)
	// DeleteNotebook removes the notebook and every note in it.
	DeleteNotebook(ctx context.Context, userID string, id int64) error
}

type noteService struct {
	notes     repository.NoteRepository
	notebooks repository.NotebookRepository
}

// NewNoteService constructs a NoteService.
func NewNoteService(notes repository.NoteRepository, notebooks repository.NotebookRepository) NoteService {
	return &noteService{notes: notes, notebooks: notebooks}
}

func (s *noteService) ListNotes(ctx context.Context, userID string, notebookID *int64) ([]model.Note, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	notes, err := s.notes.List(ctx, userID, notebookID)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []model.Note{}
	}
	return notes, nil
}

// ownNotebook rejects a notebook id that does not belong to the user.
func (s *noteService) ownNotebook(ctx context.Context, userID string, id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := s.notebooks.Get(ctx, userID, *id); err != nil {
		return notFound(err)
	}
	return nil
}

func (s *noteService) CreateNote(ctx context.Context, userID string, in model.NoteInput) (*model.Note, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	if err := s.ownNotebook(ctx, userID, in.NotebookID); err != nil {
		return nil, err
	}
	return s.notes.Create(ctx, &model.Note{
		UserID:     userID,
		Title:      in.Title,
		Content:    in.Content,
		NotebookID: in.NotebookID,
	})
}

// UpdateNote keeps the note's notebook when in.NotebookID is nil.
func (s *noteService) UpdateNote(ctx context.Context, userID string, id int64, in model.NoteInput) (*model.Note, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	if err := s.ownNotebook(ctx, userID, in.NotebookID); err != nil {
		return nil, err
	}
	note, err := s.notes.Update(ctx, &model.Note{
		ID:         id,
		UserID:     userID,
		Title:      in.Title,
		Content:    in.Content,
		NotebookID: in.NotebookID,
	})
	if err != nil {
		return nil, notFound(err)
	}
	return note, nil
}

func (s *noteService) DeleteNote(ctx context.Context, userID string, id int64) error {
	if userID == "" {
		return ErrUserRequired
	}
	return notFound(s.notes.Delete(ctx, userID, id))
}

func (s *noteService) ListNotebooks(ctx context.Context, userID string) ([]model.Notebook, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	nbs, err := s.notebooks.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if nbs == nil {
		nbs = []model.Notebook{}
	}
	return nbs, nil
}

func (s *noteService) CreateNotebook(ctx context.Context, userID, name string) (*model.Notebook, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	return s.notebooks.Create(ctx, &model.Notebook{UserID: userID, Name: name})
}

func (s *noteService) RenameNotebook(ctx context.Context, userID string, id int64, name string) (*model.Notebook, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	nb, err := s.notebooks.Rename(ctx, userID, id, name)
	if err != nil {
		return nil, notFound(err)
	}
	return nb, nil
}

func (s *noteService) DeleteNotebook(ctx context.Context, userID string, id int64) error {
	if userID == "" {
		return ErrUserRequired
	}
	return notFound(s.notebooks.Delete(ctx, userID, id))
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
