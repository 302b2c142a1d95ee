package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notepilot/internal/model"
	repoMocks "notepilot/internal/repository/mocks"
)

const userID = "4f9d5c1e-2b7a-4c3e-9a61-0d2f8e7b6a51"

func int64Ptr(v int64) *int64 { return &v }

func newNoteService() (NoteService, *repoMocks.MockNoteRepository, *repoMocks.MockNotebookRepository) {
	notes := new(repoMocks.MockNoteRepository)
	notebooks := new(repoMocks.MockNotebookRepository)
	return NewNoteService(notes, notebooks), notes, notebooks
}

func TestNoteService_ListNotes(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		userID     string
		notebookID *int64
		setupMock  func(m *repoMocks.MockNoteRepository)
		want       []model.Note
		wantErr    error
		wantErrMsg string
	}{
		{
			name:   "all notes",
			userID: userID,
			setupMock: func(m *repoMocks.MockNoteRepository) {
				m.On("List", ctx, userID, (*int64)(nil)).Return([]model.Note{{ID: 2}, {ID: 1}}, nil)
			},
			want: []model.Note{{ID: 2}, {ID: 1}},
		},
		{
			name:       "filtered by notebook, none found",
			userID:     userID,
			notebookID: int64Ptr(7),
			setupMock: func(m *repoMocks.MockNoteRepository) {
				m.On("List", ctx, userID, int64Ptr(7)).Return(nil, nil)
			},
			want: []model.Note{},
		},
		{
			name:      "missing user",
			setupMock: func(m *repoMocks.MockNoteRepository) {},
			wantErr:   ErrUserRequired,
		},
		{
			name:   "repository error",
			userID: userID,
			setupMock: func(m *repoMocks.MockNoteRepository) {
				m.On("List", ctx, userID, (*int64)(nil)).Return(nil, errors.New("connection reset"))
			},
			wantErrMsg: "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, notes, _ := newNoteService()
			tt.setupMock(notes)

			got, err := svc.ListNotes(ctx, tt.userID, tt.notebookID)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			notes.AssertExpectations(t)
		})
	}
}

func TestNoteService_CreateNote(t *testing.T) {
	ctx := context.Background()
	svc, notes, nbs := newNoteService()
	in := model.NoteInput{Title: "Lab 1", Content: "Aim: sum", NotebookID: int64Ptr(3)}

	nbs.On("Get", ctx, userID, int64(3)).Return(&model.Notebook{ID: 3, UserID: userID}, nil).Once()
	notes.On("Create", ctx, &model.Note{
		UserID:     userID,
		Title:      "Lab 1",
		Content:    "Aim: sum",
		NotebookID: int64Ptr(3),
	}).Return(&model.Note{ID: 10, UserID: userID, Title: "Lab 1"}, nil)

	got, err := svc.CreateNote(ctx, userID, in)

	require.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)
	notes.AssertExpectations(t)

	_, err = svc.CreateNote(ctx, "", in)
	assert.ErrorIs(t, err, ErrUserRequired)
	nbs.AssertExpectations(t)
}

func TestNoteService_ForeignNotebook(t *testing.T) {
	ctx := context.Background()
	in := model.NoteInput{Title: "x", NotebookID: int64Ptr(42)}

	t.Run("create", func(t *testing.T) {
		svc, notes, nbs := newNoteService()
		nbs.On("Get", ctx, userID, int64(42)).Return(nil, sql.ErrNoRows)

		_, err := svc.CreateNote(ctx, userID, in)

		assert.ErrorIs(t, err, ErrNotFound)
		notes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("update", func(t *testing.T) {
		svc, notes, nbs := newNoteService()
		nbs.On("Get", ctx, userID, int64(42)).Return(nil, sql.ErrNoRows)

		_, err := svc.UpdateNote(ctx, userID, 5, in)

		assert.ErrorIs(t, err, ErrNotFound)
		notes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("lookup failure is passed through", func(t *testing.T) {
		svc, _, nbs := newNoteService()
		nbs.On("Get", ctx, userID, int64(42)).Return(nil, sql.ErrConnDone)

		_, err := svc.CreateNote(ctx, userID, in)

		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func TestNoteService_UpdateNote(t *testing.T) {
	ctx := context.Background()

	t.Run("auto-save without notebook keeps it", func(t *testing.T) {
		svc, notes, nbs := newNoteService()
		notes.On("Update", ctx, mock.MatchedBy(func(n *model.Note) bool {
			return n.ID == 5 && n.UserID == userID && n.Title == "new" && n.NotebookID == nil
		})).Return(&model.Note{ID: 5, Title: "new", NotebookID: int64Ptr(7)}, nil)

		got, err := svc.UpdateNote(ctx, userID, 5, model.NoteInput{Title: "new"})

		require.NoError(t, err)
		assert.Equal(t, "new", got.Title)
		assert.Equal(t, int64Ptr(7), got.NotebookID)
		nbs.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("move to an owned notebook", func(t *testing.T) {
		svc, notes, nbs := newNoteService()
		nbs.On("Get", ctx, userID, int64(8)).Return(&model.Notebook{ID: 8, UserID: userID}, nil)
		notes.On("Update", ctx, mock.MatchedBy(func(n *model.Note) bool {
			return n.NotebookID != nil && *n.NotebookID == 8
		})).Return(&model.Note{ID: 5, NotebookID: int64Ptr(8)}, nil)

		got, err := svc.UpdateNote(ctx, userID, 5, model.NoteInput{Title: "new", NotebookID: int64Ptr(8)})

		require.NoError(t, err)
		assert.Equal(t, int64Ptr(8), got.NotebookID)
	})

	t.Run("not owned maps to not found", func(t *testing.T) {
		svc, notes, _ := newNoteService()
		notes.On("Update", ctx, mock.Anything).Return(nil, sql.ErrNoRows)

		_, err := svc.UpdateNote(ctx, userID, 5, model.NoteInput{Title: "new"})

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestNoteService_DeleteNote(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"deleted", nil, nil},
		{"missing", sql.ErrNoRows, ErrNotFound},
		{"db error", sql.ErrConnDone, sql.ErrConnDone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, notes, _ := newNoteService()
			notes.On("Delete", ctx, userID, int64(9)).Return(tt.repoErr)

			err := svc.DeleteNote(ctx, userID, 9)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			notes.AssertExpectations(t)
		})
	}
}

func TestNoteService_Notebooks(t *testing.T) {
	ctx := context.Background()

	t.Run("list returns empty slice", func(t *testing.T) {
		svc, _, nbs := newNoteService()
		nbs.On("List", ctx, userID).Return(nil, nil)

		got, err := svc.ListNotebooks(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, []model.Notebook{}, got)
	})

	t.Run("create trims name", func(t *testing.T) {
		svc, _, nbs := newNoteService()
		nbs.On("Create", ctx, &model.Notebook{UserID: userID, Name: "Physics"}).
			Return(&model.Notebook{ID: 1, UserID: userID, Name: "Physics"}, nil)

		got, err := svc.CreateNotebook(ctx, userID, "  Physics ")

		require.NoError(t, err)
		assert.Equal(t, "Physics", got.Name)
		nbs.AssertExpectations(t)
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		svc, _, nbs := newNoteService()

		_, err := svc.CreateNotebook(ctx, userID, "   ")
		assert.ErrorIs(t, err, ErrNameRequired)
		_, err = svc.RenameNotebook(ctx, userID, 1, "")
		assert.ErrorIs(t, err, ErrNameRequired)
		nbs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rename missing", func(t *testing.T) {
		svc, _, nbs := newNoteService()
		nbs.On("Rename", ctx, userID, int64(4), "Chem").Return(nil, sql.ErrNoRows)

		_, err := svc.RenameNotebook(ctx, userID, 4, "Chem")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete missing", func(t *testing.T) {
		svc, _, nbs := newNoteService()
		nbs.On("Delete", ctx, userID, int64(4)).Return(sql.ErrNoRows)

		assert.ErrorIs(t, svc.DeleteNotebook(ctx, userID, 4), ErrNotFound)
	})
}
