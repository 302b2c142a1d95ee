package mocks

import (
	"context"

	"notepilot/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Analyze(ctx context.Context, data []byte, filename, contentType string) (*model.UploadResult, error) {
	args := m.Called(ctx, data, filename, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadResult), args.Error(1)
}

type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Normalize(ctx context.Context, raw string) (string, error) {
	args := m.Called(ctx, raw)
	return args.String(0), args.Error(1)
}

func (m *MockAnalysisService) Analyze(ctx context.Context, req model.AnalyzeRequest) (*model.AnalyzeResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalyzeResponse), args.Error(1)
}

type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) ListNotes(ctx context.Context, userID string, notebookID *int64) ([]model.Note, error) {
	args := m.Called(ctx, userID, notebookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockNoteService) CreateNote(ctx context.Context, userID string, in model.NoteInput) (*model.Note, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) UpdateNote(ctx context.Context, userID string, id int64, in model.NoteInput) (*model.Note, error) {
	args := m.Called(ctx, userID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) DeleteNote(ctx context.Context, userID string, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockNoteService) ListNotebooks(ctx context.Context, userID string) ([]model.Notebook, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notebook), args.Error(1)
}

func (m *MockNoteService) CreateNotebook(ctx context.Context, userID, name string) (*model.Notebook, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notebook), args.Error(1)
}

func (m *MockNoteService) RenameNotebook(ctx context.Context, userID string, id int64, name string) (*model.Notebook, error) {
	args := m.Called(ctx, userID, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notebook), args.Error(1)
}

func (m *MockNoteService) DeleteNotebook(ctx context.Context, userID string, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
