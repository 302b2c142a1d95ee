package mocks

import (
	"context"

	"notepilot/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockNotebookRepository struct {
	mock.Mock
}

func (m *MockNotebookRepository) List(ctx context.Context, userID string) ([]model.Notebook, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notebook), args.Error(1)
}

func (m *MockNotebookRepository) Get(ctx context.Context, userID string, id int64) (*model.Notebook, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notebook), args.Error(1)
}

func (m *MockNotebookRepository) Create(ctx context.Context, nb *model.Notebook) (*model.Notebook, error) {
	args := m.Called(ctx, nb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notebook), args.Error(1)
}

func (m *MockNotebookRepository) Rename(ctx context.Context, userID string, id int64, name string) (*model.Notebook, error) {
	args := m.Called(ctx, userID, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notebook), args.Error(1)
}

func (m *MockNotebookRepository) Delete(ctx context.Context, userID string, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
