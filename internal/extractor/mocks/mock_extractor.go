package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"notepilot/internal/extractor"
)

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, data []byte, filename, contentType string) (*extractor.Result, error) {
	args := m.Called(ctx, data, filename, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*extractor.Result), args.Error(1)
}
