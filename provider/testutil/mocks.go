package testutil

import (
	"context"

	"traychat/model"
)

// MockAdapter implements model.Adapter for testing
type MockAdapter struct {
	// Configurable responses
	ListModelsFunc  func(ctx context.Context) ([]model.Option, error)
	SendMessageFunc func(ctx context.Context, modelID string, history []model.Message, text string, images []model.ImageAttachment) (string, error)
}

// NewMockAdapter creates a mock adapter with default implementations
func NewMockAdapter() *MockAdapter {
	mock := &MockAdapter{}
	mock.ListModelsFunc = mock.defaultListModels
	mock.SendMessageFunc = mock.defaultSendMessage
	return mock
}

func (m *MockAdapter) defaultListModels(ctx context.Context) ([]model.Option, error) {
	return []model.Option{
		{Provider: model.ProviderOpenAI, ID: "mock-model-1", DisplayName: "mock-model-1"},
		{Provider: model.ProviderOpenAI, ID: "mock-model-2", DisplayName: "mock-model-2"},
	}, nil
}

func (m *MockAdapter) defaultSendMessage(ctx context.Context, modelID string, history []model.Message, text string, images []model.ImageAttachment) (string, error) {
	return "Mock response", nil
}

func (m *MockAdapter) ListModels(ctx context.Context) ([]model.Option, error) {
	return m.ListModelsFunc(ctx)
}

func (m *MockAdapter) SendMessage(ctx context.Context, modelID string, history []model.Message, text string, images []model.ImageAttachment) (string, error) {
	return m.SendMessageFunc(ctx, modelID, history, text, images)
}

// FixedModels returns a ListModels func that always yields the given options.
func FixedModels(options ...model.Option) func(context.Context) ([]model.Option, error) {
	return func(context.Context) ([]model.Option, error) {
		return options, nil
	}
}
