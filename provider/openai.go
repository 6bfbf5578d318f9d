package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"traychat/model"
)

// OpenAIAdapter implements model.Adapter against the OpenAI REST API.
type OpenAIAdapter struct {
	baseURL string
	apiKey  string
}

// NewOpenAIAdapter creates an OpenAI adapter. An API key is required.
func NewOpenAIAdapter(baseURL, apiKey string) (*OpenAIAdapter, error) {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	return &OpenAIAdapter{baseURL: baseURL, apiKey: apiKey}, nil
}

// ListModels implements model.Adapter.ListModels. Only chat-capable model
// families are kept: IDs containing "gpt" or "o" (o1, o3, o4-mini, ...).
func (a *OpenAIAdapter) ListModels(ctx context.Context) ([]model.Option, error) {
	body, err := doJSON(ctx, listClient, http.MethodGet, a.baseURL+"/v1/models", bearerHeader(a.apiKey), nil)
	if err != nil {
		return nil, fmt.Errorf("listing OpenAI models: %w", err)
	}

	var resp chatModelsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil
	}

	var options []model.Option
	for _, m := range resp.Data {
		if !strings.Contains(m.ID, "gpt") && !strings.Contains(m.ID, "o") {
			continue
		}
		options = append(options, model.Option{
			Provider:    model.ProviderOpenAI,
			ID:          m.ID,
			DisplayName: m.ID,
		})
	}

	return options, nil
}

// SendMessage implements model.Adapter.SendMessage via POST /v1/chat/completions.
func (a *OpenAIAdapter) SendMessage(ctx context.Context, modelID string, history []model.Message, text string, images []model.ImageAttachment) (string, error) {
	payload := chatCompletionsBody(modelID, history, text, images)

	body, err := doJSON(ctx, sendClient, http.MethodPost, a.baseURL+"/v1/chat/completions", bearerHeader(a.apiKey), payload)
	if err != nil {
		return "", fmt.Errorf("OpenAI chat completion: %w", err)
	}

	return parseChatCompletions(body), nil
}
