package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"traychat/model"
)

// OpenRouterAdapter implements model.Adapter against the OpenRouter API,
// which is chat-completions compatible. The free variant sends no
// Authorization header at all and keeps only zero-cost models.
type OpenRouterAdapter struct {
	baseURL string
	apiKey  string
	free    bool
}

// NewOpenRouterAdapter creates a keyed OpenRouter adapter.
func NewOpenRouterAdapter(baseURL, apiKey string) (*OpenRouterAdapter, error) {
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenRouter API key is required")
	}
	return &OpenRouterAdapter{baseURL: baseURL, apiKey: apiKey}, nil
}

// NewOpenRouterFreeAdapter creates the keyless free-tier adapter.
func NewOpenRouterFreeAdapter(baseURL string) *OpenRouterAdapter {
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	return &OpenRouterAdapter{baseURL: baseURL, free: true}
}

func (a *OpenRouterAdapter) header() http.Header {
	if a.free {
		return http.Header{}
	}
	return bearerHeader(a.apiKey)
}

func (a *OpenRouterAdapter) provider() model.Provider {
	if a.free {
		return model.ProviderOpenRouterFree
	}
	return model.ProviderOpenRouter
}

// ListModels implements model.Adapter.ListModels. The free variant keeps only
// entries with a ":free" ID suffix or zero prompt/completion pricing.
func (a *OpenRouterAdapter) ListModels(ctx context.Context) ([]model.Option, error) {
	body, err := doJSON(ctx, listClient, http.MethodGet, a.baseURL+"/api/v1/models", a.header(), nil)
	if err != nil {
		return nil, fmt.Errorf("listing OpenRouter models: %w", err)
	}

	var resp chatModelsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil
	}

	var options []model.Option
	for _, m := range resp.Data {
		if a.free && !isFreeModel(m.ID, m.Pricing.Prompt, m.Pricing.Completion) {
			continue
		}
		name := m.Name
		if name == "" {
			name = m.ID
		}
		options = append(options, model.Option{
			Provider:    a.provider(),
			ID:          m.ID,
			DisplayName: name,
		})
	}

	return options, nil
}

func isFreeModel(id, promptPrice, completionPrice string) bool {
	return strings.Contains(strings.ToLower(id), ":free") ||
		promptPrice == "0" || completionPrice == "0"
}

// SendMessage implements model.Adapter.SendMessage via POST /api/v1/chat/completions.
func (a *OpenRouterAdapter) SendMessage(ctx context.Context, modelID string, history []model.Message, text string, images []model.ImageAttachment) (string, error) {
	payload := chatCompletionsBody(modelID, history, text, images)

	body, err := doJSON(ctx, sendClient, http.MethodPost, a.baseURL+"/api/v1/chat/completions", a.header(), payload)
	if err != nil {
		return "", fmt.Errorf("OpenRouter chat completion: %w", err)
	}

	return parseChatCompletions(body), nil
}
