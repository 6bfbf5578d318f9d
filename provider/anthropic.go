package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"traychat/model"
)

const (
	anthropicVersion   = "2023-06-01"
	anthropicMaxTokens = 1200
)

// AnthropicAdapter implements model.Adapter against the Anthropic Messages API.
type AnthropicAdapter struct {
	baseURL string
	apiKey  string
}

// NewAnthropicAdapter creates an Anthropic adapter. An API key is required.
func NewAnthropicAdapter(baseURL, apiKey string) (*AnthropicAdapter, error) {
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}
	return &AnthropicAdapter{baseURL: baseURL, apiKey: apiKey}, nil
}

func (a *AnthropicAdapter) header() http.Header {
	h := http.Header{}
	h.Set("x-api-key", a.apiKey)
	h.Set("anthropic-version", anthropicVersion)
	return h
}

type anthropicModelsResponse struct {
	Data []struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	} `json:"data"`
}

// ListModels implements model.Adapter.ListModels via GET /v1/models.
func (a *AnthropicAdapter) ListModels(ctx context.Context) ([]model.Option, error) {
	body, err := doJSON(ctx, listClient, http.MethodGet, a.baseURL+"/v1/models", a.header(), nil)
	if err != nil {
		return nil, fmt.Errorf("listing Anthropic models: %w", err)
	}

	var resp anthropicModelsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil
	}

	var options []model.Option
	for _, m := range resp.Data {
		name := m.DisplayName
		if name == "" {
			name = m.ID
		}
		options = append(options, model.Option{
			Provider:    model.ProviderAnthropic,
			ID:          m.ID,
			DisplayName: name,
		})
	}

	return options, nil
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string for history turns, []anthropicBlock for the new turn
}

type anthropicBlock struct {
	Type   string           `json:"type"`
	Text   string           `json:"text,omitempty"`
	Source *anthropicSource `json:"source,omitempty"`
}

type anthropicSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// SendMessage implements model.Adapter.SendMessage via POST /v1/messages.
// Images ride along as base64 source blocks on the new user turn.
func (a *AnthropicAdapter) SendMessage(ctx context.Context, modelID string, history []model.Message, text string, images []model.ImageAttachment) (string, error) {
	messages := make([]anthropicMessage, 0, len(history)+1)
	for _, m := range history {
		messages = append(messages, anthropicMessage{Role: m.Role, Content: m.Content})
	}

	blocks := []anthropicBlock{{Type: "text", Text: text}}
	for _, img := range images {
		blocks = append(blocks, anthropicBlock{
			Type: "image",
			Source: &anthropicSource{
				Type:      "base64",
				MediaType: img.MimeType,
				Data:      img.Base64,
			},
		})
	}
	messages = append(messages, anthropicMessage{Role: model.RoleUser, Content: blocks})

	payload := anthropicRequest{
		Model:     modelID,
		MaxTokens: anthropicMaxTokens,
		Messages:  messages,
	}

	body, err := doJSON(ctx, sendClient, http.MethodPost, a.baseURL+"/v1/messages", a.header(), payload)
	if err != nil {
		return "", fmt.Errorf("Anthropic message: %w", err)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.NoResponse, nil
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return model.NoResponse, nil
	}

	return sb.String(), nil
}
