package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"traychat/model"
)

// GeminiAdapter implements model.Adapter against the Gemini generateContent
// API. Gemini authenticates with a "?key=" query parameter instead of a
// header, and addresses models as path segments, so model IDs are
// percent-escaped into the URL.
type GeminiAdapter struct {
	baseURL string
	apiKey  string
}

// NewGeminiAdapter creates a Gemini adapter. An API key is required.
func NewGeminiAdapter(baseURL, apiKey string) (*GeminiAdapter, error) {
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	return &GeminiAdapter{baseURL: baseURL, apiKey: apiKey}, nil
}

type geminiModelsResponse struct {
	Models []struct {
		Name                       string   `json:"name"` // "models/gemini-2.5-pro"
		DisplayName                string   `json:"displayName"`
		SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
	} `json:"models"`
}

// ListModels implements model.Adapter.ListModels. Only models supporting
// generateContent are chat-selectable; the "models/" name prefix is stripped
// to form the ID.
func (a *GeminiAdapter) ListModels(ctx context.Context) ([]model.Option, error) {
	endpoint := a.baseURL + "/v1beta/models?key=" + url.QueryEscape(a.apiKey)

	body, err := doJSON(ctx, listClient, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("listing Gemini models: %w", err)
	}

	var resp geminiModelsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil
	}

	var options []model.Option
	for _, m := range resp.Models {
		if !supportsGenerateContent(m.SupportedGenerationMethods) {
			continue
		}
		id := strings.TrimPrefix(m.Name, "models/")
		name := m.DisplayName
		if name == "" {
			name = id
		}
		options = append(options, model.Option{
			Provider:    model.ProviderGemini,
			ID:          id,
			DisplayName: name,
		})
	}

	return options, nil
}

func supportsGenerateContent(methods []string) bool {
	for _, m := range methods {
		if m == "generateContent" {
			return true
		}
	}
	return false
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *geminiBlobPart `json:"inline_data,omitempty"`
}

type geminiBlobPart struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// SendMessage implements model.Adapter.SendMessage via
// POST /v1beta/models/{id}:generateContent. Assistant turns map to role
// "model"; everything else is "user".
func (a *GeminiAdapter) SendMessage(ctx context.Context, modelID string, history []model.Message, text string, images []model.ImageAttachment) (string, error) {
	endpoint := a.baseURL + "/v1beta/models/" + url.PathEscape(modelID) +
		":generateContent?key=" + url.QueryEscape(a.apiKey)
	if _, err := url.Parse(endpoint); err != nil {
		return "", fmt.Errorf("composing Gemini URL for model %q: %w", modelID, err)
	}

	contents := make([]geminiContent, 0, len(history)+1)
	for _, m := range history {
		role := "user"
		if m.Role == model.RoleAssistant {
			role = "model"
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: m.Content}},
		})
	}

	parts := []geminiPart{{Text: text}}
	for _, img := range images {
		parts = append(parts, geminiPart{
			InlineData: &geminiBlobPart{MimeType: img.MimeType, Data: img.Base64},
		})
	}
	contents = append(contents, geminiContent{Role: "user", Parts: parts})

	body, err := doJSON(ctx, sendClient, http.MethodPost, endpoint, nil, geminiRequest{Contents: contents})
	if err != nil {
		return "", fmt.Errorf("Gemini generateContent: %w", err)
	}

	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.NoResponse, nil
	}
	if len(resp.Candidates) == 0 {
		return model.NoResponse, nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	if sb.Len() == 0 {
		return model.NoResponse, nil
	}

	return sb.String(), nil
}
