package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"traychat/model"
)

func TestNewGeminiAdapterRequiresKey(t *testing.T) {
	if _, err := NewGeminiAdapter("", ""); err == nil {
		t.Error("expected error for missing API key, got nil")
	}
}

func TestGeminiListModels(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		if r.URL.Path != "/v1beta/models" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"models":[
			{"name":"models/gemini-2.5-pro","displayName":"Gemini 2.5 Pro","supportedGenerationMethods":["generateContent","countTokens"]},
			{"name":"models/gemini-2.5-flash","displayName":"","supportedGenerationMethods":["generateContent"]},
			{"name":"models/text-embedding-004","displayName":"Embedding","supportedGenerationMethods":["embedContent"]}
		]}`))
	}))
	defer server.Close()

	adapter, _ := NewGeminiAdapter(server.URL, "g-key")
	options, err := adapter.ListModels(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotKey != "g-key" {
		t.Errorf("expected key query parameter, got %q", gotKey)
	}

	// Embedding model lacks generateContent and is dropped.
	if len(options) != 2 {
		t.Fatalf("expected 2 options, got %d: %v", len(options), options)
	}
	if options[0].ID != "gemini-2.5-pro" {
		t.Errorf("expected models/ prefix stripped, got %q", options[0].ID)
	}
	if options[0].DisplayName != "Gemini 2.5 Pro" {
		t.Errorf("expected displayName used, got %q", options[0].DisplayName)
	}
	if options[1].DisplayName != "gemini-2.5-flash" {
		t.Errorf("expected fallback to ID, got %q", options[1].DisplayName)
	}
}

func TestGeminiSendMessage(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Bonjour"},{"text":"!"}]}}]}`))
	}))
	defer server.Close()

	adapter, _ := NewGeminiAdapter(server.URL, "g-key")

	history := []model.Message{
		{Role: model.RoleUser, Content: "Hi"},
		{Role: model.RoleAssistant, Content: "Hello"},
	}
	images := []model.ImageAttachment{{MimeType: "image/webp", Base64: "d2VicA=="}}
	reply, err := adapter.SendMessage(context.Background(), "gemini-2.5-pro", history, "Translate hello", images)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Bonjour!" {
		t.Errorf("expected concatenated candidate parts, got %q", reply)
	}

	if gotPath != "/v1beta/models/gemini-2.5-pro:generateContent" {
		t.Errorf("unexpected request path %q", gotPath)
	}

	contents := gotBody["contents"].([]any)
	if len(contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(contents))
	}
	if role := contents[1].(map[string]any)["role"]; role != "model" {
		t.Errorf("assistant history turn must map to role model, got %v", role)
	}
	newTurn := contents[2].(map[string]any)
	if role := newTurn["role"]; role != "user" {
		t.Errorf("new turn must be role user, got %v", role)
	}
	parts := newTurn["parts"].([]any)
	if len(parts) != 2 {
		t.Fatalf("expected text + inline_data parts, got %d", len(parts))
	}
	blob := parts[1].(map[string]any)["inline_data"].(map[string]any)
	if blob["mime_type"] != "image/webp" || blob["data"] != "d2VicA==" {
		t.Errorf("unexpected inline_data %v", blob)
	}
}

func TestGeminiSendMessageEscapesModelID(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer server.Close()

	adapter, _ := NewGeminiAdapter(server.URL, "g-key")
	if _, err := adapter.SendMessage(context.Background(), "tunedModels/my model", nil, "hi", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/v1beta/models/tunedModels%2Fmy%20model:generateContent" {
		t.Errorf("model ID must be path-escaped, got %q", gotPath)
	}
}

func TestGeminiSendMessageDegradedBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "nope"},
		{"no candidates", `{"candidates":[]}`},
		{"empty parts", `{"candidates":[{"content":{"parts":[]}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			adapter, _ := NewGeminiAdapter(server.URL, "g-key")
			reply, err := adapter.SendMessage(context.Background(), "gemini-2.5-pro", nil, "hi", nil)
			if err != nil {
				t.Fatalf("malformed 200 body must not error, got %v", err)
			}
			if reply != model.NoResponse {
				t.Errorf("expected %q, got %q", model.NoResponse, reply)
			}
		})
	}
}
