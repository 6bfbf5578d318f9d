package provider

import (
	"fmt"

	"traychat/model"
)

// New creates an adapter for the configured provider tag.
//
// This is the centralized factory for all five adapter types. Keyed providers
// fail here, before any network call, when the API key is missing; the
// OpenRouter free tier never needs one.
func New(cfg Config) (model.Adapter, error) {
	switch cfg.Type {
	case model.ProviderOpenAI:
		return NewOpenAIAdapter(cfg.BaseURL, cfg.APIKey)
	case model.ProviderAnthropic:
		return NewAnthropicAdapter(cfg.BaseURL, cfg.APIKey)
	case model.ProviderGemini:
		return NewGeminiAdapter(cfg.BaseURL, cfg.APIKey)
	case model.ProviderOpenRouter:
		return NewOpenRouterAdapter(cfg.BaseURL, cfg.APIKey)
	case model.ProviderOpenRouterFree:
		return NewOpenRouterFreeAdapter(cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}
