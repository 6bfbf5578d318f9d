// Package provider implements the per-provider adapters behind the
// model.Adapter interface.
//
// Each supported backend (OpenAI, Anthropic, Gemini, OpenRouter and the
// keyless OpenRouter free tier) gets one adapter that translates the uniform
// list/send contract into that provider's wire format and parses the response
// back to plain text. The adapters talk raw HTTP with hand-written
// request/response types rather than official SDKs: the wire shapes are small,
// and sends must tolerate unexpected response bodies by degrading to the
// "No response" sentinel instead of failing decode.
//
// Error policy, uniformly:
//   - transport failures and non-2xx statuses surface as errors
//   - a 2xx body that does not match the expected shape never errors;
//     sends return model.NoResponse, listings yield no models
//
// Use New to construct an adapter from a Config:
//
//	a, err := provider.New(provider.Config{
//	    Type:   model.ProviderAnthropic,
//	    APIKey: key,
//	})
//	if err != nil {
//	    // handle error
//	}
//	reply, err := a.SendMessage(ctx, "claude-sonnet-4-5", history, text, nil)
package provider

import "traychat/model"

// Config holds what an adapter needs at construction time. Credentials are
// bound per instance; build a fresh adapter per call rather than caching one.
type Config struct {
	Type    model.Provider
	BaseURL string // override for tests; empty selects the provider default
	APIKey  string // unused for the OpenRouter free tier
}

// Default API endpoints per provider family.
const (
	defaultOpenAIBaseURL     = "https://api.openai.com"
	defaultAnthropicBaseURL  = "https://api.anthropic.com"
	defaultGeminiBaseURL     = "https://generativelanguage.googleapis.com"
	defaultOpenRouterBaseURL = "https://openrouter.ai"
)
