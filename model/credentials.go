package model

import "strings"

// Credentials holds the API keys the settings layer currently has configured.
// The core reads them per call and never persists or mutates them.
// OpenRouter Free requires no key.
type Credentials struct {
	OpenAI     string
	Anthropic  string
	Gemini     string
	OpenRouter string
}

// For returns the trimmed API key for a provider. OpenRouter Free always
// yields the empty string, even when an OpenRouter key is configured.
func (c Credentials) For(p Provider) string {
	switch p {
	case ProviderOpenAI:
		return strings.TrimSpace(c.OpenAI)
	case ProviderAnthropic:
		return strings.TrimSpace(c.Anthropic)
	case ProviderGemini:
		return strings.TrimSpace(c.Gemini)
	case ProviderOpenRouter:
		return strings.TrimSpace(c.OpenRouter)
	}
	return ""
}

// Configured reports whether a provider can be queried: keyed providers need
// a non-blank key, OpenRouter Free is always available.
func (c Credentials) Configured(p Provider) bool {
	if p == ProviderOpenRouterFree {
		return true
	}
	return c.For(p) != ""
}
