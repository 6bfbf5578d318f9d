package model

// Provider identifies one of the supported AI backends.
//
// The set is closed: routing, credential lookup and catalog aggregation all
// switch on these five tags and nothing else.
type Provider string

const (
	ProviderOpenAI         Provider = "openai"
	ProviderAnthropic      Provider = "anthropic"
	ProviderGemini         Provider = "gemini"
	ProviderOpenRouter     Provider = "openrouter"
	ProviderOpenRouterFree Provider = "openrouter-free"
)

// Providers returns every supported provider tag, in catalog query order.
func Providers() []Provider {
	return []Provider{
		ProviderOpenAI,
		ProviderAnthropic,
		ProviderGemini,
		ProviderOpenRouter,
		ProviderOpenRouterFree,
	}
}

// Valid reports whether p is one of the five supported tags.
func (p Provider) Valid() bool {
	switch p {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini,
		ProviderOpenRouter, ProviderOpenRouterFree:
		return true
	}
	return false
}

// Title returns the hosted-product name shown in the launcher menu.
func (p Provider) Title() string {
	switch p {
	case ProviderOpenAI:
		return "ChatGPT"
	case ProviderAnthropic:
		return "Claude"
	case ProviderGemini:
		return "Gemini"
	case ProviderOpenRouter:
		return "OpenRouter"
	case ProviderOpenRouterFree:
		return "OpenRouter Free"
	}
	return string(p)
}
