package llm

import "fmt"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider targets the OpenRouter API, which speaks the OpenAI
// wire format. Model IDs like "google/gemini-2.0-flash-exp" pass through
// verbatim; the alias table is for first-party OpenAI names only.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider builds a provider targeting OpenRouter.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	inner := newOpenAIClient(OpenAIConfig{
		APIKey:  cfg.APIKey,
		BaseURL: baseURL,
	}, cfg.Model)

	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
