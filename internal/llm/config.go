package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config selects and configures an LLM provider.
type Config struct {
	// Provider picks the backing service: "anthropic", "openai",
	// "gemini", "openrouter", or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single request including its retries.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic credentials and model choice.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig holds OpenAI credentials and model choice. BaseURL
// points the client at any compatible endpoint.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// GeminiConfig holds Google Gemini credentials and model choice.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// OpenRouterConfig holds OpenRouter credentials and model choice.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig tunes the retry middleware.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the stock configuration: Anthropic with a small
// fast model, three attempts with exponential backoff.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv reads CORTEX_* variables over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	envStr("CORTEX_LLM_PROVIDER", &cfg.Provider)

	envStr("CORTEX_ANTHROPIC_API_KEY", &cfg.Anthropic.APIKey)
	envStr("CORTEX_ANTHROPIC_MODEL", &cfg.Anthropic.Model)

	envStr("CORTEX_OPENAI_API_KEY", &cfg.OpenAI.APIKey)
	envStr("CORTEX_OPENAI_MODEL", &cfg.OpenAI.Model)
	envStr("CORTEX_OPENAI_BASE_URL", &cfg.OpenAI.BaseURL)

	envStr("CORTEX_GEMINI_API_KEY", &cfg.Gemini.APIKey)
	envStr("CORTEX_GEMINI_MODEL", &cfg.Gemini.Model)

	envStr("CORTEX_OPENROUTER_API_KEY", &cfg.OpenRouter.APIKey)
	envStr("CORTEX_OPENROUTER_MODEL", &cfg.OpenRouter.Model)

	return cfg
}

func envStr(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig probes the providers' conventional key variables
// (Gemini, then OpenAI, Anthropic, OpenRouter) and configures the first
// one found. The ok result is false when no key is set anywhere.
func DiscoverConfig() (Config, bool) {
	probes := []struct {
		env      string
		provider string
		assign   func(*Config, string)
	}{
		{"GEMINI_API_KEY", "gemini", func(c *Config, k string) { c.Gemini.APIKey = k }},
		{"OPENAI_API_KEY", "openai", func(c *Config, k string) { c.OpenAI.APIKey = k }},
		{"ANTHROPIC_API_KEY", "anthropic", func(c *Config, k string) { c.Anthropic.APIKey = k }},
		{"OPENROUTER_API_KEY", "openrouter", func(c *Config, k string) { c.OpenRouter.APIKey = k }},
	}
	for _, p := range probes {
		k := os.Getenv(p.env)
		if k == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = p.provider
		p.assign(&cfg, k)
		return cfg, true
	}
	return Config{}, false
}

// Validate checks that the selected provider has the key it needs.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	keys := map[string]string{
		"anthropic":  c.Anthropic.APIKey,
		"openai":     c.OpenAI.APIKey,
		"gemini":     c.Gemini.APIKey,
		"openrouter": c.OpenRouter.APIKey,
	}
	key, known := keys[c.Provider]
	if !known {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("CORTEX_%s_API_KEY is required for the %s provider",
			strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
