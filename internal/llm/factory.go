package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/hrithikpandeyhp/cortex/internal/progress"
)

// NewProvider builds the configured provider, wrapped so that every call
// is logged first and retried above that.
func NewProvider(ctx context.Context, cfg Config, log progress.RequestLog) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithLogging(base, cfg.Provider, log), cfg.Retry), nil
}

// NewProviderFromEnv builds a provider from CORTEX_* environment
// variables, falling back to probing the providers' standard key
// variables when no explicit provider is configured.
func NewProviderFromEnv(ctx context.Context, log progress.RequestLog) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		if os.Getenv("CORTEX_LLM_PROVIDER") != "" {
			// An explicitly chosen provider must not be silently swapped.
			return nil, err
		}
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, log)
}
