package llm

import (
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "google/gemini-2.0-flash-exp",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "google/gemini-2.0-flash-exp" {
			t.Errorf("model = %q, want %q", p.ModelID(), "google/gemini-2.0-flash-exp")
		}
	})

	t.Run("missing API key", func(t *testing.T) {
		_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "meta-llama/llama-3-8b"})
		if err == nil {
			t.Fatal("expected error for missing API key")
		}
	})

	t.Run("model IDs bypass aliases", func(t *testing.T) {
		// "gpt-4o-mini" alone would resolve through openaiAliases, but
		// OpenRouter IDs carry an org prefix and pass through verbatim.
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "openai/gpt-4o-mini",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "openai/gpt-4o-mini" {
			t.Errorf("model = %q, want %q", p.ModelID(), "openai/gpt-4o-mini")
		}
	})

	t.Run("custom base URL", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey:  "sk-or-test",
			Model:   "meta-llama/llama-3.1-8b-instruct",
			BaseURL: "https://gateway.internal.example/v1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p == nil {
			t.Fatal("expected provider")
		}
	})
}
