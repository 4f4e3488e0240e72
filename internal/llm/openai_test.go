package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func openaiTestProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  "gpt-4o-mini",
	}
}

func openaiCompletionBody(content, finishReason string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": finishReason,
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     40,
			"completion_tokens": 25,
			"total_tokens":      65,
		},
	}
}

func TestOpenAIGenerate(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openaiCompletionBody(
			`{"score":85,"feedback":"Right idea, name the loop variable next time."}`,
			"stop",
		))
	}

	p := openaiTestProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:    "You are evaluating a learner's answer.",
		Messages:  []Message{{Role: RoleUser, Content: "Grade this answer."}},
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Fatalf("usage = %d in / %d out, want 40 / 25", resp.Usage.InputTokens, resp.Usage.OutputTokens)
	}
	if resp.StopReason != "end" {
		t.Fatalf("stop reason = %q, want %q", resp.StopReason, "end")
	}
}

func TestOpenAIRateLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "tokens",
				"message": "Rate limit exceeded",
				"code":    "rate_limit_exceeded",
			},
		})
	}

	p := openaiTestProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "hi"}},
		MaxTokens: 100,
	})
	var limited *ErrRateLimit
	if !errors.As(err, &limited) {
		t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
	}
}

func TestOpenAIServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "server_error",
				"message": "Internal server error",
			},
		})
	}

	p := openaiTestProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "hi"}},
		MaxTokens: 100,
	})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
	}
}

func TestOpenAITruncation(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openaiCompletionBody(`{"score":8`, "length"))
	}

	p := openaiTestProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Grade this answer."}},
		MaxTokens: 8,
		Schema: &Schema{
			Name: "truncation-check-openai",
			Definition: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"score": map[string]any{"type": "integer"},
				},
				"required": []any{"score"},
			},
		},
	})
	var truncated *ErrMaxTokensExceeded
	if !errors.As(err, &truncated) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
}

func TestOpenAIModelID(t *testing.T) {
	p := &OpenAIProvider{model: "gpt-4o-mini"}
	if p.ModelID() != "gpt-4o-mini" {
		t.Fatalf("ModelID() = %q", p.ModelID())
	}
}

func TestOpenAIBaseURLOverride(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "o3-mini",
		BaseURL: "https://openrouter.ai/api/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "o3-mini" {
		t.Fatalf("ModelID() = %q, want %q", p.ModelID(), "o3-mini")
	}
}

func TestOpenAIAliases(t *testing.T) {
	tests := []struct{ in, want string }{
		{"gpt-4o", "gpt-4o-2024-11-20"},
		{"gpt-4o-mini", "gpt-4o-mini-2024-07-18"},
		{"o3-mini", "o3-mini"},
	}
	for _, tt := range tests {
		if got := canonicalModel(tt.in, openaiAliases); got != tt.want {
			t.Errorf("canonicalModel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
