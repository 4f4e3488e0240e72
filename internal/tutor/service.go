// Package tutor is the LLM content boundary: it turns a planned working
// position into a lesson and a learner answer into a grade. Retries and
// rate-limit handling live below in the llm middleware; every failure
// surfaces here as an *AIServiceError so callers can abort the turn
// cleanly.
package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hrithikpandeyhp/cortex/internal/llm"
)

// Service produces lessons and grades answers through an LLM provider.
// Both calls are synchronous; callers bound them with a context deadline.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a tutoring content service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type lessonOutput struct {
	Explanation string `json:"explanation"`
	Question    string `json:"question"`
}

// GenerateLesson asks the provider to teach the topic at the given
// difficulty.
func (s *Service) GenerateLesson(ctx context.Context, input LessonInput) (*Lesson, error) {
	ctx = llm.WithPurpose(ctx, "lesson")

	req := llm.Request{
		System: lessonSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildLessonUserMessage(input)},
		},
		Schema:      LessonSchema,
		MaxTokens:   s.cfg.LessonMaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, &AIServiceError{Op: "lesson", Err: err}
	}

	var out lessonOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &AIServiceError{Op: "lesson", Err: fmt.Errorf("parse response: %w", err)}
	}
	if strings.TrimSpace(out.Question) == "" {
		return nil, &AIServiceError{Op: "lesson", Err: fmt.Errorf("response carries no question")}
	}

	return &Lesson{
		TopicID:     input.Topic.ID,
		Difficulty:  input.Difficulty,
		Explanation: out.Explanation,
		Question:    out.Question,
	}, nil
}

type gradeOutput struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Grade evaluates a learner answer. The returned score is normalized to
// [0, 1]; values outside the schema's 0-100 range are clamped.
func (s *Service) Grade(ctx context.Context, input GradeInput) (*Grade, error) {
	ctx = llm.WithPurpose(ctx, "grading")

	req := llm.Request{
		System: gradingSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGradingUserMessage(input)},
		},
		Schema:      GradeSchema,
		MaxTokens:   s.cfg.GradeMaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, &AIServiceError{Op: "grade", Err: err}
	}

	var out gradeOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &AIServiceError{Op: "grade", Err: fmt.Errorf("parse response: %w", err)}
	}

	raw := out.Score
	if raw < 0 {
		raw = 0
	}
	if raw > 100 {
		raw = 100
	}

	return &Grade{
		Score:    float64(raw) / 100,
		RawScore: raw,
		Feedback: out.Feedback,
	}, nil
}
