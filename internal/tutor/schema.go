package tutor

import "github.com/hrithikpandeyhp/cortex/internal/llm"

// LessonSchema defines the JSON schema for lesson turn generation.
var LessonSchema = &llm.Schema{
	Name:        "lesson-turn",
	Description: "A short lesson: a two-sentence explanation ending with one question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "Teach the topic in at most two sentences",
			},
			"question": map[string]any{
				"type":        "string",
				"description": "One question checking that the learner understood",
			},
		},
		"required":             []any{"explanation", "question"},
		"additionalProperties": false,
	},
}

// GradeSchema defines the JSON schema for answer evaluation.
var GradeSchema = &llm.Schema{
	Name:        "answer-grade",
	Description: "Evaluation of a learner's answer to a tutoring question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     100,
				"description": "How correct the answer is, 0-100",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "One short sentence of feedback addressed to the learner",
			},
		},
		"required":             []any{"score", "feedback"},
		"additionalProperties": false,
	},
}
