package tutor

import "github.com/hrithikpandeyhp/cortex/internal/curriculum"

// Lesson is one teaching turn: a compact explanation that ends with a
// single question for the learner.
type Lesson struct {
	TopicID     string
	Difficulty  int
	Explanation string
	Question    string
}

// LessonInput holds the context needed to generate a lesson turn.
type LessonInput struct {
	Topic      curriculum.Topic
	Difficulty int
}

// Grade is the evaluator's judgment of a learner answer. Score is
// normalized to [0, 1]; RawScore keeps the model's 0-100 value.
type Grade struct {
	Score    float64
	RawScore int
	Feedback string
}

// GradeInput holds the exchange being evaluated.
type GradeInput struct {
	Topic    curriculum.Topic
	Question string
	Answer   string
}
