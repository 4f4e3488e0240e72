package tutor

import (
	"fmt"
	"strings"
)

const lessonSystemPrompt = `You are a patient, encouraging tutor. You teach one small concept at a time and always finish by asking the learner a single question.`

func buildLessonUserMessage(input LessonInput) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Topic: %s\n", input.Topic.Label))
	if input.Topic.Summary != "" {
		b.WriteString(fmt.Sprintf("About: %s\n", input.Topic.Summary))
	}
	b.WriteString(fmt.Sprintf("Difficulty: %d of %d\n", input.Difficulty, input.Topic.MaxDifficulty))

	b.WriteString(`
Instructions:
Teach this topic at the given difficulty. Level 1 is a first introduction; the top level assumes the learner already handles the basics.
1. Explain in at most two sentences. Use plain language and one concrete example if it helps.
2. End with exactly one question the learner can answer in a sentence or two. The question must be answerable from your explanation.
3. Use plain ASCII text. No markdown, no code fences.`)

	return b.String()
}

const gradingSystemPrompt = `You are evaluating a learner's answer to a tutoring question. Be fair and consistent: judge understanding, not spelling or phrasing.`

func buildGradingUserMessage(input GradeInput) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Topic: %s\n", input.Topic.Label))
	b.WriteString(fmt.Sprintf("Question: %s\n", input.Question))
	b.WriteString(fmt.Sprintf("Answer: %s\n", input.Answer))

	b.WriteString(`
Instructions:
Score the answer from 0 to 100 for correctness and understanding. A correct answer in the learner's own words scores high. A partially correct or incomplete answer scores in the middle. A wrong or unrelated answer scores low. Give one short sentence of feedback addressed directly to the learner.`)

	return b.String()
}
