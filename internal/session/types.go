package session

import (
	"context"

	"github.com/hrithikpandeyhp/cortex/internal/mastery"
	"github.com/hrithikpandeyhp/cortex/internal/planner"
	"github.com/hrithikpandeyhp/cortex/internal/progress"
	"github.com/hrithikpandeyhp/cortex/internal/tutor"
)

// ContentService produces lessons and grades answers. *tutor.Service is
// the production implementation; tests substitute canned mocks.
type ContentService interface {
	GenerateLesson(ctx context.Context, input tutor.LessonInput) (*tutor.Lesson, error)
	Grade(ctx context.Context, input tutor.GradeInput) (*tutor.Grade, error)
}

// Turn identifies a question put in front of the learner. The caller
// hands it back with the answer so grading runs against the same
// position the lesson was generated for.
type Turn struct {
	TopicID    string
	Difficulty int
	Question   string
}

// Response carries a learner's answer to a previously opened turn.
type Response struct {
	Turn     Turn
	Answer   string
	Modality progress.Modality
}

// TurnRequest drives one RunTurn call. A nil Response opens a new turn;
// a non-nil one closes the turn it carries.
type TurnRequest struct {
	LearnerID string
	Response  *Response
}

// TurnResult is what one RunTurn call produced. Opening fills Lesson and
// Turn (unless the curriculum is complete); closing fills Grade, State,
// and Record, with Decision pointing at the follow-up.
type TurnResult struct {
	Decision planner.Decision
	Lesson   *tutor.Lesson
	Turn     *Turn
	Grade    *tutor.Grade
	State    *mastery.State
	Record   *progress.AttemptRecord
}

// Completed reports whether the curriculum is finished: there is nothing
// left to teach and no turn to answer.
func (r *TurnResult) Completed() bool {
	return r.Decision.Action == planner.Complete
}
