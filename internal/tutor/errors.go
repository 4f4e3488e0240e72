package tutor

import "fmt"

// AIServiceError wraps any failure while producing tutoring content.
// Callers treat it as a signal to abort the turn without recording
// anything.
type AIServiceError struct {
	Op  string // "lesson" or "grade"
	Err error
}

func (e *AIServiceError) Error() string {
	return fmt.Sprintf("ai service: %s: %v", e.Op, e.Err)
}

func (e *AIServiceError) Unwrap() error {
	return e.Err
}
