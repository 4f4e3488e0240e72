package mastery

import (
	"fmt"

	"github.com/hrithikpandeyhp/cortex/internal/progress"
)

// Model derives mastery state from attempt history. All methods are pure:
// no I/O, no clock, no randomness, inputs never mutated. The same history
// always produces the same state.
type Model struct {
	params Params
}

// NewModel creates a Model from the given params. Zero-value fields are
// filled with defaults; invalid values return an error.
func NewModel(p Params) (*Model, error) {
	p = p.withDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Model{params: p}, nil
}

// Params returns the model's effective parameters.
func (m *Model) Params() Params {
	return m.params
}

// Recompute derives the mastery state for one topic from its full attempt
// history, oldest first. An empty history or a record that cannot belong
// to the topic yields a zero State and an *InvalidStateError; the caller's
// recovery is to treat mastery as zero and rebuild from the log.
func (m *Model) Recompute(topicID string, history []progress.AttemptRecord) (State, error) {
	if topicID == "" {
		return State{}, &InvalidStateError{Reason: "recompute with empty topic ID"}
	}
	if len(history) == 0 {
		return State{}, &InvalidStateError{Reason: fmt.Sprintf("recompute for %q with no attempts", topicID)}
	}

	var state State
	for i, rec := range history {
		if err := checkRecord(topicID, rec); err != nil {
			return State{}, &InvalidStateError{
				Reason: fmt.Sprintf("record %d of %q history: %v", i, topicID, err),
			}
		}
		state = m.Apply(state, rec)
	}
	return state, nil
}

// Apply folds one attempt into a state. Folding a full history record by
// record equals a batch Recompute over the same history.
func (m *Model) Apply(s State, rec progress.AttemptRecord) State {
	if s.Attempts == 0 {
		// The EWMA is seeded with the first score, not decayed from zero.
		s.Recent = rec.Score
	} else {
		s.Recent = m.params.Alpha*rec.Score + (1-m.params.Alpha)*s.Recent
	}
	s.TopicID = rec.TopicID
	s.Attempts++
	s.Difficulty = rec.Difficulty
	s.LastScore = rec.Score
	s.LastAt = rec.CreatedAt
	return s
}

// IsMastered reports whether the state meets both mastery floors: enough
// attempts and a high enough recent score.
func (m *Model) IsMastered(s State) bool {
	return s.Attempts >= m.params.MinAttempts && s.Recent >= m.params.Threshold
}

// Advance folds one attempt into a profile in place: the topic's state
// absorbs the record and the active position moves to it. Returns the
// topic's new state.
func (m *Model) Advance(p *Profile, rec progress.AttemptRecord) State {
	if p.States == nil {
		p.States = make(map[string]State)
	}
	s := m.Apply(p.States[rec.TopicID], rec)
	p.States[rec.TopicID] = s
	p.ActiveTopic = rec.TopicID
	p.ActiveDifficulty = rec.Difficulty
	return s
}

// Rebuild derives a full profile from a learner's complete attempt log,
// oldest first. The active position is the latest attempt overall.
func (m *Model) Rebuild(learnerID string, history []progress.AttemptRecord) (*Profile, error) {
	p := NewProfile(learnerID)
	for i, rec := range history {
		if err := checkRecord(rec.TopicID, rec); err != nil {
			return nil, &InvalidStateError{
				Reason: fmt.Sprintf("record %d of learner %q log: %v", i, learnerID, err),
			}
		}
		m.Advance(p, rec)
	}
	return p, nil
}

// MasteredSet returns the set of topic IDs the profile has mastered, in
// the shape the curriculum eligibility check consumes.
func (m *Model) MasteredSet(p *Profile) map[string]bool {
	mastered := make(map[string]bool, len(p.States))
	for id, s := range p.States {
		if m.IsMastered(s) {
			mastered[id] = true
		}
	}
	return mastered
}

// checkRecord rejects records that cannot have come from a valid log.
func checkRecord(topicID string, rec progress.AttemptRecord) error {
	if rec.TopicID != topicID {
		return fmt.Errorf("topic %q does not match %q", rec.TopicID, topicID)
	}
	if rec.Score < 0 || rec.Score > 1 {
		return fmt.Errorf("score %.4f out of range [0,1]", rec.Score)
	}
	if rec.Difficulty < 1 || rec.Difficulty > 5 {
		return fmt.Errorf("difficulty %d out of range [1,5]", rec.Difficulty)
	}
	return nil
}
