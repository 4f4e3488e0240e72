package mastery

import "time"

// State is the derived mastery estimate for one topic. It is a cache over
// the attempt log, never a source of truth: replaying the log through the
// model must always reproduce it exactly.
type State struct {
	TopicID string `json:"topic_id"`

	// Recent is the exponentially-weighted moving average of scores,
	// seeded with the first attempt's score.
	Recent float64 `json:"recent"`

	// Attempts is the total attempt count for the topic. Invariant:
	// equals the number of log records for the topic.
	Attempts int `json:"attempts"`

	// Difficulty is the level of the latest attempt.
	Difficulty int `json:"difficulty"`

	LastScore float64   `json:"last_score"`
	LastAt    time.Time `json:"last_at"`
}

// Profile is a learner's full derived state: per-topic mastery plus the
// active position. Profiles are plain values passed through the engine;
// there is no process-wide current profile.
type Profile struct {
	LearnerID string           `json:"learner_id"`
	States    map[string]State `json:"states"`

	// ActiveTopic and ActiveDifficulty identify the learner's most
	// recent attempt. Zero values mean the log is empty.
	ActiveTopic      string `json:"active_topic"`
	ActiveDifficulty int    `json:"active_difficulty"`
}

// NewProfile returns an empty profile for the learner.
func NewProfile(learnerID string) *Profile {
	return &Profile{
		LearnerID: learnerID,
		States:    make(map[string]State),
	}
}

// State returns the mastery state for a topic, and whether one exists.
func (p *Profile) State(topicID string) (State, bool) {
	s, ok := p.States[topicID]
	return s, ok
}

// TotalAttempts returns the attempt count for a topic, zero if untouched.
func (p *Profile) TotalAttempts(topicID string) int {
	return p.States[topicID].Attempts
}
