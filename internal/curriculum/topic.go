package curriculum

import "fmt"

// Difficulty bounds shared across the engine. Every topic exposes levels
// 1..MaxDifficulty within this range.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Topic is a single curriculum node. Topics form a DAG through their
// prerequisite edges; a topic becomes available only once every
// prerequisite is mastered.
type Topic struct {
	// ID is the stable identifier, lowercase dot-separated,
	// e.g. "py.basics". Referenced by attempts and prerequisites.
	ID string `yaml:"id"`

	// Label is the display name, e.g. "Python Basics".
	Label string `yaml:"label"`

	// Summary is a short description handed to the lesson prompt.
	Summary string `yaml:"summary"`

	// Prerequisites lists topic IDs that must all be mastered before
	// this topic is eligible.
	Prerequisites []string `yaml:"prerequisites"`

	// MaxDifficulty is the topic's top level. Levels run 1..MaxDifficulty.
	// Zero means "use the default" (the package-level MaxDifficulty).
	MaxDifficulty int `yaml:"max_difficulty"`
}

// withDefaults returns a copy of t with zero-valued fields filled in.
func (t Topic) withDefaults() Topic {
	if t.MaxDifficulty == 0 {
		t.MaxDifficulty = MaxDifficulty
	}
	if t.Label == "" {
		t.Label = t.ID
	}
	return t
}

// Validate checks a single topic's fields. Graph-level checks (dangling
// prerequisites, cycles) live in validateTopics.
func (t Topic) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("topic: ID is empty")
	}
	if t.MaxDifficulty < MinDifficulty || t.MaxDifficulty > MaxDifficulty {
		return fmt.Errorf("topic %q: max difficulty %d out of range [%d,%d]",
			t.ID, t.MaxDifficulty, MinDifficulty, MaxDifficulty)
	}
	for _, p := range t.Prerequisites {
		if p == t.ID {
			return fmt.Errorf("topic %q: lists itself as a prerequisite", t.ID)
		}
	}
	return nil
}
