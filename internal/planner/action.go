package planner

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Action is the kind of move the planner selects for the next turn.
type Action int

const (
	Remediate Action = iota + 1 // Drop one difficulty level on the active topic.
	Hold                        // Stay at the current topic and difficulty.
	Reinforce                   // Raise difficulty on a mastered topic.
	Advance                     // Move to a new eligible topic.
	Complete                    // Nothing left to teach.
)

var (
	actionNames = [...]string{
		Remediate: "remediate",
		Hold:      "hold",
		Reinforce: "reinforce",
		Advance:   "advance",
		Complete:  "complete",
	}
	actionByName = map[string]Action{
		"remediate": Remediate,
		"hold":      Hold,
		"reinforce": Reinforce,
		"advance":   Advance,
		"complete":  Complete,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Action(0)
	_ json.Marshaler           = Action(0)
	_ json.Unmarshaler         = (*Action)(nil)
	_ encoding.TextMarshaler   = Action(0)
	_ encoding.TextUnmarshaler = (*Action)(nil)
)

func (a Action) isValid() bool {
	return a >= Remediate && a <= Complete
}

// Teaches reports whether the action produces a lesson turn. Every action
// except Complete puts a question in front of the learner.
func (a Action) Teaches() bool {
	return a.isValid() && a != Complete
}

// String returns the action name ("remediate", "hold", ...). For invalid
// values it returns "Action(n)".
func (a Action) String() string {
	if a.isValid() {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	if !a.isValid() {
		return nil, fmt.Errorf("planner: invalid action: %d", int(a))
	}
	return []byte(actionNames[a]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	v, ok := actionByName[string(text)]
	if !ok {
		return fmt.Errorf("planner: invalid action: %q", text)
	}
	*a = v
	return nil
}

// MarshalJSON implements json.Marshaler. Action serializes as a JSON string.
func (a Action) MarshalJSON() ([]byte, error) {
	text, err := a.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (a *Action) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("planner: invalid action: %s", data)
	}
	return a.UnmarshalText([]byte(str))
}
