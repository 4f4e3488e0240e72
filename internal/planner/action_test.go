package planner

import (
	"encoding/json"
	"testing"
)

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{Remediate, "remediate"},
		{Hold, "hold"},
		{Reinforce, "reinforce"},
		{Advance, "advance"},
		{Complete, "complete"},
		{Action(0), "Action(0)"},
		{Action(99), "Action(99)"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", int(tt.a), got, tt.want)
		}
	}
}

func TestActionTeaches(t *testing.T) {
	for _, a := range []Action{Remediate, Hold, Reinforce, Advance} {
		if !a.Teaches() {
			t.Errorf("%s.Teaches() = false, want true", a)
		}
	}
	if Complete.Teaches() {
		t.Error("complete should not teach")
	}
	if Action(0).Teaches() {
		t.Error("invalid action should not teach")
	}
}

func TestActionJSONRoundTrip(t *testing.T) {
	for _, a := range []Action{Remediate, Hold, Reinforce, Advance, Complete} {
		data, err := json.Marshal(a)
		if err != nil {
			t.Fatalf("marshal %s: %v", a, err)
		}
		var back Action
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != a {
			t.Errorf("round trip %s -> %s", a, back)
		}
	}
}

func TestActionMarshalInvalid(t *testing.T) {
	if _, err := json.Marshal(Action(42)); err == nil {
		t.Error("marshaling invalid action should fail")
	}
	var a Action
	if err := a.UnmarshalText([]byte("skip")); err == nil {
		t.Error("unmarshaling unknown name should fail")
	}
}
