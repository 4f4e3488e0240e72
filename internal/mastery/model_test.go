package mastery

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/hrithikpandeyhp/cortex/internal/progress"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	m, err := NewModel(Params{})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func rec(topic string, difficulty int, score float64) progress.AttemptRecord {
	return progress.AttemptRecord{
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Attempt: progress.Attempt{
			TopicID:    topic,
			Difficulty: difficulty,
			Score:      score,
			Modality:   progress.ModalityText,
		},
	}
}

func recs(topic string, difficulty int, scores ...float64) []progress.AttemptRecord {
	out := make([]progress.AttemptRecord, len(scores))
	for i, s := range scores {
		out[i] = rec(topic, difficulty, s)
		out[i].Sequence = int64(i + 1)
	}
	return out
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewModelDefaults(t *testing.T) {
	m := testModel(t)
	p := m.Params()
	if p.Alpha != 0.3 || p.Threshold != 0.8 || p.MinAttempts != 3 {
		t.Errorf("defaults = %+v, want alpha 0.3, threshold 0.8, min attempts 3", p)
	}
}

func TestNewModelValidation(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"alpha negative", Params{Alpha: -0.1}},
		{"alpha above one", Params{Alpha: 1.5}},
		{"threshold above one", Params{Threshold: 1.2}},
		{"min attempts negative", Params{MinAttempts: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewModel(tt.params); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestRecomputeSeedsWithFirstScore(t *testing.T) {
	m := testModel(t)

	state, err := m.Recompute("py.basics", recs("py.basics", 1, 0.5))
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if !almostEqual(state.Recent, 0.5) {
		t.Errorf("recent = %.4f, want seed 0.5 (not decayed from zero)", state.Recent)
	}
	if state.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", state.Attempts)
	}
}

func TestRecomputeEWMA(t *testing.T) {
	m := testModel(t)

	tests := []struct {
		name   string
		scores []float64
		want   float64
	}{
		// recent' = 0.3*score + 0.7*recent, seeded with the first score.
		{"two attempts", []float64{0.5, 1.0}, 0.65},
		{"three attempts", []float64{0.4, 0.9, 0.9}, 0.655},
		{"flat perfect", []float64{1.0, 1.0, 1.0}, 1.0},
		{"collapse after fail", []float64{1.0, 0.0}, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := m.Recompute("py.basics", recs("py.basics", 2, tt.scores...))
			if err != nil {
				t.Fatalf("recompute: %v", err)
			}
			if !almostEqual(state.Recent, tt.want) {
				t.Errorf("recent = %.6f, want %.6f", state.Recent, tt.want)
			}
			if state.Attempts != len(tt.scores) {
				t.Errorf("attempts = %d, want %d", state.Attempts, len(tt.scores))
			}
			if state.LastScore != tt.scores[len(tt.scores)-1] {
				t.Errorf("last score = %.2f, want %.2f", state.LastScore, tt.scores[len(tt.scores)-1])
			}
		})
	}
}

func TestRecomputeDeterministicAndIdempotent(t *testing.T) {
	m := testModel(t)
	history := recs("py.basics", 3, 0.2, 0.7, 0.9, 0.4, 0.8)

	first, err := m.Recompute("py.basics", history)
	if err != nil {
		t.Fatalf("first recompute: %v", err)
	}
	second, err := m.Recompute("py.basics", history)
	if err != nil {
		t.Fatalf("second recompute: %v", err)
	}
	if first != second {
		t.Errorf("recompute not idempotent: %+v != %+v", first, second)
	}
}

func TestApplyMatchesBatchRecompute(t *testing.T) {
	m := testModel(t)
	history := recs("py.basics", 2, 0.3, 0.6, 0.95, 0.1, 0.85, 0.7)

	batch, err := m.Recompute("py.basics", history)
	if err != nil {
		t.Fatalf("batch recompute: %v", err)
	}

	var incremental State
	for _, r := range history {
		incremental = m.Apply(incremental, r)
	}

	if incremental != batch {
		t.Errorf("incremental fold drifted from batch: %+v != %+v", incremental, batch)
	}
}

func TestIsMastered(t *testing.T) {
	m := testModel(t)

	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"meets both floors", State{Attempts: 3, Recent: 0.8}, true},
		{"well past both", State{Attempts: 10, Recent: 0.95}, true},
		{"score below threshold", State{Attempts: 5, Recent: 0.79}, false},
		{"perfect but one attempt short", State{Attempts: 2, Recent: 1.0}, false},
		{"zero state", State{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.IsMastered(tt.state); got != tt.want {
				t.Errorf("IsMastered(%+v) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestMasteryAttemptFloorFromHistory(t *testing.T) {
	m := testModel(t)

	// minAttempts-1 perfect scores: the attempt floor holds regardless
	// of the recent score.
	short := recs("py.basics", 1, 1.0, 1.0)
	state, err := m.Recompute("py.basics", short)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if m.IsMastered(state) {
		t.Error("2 perfect attempts reported as mastered with min attempts 3")
	}

	full := recs("py.basics", 1, 1.0, 1.0, 1.0)
	state, err = m.Recompute("py.basics", full)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if !m.IsMastered(state) {
		t.Error("3 perfect attempts not reported as mastered")
	}
}

func TestRecomputeInvalidHistory(t *testing.T) {
	m := testModel(t)

	wrongTopic := recs("py.basics", 1, 0.5)
	wrongTopic[0].TopicID = "py.oop"

	badScore := recs("py.basics", 1, 0.5)
	badScore[0].Score = 1.5

	badDifficulty := recs("py.basics", 1, 0.5)
	badDifficulty[0].Difficulty = 0

	tests := []struct {
		name    string
		topicID string
		history []progress.AttemptRecord
	}{
		{"empty history", "py.basics", nil},
		{"empty topic ID", "", recs("py.basics", 1, 0.5)},
		{"foreign record", "py.basics", wrongTopic},
		{"score out of range", "py.basics", badScore},
		{"difficulty out of range", "py.basics", badDifficulty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := m.Recompute(tt.topicID, tt.history)
			var iserr *InvalidStateError
			if !errors.As(err, &iserr) {
				t.Fatalf("got err %v, want *InvalidStateError", err)
			}
			if state != (State{}) {
				t.Errorf("got state %+v, want zero state for recovery", state)
			}
		})
	}
}

func TestRebuild(t *testing.T) {
	m := testModel(t)

	history := []progress.AttemptRecord{
		rec("py.basics", 1, 0.9),
		rec("py.basics", 1, 0.8),
		rec("py.functions", 2, 0.4),
		rec("py.basics", 2, 1.0),
	}
	for i := range history {
		history[i].Sequence = int64(i + 1)
	}

	p, err := m.Rebuild("learner-1", history)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	if p.LearnerID != "learner-1" {
		t.Errorf("learner ID = %q", p.LearnerID)
	}
	if len(p.States) != 2 {
		t.Fatalf("got %d topic states, want 2", len(p.States))
	}
	// Attempt counts mirror the log exactly.
	if p.TotalAttempts("py.basics") != 3 {
		t.Errorf("py.basics attempts = %d, want 3", p.TotalAttempts("py.basics"))
	}
	if p.TotalAttempts("py.functions") != 1 {
		t.Errorf("py.functions attempts = %d, want 1", p.TotalAttempts("py.functions"))
	}
	// Active position is the latest attempt overall.
	if p.ActiveTopic != "py.basics" || p.ActiveDifficulty != 2 {
		t.Errorf("active = (%q, %d), want (py.basics, 2)", p.ActiveTopic, p.ActiveDifficulty)
	}

	// Per-topic states match independent recomputes.
	basicsOnly := []progress.AttemptRecord{history[0], history[1], history[3]}
	want, err := m.Recompute("py.basics", basicsOnly)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if got := p.States["py.basics"]; got != want {
		t.Errorf("rebuilt state %+v != recomputed %+v", got, want)
	}
}

func TestRebuildEmptyLog(t *testing.T) {
	m := testModel(t)

	p, err := m.Rebuild("learner-1", nil)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if len(p.States) != 0 || p.ActiveTopic != "" || p.ActiveDifficulty != 0 {
		t.Errorf("empty log should produce empty profile, got %+v", p)
	}
}

func TestMasteredSet(t *testing.T) {
	m := testModel(t)

	p := NewProfile("learner-1")
	p.States["a"] = State{TopicID: "a", Attempts: 4, Recent: 0.9}
	p.States["b"] = State{TopicID: "b", Attempts: 2, Recent: 1.0}
	p.States["c"] = State{TopicID: "c", Attempts: 6, Recent: 0.5}

	mastered := m.MasteredSet(p)
	if !mastered["a"] {
		t.Error("a should be mastered")
	}
	if mastered["b"] {
		t.Error("b lacks the attempt floor")
	}
	if mastered["c"] {
		t.Error("c lacks the score floor")
	}
}

func TestCustomParams(t *testing.T) {
	m, err := NewModel(Params{Alpha: 0.5, Threshold: 0.9, MinAttempts: 2})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	state, err := m.Recompute("t", recs("t", 1, 0.8, 1.0))
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if !almostEqual(state.Recent, 0.9) {
		t.Errorf("recent = %.4f, want 0.9 with alpha 0.5", state.Recent)
	}
	if !m.IsMastered(state) {
		t.Error("expected mastered with min attempts 2 and threshold 0.9")
	}
}
