package planner

import (
	"errors"
	"testing"

	"github.com/hrithikpandeyhp/cortex/internal/curriculum"
	"github.com/hrithikpandeyhp/cortex/internal/mastery"
)

// testGraph builds a diamond: a -> {b, c} -> d.
func testGraph(t *testing.T) *curriculum.Graph {
	t.Helper()
	g, err := curriculum.New([]curriculum.Topic{
		{ID: "a", Label: "A", MaxDifficulty: 3},
		{ID: "b", Label: "B", Prerequisites: []string{"a"}, MaxDifficulty: 2},
		{ID: "c", Label: "C", Prerequisites: []string{"a"}, MaxDifficulty: 2},
		{ID: "d", Label: "D", Prerequisites: []string{"b", "c"}, MaxDifficulty: 2},
	})
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	return g
}

func testPlanner(t *testing.T) *Planner {
	t.Helper()
	model, err := mastery.NewModel(mastery.Params{})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	p, err := New(testGraph(t), model, Params{})
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	return p
}

// mastered passes both the attempt and score floors of the default model.
func mastered(topic string, difficulty int) mastery.State {
	return mastery.State{TopicID: topic, Recent: 0.9, Attempts: 4, Difficulty: difficulty, LastScore: 0.9}
}

// working is in progress: short of the attempt floor, last score as given.
func working(topic string, difficulty int, lastScore float64) mastery.State {
	return mastery.State{TopicID: topic, Recent: lastScore, Attempts: 2, Difficulty: difficulty, LastScore: lastScore}
}

func TestDecideColdStart(t *testing.T) {
	p := testPlanner(t)

	d, err := p.Decide(mastery.NewProfile("learner-1"))
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if d.Action != Advance || d.TopicID != "a" || d.Difficulty != 1 {
		t.Errorf("cold start decision = %+v, want advance to (a, 1)", d)
	}
}

func TestDecideRemediation(t *testing.T) {
	p := testPlanner(t)

	prof := mastery.NewProfile("learner-1")
	prof.States["a"] = mastered("a", 3)
	prof.States["b"] = working("b", 2, 0.3)
	prof.ActiveTopic, prof.ActiveDifficulty = "b", 2

	d, err := p.Decide(prof)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if d.Action != Remediate || d.TopicID != "b" || d.Difficulty != 1 {
		t.Errorf("decision = %+v, want remediate to (b, 1)", d)
	}
}

func TestDecideRemediationFloorsAtOne(t *testing.T) {
	p := testPlanner(t)

	prof := mastery.NewProfile("learner-1")
	prof.States["a"] = working("a", 1, 0.1)
	prof.ActiveTopic, prof.ActiveDifficulty = "a", 1

	d, err := p.Decide(prof)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if d.Action != Remediate || d.Difficulty != 1 {
		t.Errorf("decision = %+v, want remediate held at difficulty 1", d)
	}
}

func TestRemediationBeatsAdvancement(t *testing.T) {
	p := testPlanner(t)

	// b is failing while c sits eligible and untouched. The ladder must
	// stay on b rather than advance.
	prof := mastery.NewProfile("learner-1")
	prof.States["a"] = mastered("a", 3)
	prof.States["b"] = working("b", 2, 0.2)
	prof.ActiveTopic, prof.ActiveDifficulty = "b", 2

	d, err := p.Decide(prof)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if d.Action != Remediate || d.TopicID != "b" {
		t.Errorf("decision = %+v, want remediation on b before any advance", d)
	}
}

func TestDecideHold(t *testing.T) {
	p := testPlanner(t)

	tests := []struct {
		name      string
		lastScore float64
	}{
		{"passing score", 0.7},
		{"exactly at threshold", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prof := mastery.NewProfile("learner-1")
			prof.States["a"] = working("a", 2, tt.lastScore)
			prof.ActiveTopic, prof.ActiveDifficulty = "a", 2

			d, err := p.Decide(prof)
			if err != nil {
				t.Fatalf("decide: %v", err)
			}
			if d.Action != Hold || d.TopicID != "a" || d.Difficulty != 2 {
				t.Errorf("decision = %+v, want hold at (a, 2)", d)
			}
		})
	}
}

func TestDecideReinforce(t *testing.T) {
	p := testPlanner(t)

	prof := mastery.NewProfile("learner-1")
	prof.States["a"] = mastered("a", 2)
	prof.ActiveTopic, prof.ActiveDifficulty = "a", 2

	d, err := p.Decide(prof)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if d.Action != Reinforce || d.TopicID != "a" || d.Difficulty != 3 {
		t.Errorf("decision = %+v, want reinforce to (a, 3)", d)
	}
}

func TestDecideAdvanceAfterTopDifficulty(t *testing.T) {
	p := testPlanner(t)

	prof := mastery.NewProfile("learner-1")
	prof.States["a"] = mastered("a", 3)
	prof.ActiveTopic, prof.ActiveDifficulty = "a", 3

	d, err := p.Decide(prof)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	// b and c both eligible with zero attempts; smallest ID wins.
	if d.Action != Advance || d.TopicID != "b" || d.Difficulty != 1 {
		t.Errorf("decision = %+v, want advance to (b, 1)", d)
	}
}

func TestDecideAdvancePrefersFewestAttempts(t *testing.T) {
	p := testPlanner(t)

	prof := mastery.NewProfile("learner-1")
	prof.States["a"] = mastered("a", 3)
	prof.States["b"] = mastery.State{TopicID: "b", Recent: 0.4, Attempts: 5, Difficulty: 1, LastScore: 0.4}
	prof.States["c"] = mastery.State{TopicID: "c", Recent: 0.6, Attempts: 1, Difficulty: 1, LastScore: 0.6}
	prof.ActiveTopic, prof.ActiveDifficulty = "a", 3

	d, err := p.Decide(prof)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if d.Action != Advance || d.TopicID != "c" {
		t.Errorf("decision = %+v, want advance to c (1 attempt vs 5)", d)
	}
}

func TestDecideComplete(t *testing.T) {
	p := testPlanner(t)

	prof := mastery.NewProfile("learner-1")
	for _, id := range []string{"a", "b", "c", "d"} {
		prof.States[id] = mastered(id, 2)
	}
	prof.States["a"] = mastered("a", 3)
	prof.ActiveTopic, prof.ActiveDifficulty = "d", 2

	d, err := p.Decide(prof)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if d.Action != Complete {
		t.Fatalf("decision = %+v, want complete", d)
	}
	if d.TopicID != "" || d.Difficulty != 0 {
		t.Errorf("complete decision should carry no position, got %+v", d)
	}

	// Completion is absorbing: deciding again changes nothing.
	again, err := p.Decide(prof)
	if err != nil {
		t.Fatalf("second decide: %v", err)
	}
	if again != d {
		t.Errorf("repeat decision = %+v, want %+v", again, d)
	}
}

func TestDecideIneligibleActiveFallsThrough(t *testing.T) {
	p := testPlanner(t)

	// d is active but its prerequisite c is unmastered, so d is not
	// eligible and selection moves to the graph-wide frontier.
	prof := mastery.NewProfile("learner-1")
	prof.States["a"] = mastered("a", 3)
	prof.States["b"] = mastered("b", 2)
	prof.States["c"] = working("c", 1, 0.6)
	prof.States["d"] = working("d", 1, 0.6)
	prof.ActiveTopic, prof.ActiveDifficulty = "d", 1

	d, err := p.Decide(prof)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if d.Action != Advance || d.TopicID != "c" {
		t.Errorf("decision = %+v, want advance to c", d)
	}
}

func TestDecideDeterministic(t *testing.T) {
	p := testPlanner(t)

	prof := mastery.NewProfile("learner-1")
	prof.States["a"] = working("a", 2, 0.3)
	prof.ActiveTopic, prof.ActiveDifficulty = "a", 2

	first, err := p.Decide(prof)
	if err != nil {
		t.Fatalf("first decide: %v", err)
	}
	second, err := p.Decide(prof)
	if err != nil {
		t.Fatalf("second decide: %v", err)
	}
	if first != second {
		t.Errorf("decisions differ: %+v != %+v", first, second)
	}
}

func TestDecideInvalidProfile(t *testing.T) {
	p := testPlanner(t)

	unknownTopic := mastery.NewProfile("learner-1")
	unknownTopic.States["zz"] = working("zz", 1, 0.5)
	unknownTopic.ActiveTopic, unknownTopic.ActiveDifficulty = "zz", 1

	missingState := mastery.NewProfile("learner-1")
	missingState.ActiveTopic, missingState.ActiveDifficulty = "a", 1

	tests := []struct {
		name    string
		profile *mastery.Profile
	}{
		{"nil profile", nil},
		{"active topic not in curriculum", unknownTopic},
		{"active topic without state", missingState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Decide(tt.profile)
			var iserr *mastery.InvalidStateError
			if !errors.As(err, &iserr) {
				t.Errorf("got err %v, want *mastery.InvalidStateError", err)
			}
		})
	}
}

func TestNewValidation(t *testing.T) {
	model, err := mastery.NewModel(mastery.Params{})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	g := testGraph(t)

	if _, err := New(nil, model, Params{}); err == nil {
		t.Error("nil graph accepted")
	}
	if _, err := New(g, nil, Params{}); err == nil {
		t.Error("nil model accepted")
	}
	if _, err := New(g, model, Params{RemediationThreshold: -0.5}); err == nil {
		t.Error("negative threshold accepted")
	}
	if _, err := New(g, model, Params{RemediationThreshold: 1.5}); err == nil {
		t.Error("threshold above 1 accepted")
	}

	p, err := New(g, model, Params{})
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	if p.Params().RemediationThreshold != 0.5 {
		t.Errorf("default threshold = %v, want 0.5", p.Params().RemediationThreshold)
	}
}
