// Package planner decides what a learner should work on next.
//
// Decisions follow a strict priority ladder over the learner's active
// topic: remediate (ease difficulty after a failing score), hold (keep
// practicing), reinforce (raise difficulty on a mastered topic), advance
// (move to a new eligible topic), and finally complete when the whole
// curriculum is mastered. Planning is pure: the same profile and graph
// always produce the same decision, so an aborted turn replans to the
// identical position.
package planner

import (
	"fmt"

	"github.com/hrithikpandeyhp/cortex/internal/curriculum"
	"github.com/hrithikpandeyhp/cortex/internal/mastery"
)

const defaultRemediationThreshold = 0.5

// Params tunes planning decisions. The zero value selects defaults.
type Params struct {
	// RemediationThreshold is the last-score cutoff below which an
	// unmastered active topic drops one difficulty level. Zero → 0.5.
	RemediationThreshold float64
}

func (p Params) withDefaults() Params {
	if p.RemediationThreshold == 0 {
		p.RemediationThreshold = defaultRemediationThreshold
	}
	return p
}

// Validate checks parameters after defaults are applied.
func (p Params) Validate() error {
	if p.RemediationThreshold <= 0 || p.RemediationThreshold > 1 {
		return fmt.Errorf("planner: remediation threshold must be in (0, 1], got %v", p.RemediationThreshold)
	}
	return nil
}

// Decision is a single planning outcome: what the learner works on next
// and why. Complete decisions carry no topic or difficulty.
type Decision struct {
	Action     Action `json:"action"`
	TopicID    string `json:"topic_id,omitempty"`
	Difficulty int    `json:"difficulty,omitempty"`
	Reason     string `json:"reason"`
}

// Planner chooses the next working position from a mastery profile and a
// curriculum graph.
type Planner struct {
	graph  *curriculum.Graph
	model  *mastery.Model
	params Params
}

// New builds a planner over a curriculum graph and a mastery model.
func New(graph *curriculum.Graph, model *mastery.Model, params Params) (*Planner, error) {
	if graph == nil {
		return nil, fmt.Errorf("planner: curriculum graph is required")
	}
	if model == nil {
		return nil, fmt.Errorf("planner: mastery model is required")
	}
	params = params.withDefaults()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Planner{graph: graph, model: model, params: params}, nil
}

// Params returns the effective parameters after defaulting.
func (p *Planner) Params() Params {
	return p.params
}

// Decide evaluates the priority ladder against the profile. A profile
// whose active topic is unknown to the curriculum yields a
// *mastery.InvalidStateError; callers recover by rebuilding the profile
// from the attempt log and deciding again.
func (p *Planner) Decide(profile *mastery.Profile) (Decision, error) {
	if profile == nil {
		return Decision{}, &mastery.InvalidStateError{Reason: "nil profile"}
	}

	mastered := p.model.MasteredSet(profile)

	if profile.ActiveTopic != "" {
		d, handled, err := p.decideActive(profile, mastered)
		if err != nil {
			return Decision{}, err
		}
		if handled {
			return d, nil
		}
	}

	return p.decideNext(profile, mastered), nil
}

// decideActive handles the branches pinned to the learner's current
// position. The false return means the active topic is finished (or no
// longer reachable) and selection should move to the whole graph.
func (p *Planner) decideActive(profile *mastery.Profile, mastered map[string]bool) (Decision, bool, error) {
	topic, err := p.graph.Topic(profile.ActiveTopic)
	if err != nil {
		return Decision{}, false, &mastery.InvalidStateError{
			Reason: fmt.Sprintf("active topic %q is not in the curriculum", profile.ActiveTopic),
		}
	}
	state, ok := profile.State(topic.ID)
	if !ok {
		return Decision{}, false, &mastery.InvalidStateError{
			Reason: fmt.Sprintf("active topic %q has no recorded attempts", topic.ID),
		}
	}

	difficulty := profile.ActiveDifficulty
	if difficulty < curriculum.MinDifficulty {
		difficulty = curriculum.MinDifficulty
	}
	if difficulty > topic.MaxDifficulty {
		// The catalog ceiling may have dropped since the attempt was logged.
		difficulty = topic.MaxDifficulty
	}

	if !mastered[topic.ID] && p.graph.IsEligible(topic.ID, mastered) {
		if state.LastScore < p.params.RemediationThreshold {
			next := difficulty - 1
			if next < curriculum.MinDifficulty {
				next = curriculum.MinDifficulty
			}
			return Decision{
				Action:     Remediate,
				TopicID:    topic.ID,
				Difficulty: next,
				Reason:     fmt.Sprintf("last score %.2f is below %.2f, easing to difficulty %d", state.LastScore, p.params.RemediationThreshold, next),
			}, true, nil
		}
		return Decision{
			Action:     Hold,
			TopicID:    topic.ID,
			Difficulty: difficulty,
			Reason:     fmt.Sprintf("building mastery: %d attempts, recent score %.2f", state.Attempts, state.Recent),
		}, true, nil
	}

	if mastered[topic.ID] && difficulty < topic.MaxDifficulty {
		return Decision{
			Action:     Reinforce,
			TopicID:    topic.ID,
			Difficulty: difficulty + 1,
			Reason:     fmt.Sprintf("mastered at difficulty %d, raising to %d", difficulty, difficulty+1),
		}, true, nil
	}

	return Decision{}, false, nil
}

// decideNext selects a fresh topic: the eligible unmastered topic with
// the fewest logged attempts, ties broken by smallest topic ID. An empty
// frontier means the curriculum is finished.
func (p *Planner) decideNext(profile *mastery.Profile, mastered map[string]bool) Decision {
	candidates := p.graph.EligibleTopics(mastered)
	if len(candidates) == 0 {
		return Decision{
			Action: Complete,
			Reason: "every topic in the curriculum is mastered",
		}
	}

	best := candidates[0]
	bestAttempts := profile.TotalAttempts(best.ID)
	for _, t := range candidates[1:] {
		n := profile.TotalAttempts(t.ID)
		if n < bestAttempts || (n == bestAttempts && t.ID < best.ID) {
			best, bestAttempts = t, n
		}
	}

	return Decision{
		Action:     Advance,
		TopicID:    best.ID,
		Difficulty: curriculum.MinDifficulty,
		Reason:     fmt.Sprintf("prerequisites mastered, starting %s at difficulty %d", best.ID, curriculum.MinDifficulty),
	}
}
