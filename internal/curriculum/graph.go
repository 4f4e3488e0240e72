package curriculum

import (
	"fmt"
	"slices"
	"sort"
)

// Graph holds the topic DAG with precomputed indices. Graphs are immutable
// after construction and safe for concurrent reads. There is no package
// singleton: callers build a Graph and pass it down explicitly.
type Graph struct {
	topics     []Topic
	byID       map[string]*Topic
	roots      []Topic
	dependents map[string][]string
	topoOrder  []Topic
	topoIndex  map[string]int
}

// New constructs a Graph from a slice of topics. Defaults are applied,
// the set is validated (duplicates, dangling prerequisites, cycles), and
// the topological order is computed with Kahn's algorithm.
func New(topics []Topic) (*Graph, error) {
	normalized := make([]Topic, len(topics))
	for i, t := range topics {
		normalized[i] = t.withDefaults()
	}

	if err := validateTopics(normalized); err != nil {
		return nil, err
	}

	g := &Graph{
		topics:     normalized,
		byID:       make(map[string]*Topic, len(normalized)),
		dependents: make(map[string][]string),
		topoIndex:  make(map[string]int, len(normalized)),
	}

	for i := range g.topics {
		g.byID[g.topics[i].ID] = &g.topics[i]
	}

	// Reverse edges.
	for i := range g.topics {
		for _, prereqID := range g.topics[i].Prerequisites {
			g.dependents[prereqID] = append(g.dependents[prereqID], g.topics[i].ID)
		}
	}

	// Topological sort (Kahn's algorithm). Queues are kept sorted so the
	// resulting order is deterministic across runs.
	inDegree := make(map[string]int, len(normalized))
	for i := range normalized {
		inDegree[normalized[i].ID] = len(normalized[i].Prerequisites)
	}

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	var topoOrder []Topic
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		topoOrder = append(topoOrder, *g.byID[id])

		deps := slices.Clone(g.dependents[id])
		sort.Strings(deps)
		for _, depID := range deps {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	g.topoOrder = topoOrder
	for i, t := range g.topoOrder {
		g.topoIndex[t.ID] = i
	}

	for i := range g.topics {
		if len(g.topics[i].Prerequisites) == 0 {
			g.roots = append(g.roots, g.topics[i])
		}
	}

	return g, nil
}

// MustNew is New for curated catalogs that are known valid; it panics on
// validation failure. Used for the embedded default curriculum.
func MustNew(topics []Topic) *Graph {
	g, err := New(topics)
	if err != nil {
		panic(fmt.Sprintf("curriculum: %v", err))
	}
	return g
}

// Topic returns a topic by ID, or an error if not found.
func (g *Graph) Topic(id string) (Topic, error) {
	t, ok := g.byID[id]
	if !ok {
		return Topic{}, fmt.Errorf("topic not found: %q", id)
	}
	return *t, nil
}

// Contains reports whether the graph has a topic with the given ID.
func (g *Graph) Contains(id string) bool {
	_, ok := g.byID[id]
	return ok
}

// Topics returns all topics in insertion order.
func (g *Graph) Topics() []Topic {
	return slices.Clone(g.topics)
}

// Len returns the number of topics.
func (g *Graph) Len() int {
	return len(g.topics)
}

// Roots returns all topics with no prerequisites.
func (g *Graph) Roots() []Topic {
	return slices.Clone(g.roots)
}

// Prerequisites returns the direct prerequisite topics for a topic ID.
func (g *Graph) Prerequisites(id string) []Topic {
	t, ok := g.byID[id]
	if !ok {
		return nil
	}
	result := make([]Topic, 0, len(t.Prerequisites))
	for _, prereqID := range t.Prerequisites {
		if p, ok := g.byID[prereqID]; ok {
			result = append(result, *p)
		}
	}
	return result
}

// Dependents returns topics that directly depend on the given topic ID.
func (g *Graph) Dependents(id string) []Topic {
	depIDs := g.dependents[id]
	result := make([]Topic, 0, len(depIDs))
	for _, depID := range depIDs {
		if t, ok := g.byID[depID]; ok {
			result = append(result, *t)
		}
	}
	return result
}

// IsEligible returns true if every prerequisite of the topic is in the
// mastered set. Unknown topic IDs are never eligible.
func (g *Graph) IsEligible(id string, mastered map[string]bool) bool {
	t, ok := g.byID[id]
	if !ok {
		return false
	}
	for _, prereqID := range t.Prerequisites {
		if !mastered[prereqID] {
			return false
		}
	}
	return true
}

// EligibleTopics returns all topics that are eligible but not yet
// mastered, in topological order.
func (g *Graph) EligibleTopics(mastered map[string]bool) []Topic {
	var result []Topic
	for _, t := range g.topoOrder {
		if !mastered[t.ID] && g.IsEligible(t.ID, mastered) {
			result = append(result, t)
		}
	}
	return result
}

// TopologicalOrder returns all topics in a valid topological order.
func (g *Graph) TopologicalOrder() []Topic {
	return slices.Clone(g.topoOrder)
}
