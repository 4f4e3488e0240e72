package curriculum

import (
	"fmt"
	"strings"
)

// validateTopics performs all structural checks on the given topic set.
// Returns a combined error describing all problems found, or nil if valid.
func validateTopics(topics []Topic) error {
	var errs []string

	idSet := make(map[string]bool, len(topics))

	// Per-topic field checks and duplicate IDs.
	for _, t := range topics {
		if err := t.Validate(); err != nil {
			errs = append(errs, err.Error())
		}
		if idSet[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate topic ID: %q", t.ID))
		}
		idSet[t.ID] = true
	}

	// Dangling prerequisites.
	for _, t := range topics {
		for _, prereqID := range t.Prerequisites {
			if !idSet[prereqID] {
				errs = append(errs, fmt.Sprintf("topic %q references nonexistent prerequisite %q", t.ID, prereqID))
			}
		}
	}

	// Cycle check using Kahn's algorithm.
	inDegree := make(map[string]int, len(topics))
	adjList := make(map[string][]string)
	for _, t := range topics {
		inDegree[t.ID] = len(t.Prerequisites)
		for _, prereqID := range t.Prerequisites {
			adjList[prereqID] = append(adjList[prereqID], t.ID)
		}
	}

	var queue []string
	for _, t := range topics {
		if inDegree[t.ID] == 0 {
			queue = append(queue, t.ID)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, depID := range adjList[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	if visited < len(topics) {
		var cycleNodes []string
		for _, t := range topics {
			if inDegree[t.ID] > 0 {
				cycleNodes = append(cycleNodes, t.ID)
			}
		}
		errs = append(errs, fmt.Sprintf("cycle detected involving topics: %s", strings.Join(cycleNodes, ", ")))
	}

	// At least one root, or nothing is ever reachable.
	hasRoot := false
	for _, t := range topics {
		if len(t.Prerequisites) == 0 {
			hasRoot = true
			break
		}
	}
	if len(topics) > 0 && !hasRoot {
		errs = append(errs, "no root topics found (at least one topic must have no prerequisites)")
	}

	if len(topics) == 0 {
		errs = append(errs, "curriculum is empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("curriculum validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
