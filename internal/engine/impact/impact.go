// Package impact computes which test files are affected by a set of changed files.
package impact

import (
	"path/filepath"

	"go.trai.ch/impacted/internal/core/domain"
)

// Analyze returns the test files that reach any changed file through the forward graph.
// A changed file that is itself a test is impacted with zero hops.
// The result is duplicate-free and unordered.
func Analyze(changed, tests []string, graph *domain.Graph) []string {
	impacted := []string{}
	if len(changed) == 0 || len(tests) == 0 {
		return impacted
	}

	isTest := make(map[string]struct{}, len(tests))
	for _, t := range tests {
		isTest[filepath.Clean(t)] = struct{}{}
	}

	dependents := graph.Invert()
	visited := make(map[string]struct{}, len(changed))
	queue := make([]string, 0, len(changed))
	for _, c := range changed {
		c = filepath.Clean(c)
		if _, seen := visited[c]; seen {
			continue
		}
		visited[c] = struct{}{}
		queue = append(queue, c)
	}

	for len(queue) > 0 {
		file := queue[0]
		queue = queue[1:]

		if _, ok := isTest[file]; ok {
			impacted = append(impacted, file)
		}
		for _, dependent := range dependents.Dependencies(file) {
			if _, seen := visited[dependent]; seen {
				continue
			}
			visited[dependent] = struct{}{}
			queue = append(queue, dependent)
		}
	}
	return impacted
}
