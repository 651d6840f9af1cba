// Package domain contains the core domain models for the module dependency graph.
package domain

import (
	"encoding/json"
	"iter"
	"maps"
	"slices"
)

// Graph maps a file identity to the set of file identities it directly depends on.
// The same type holds the inverted (dependents) graph produced by Invert.
type Graph struct {
	edges map[string]map[string]struct{}
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		edges: make(map[string]map[string]struct{}),
	}
}

// AddFile registers a file as a key of the graph without adding edges.
func (g *Graph) AddFile(file string) {
	if _, ok := g.edges[file]; !ok {
		g.edges[file] = make(map[string]struct{})
	}
}

// AddEdge records that from depends on to. Duplicate edges are ignored.
func (g *Graph) AddEdge(from, to string) {
	g.AddFile(from)
	g.edges[from][to] = struct{}{}
}

// Has reports whether file is a key of the graph.
func (g *Graph) Has(file string) bool {
	_, ok := g.edges[file]
	return ok
}

// HasEdge reports whether the edge from -> to exists.
func (g *Graph) HasEdge(from, to string) bool {
	deps, ok := g.edges[from]
	if !ok {
		return false
	}
	_, ok = deps[to]
	return ok
}

// Dependencies returns the direct dependencies of file in sorted order.
func (g *Graph) Dependencies(file string) []string {
	deps, ok := g.edges[file]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(deps))
}

// Files returns all keys of the graph in sorted order.
func (g *Graph) Files() []string {
	return slices.Sorted(maps.Keys(g.edges))
}

// Len returns the number of keys in the graph.
func (g *Graph) Len() int {
	return len(g.edges)
}

// EdgeCount returns the total number of edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, deps := range g.edges {
		n += len(deps)
	}
	return n
}

// Edges yields every edge in deterministic (sorted) order.
func (g *Graph) Edges() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, from := range g.Files() {
			for _, to := range g.Dependencies(from) {
				if !yield(from, to) {
					return
				}
			}
		}
	}
}

// Invert returns the transposed graph: for every edge A -> B the result holds B -> A.
// Files without dependents do not appear as keys.
func (g *Graph) Invert() *Graph {
	inverted := NewGraph()
	for from, deps := range g.edges {
		for to := range deps {
			inverted.AddEdge(to, from)
		}
	}
	return inverted
}

// MarshalJSON encodes the graph as an object of sorted dependency arrays.
func (g *Graph) MarshalJSON() ([]byte, error) {
	out := make(map[string][]string, len(g.edges))
	for file := range g.edges {
		deps := g.Dependencies(file)
		if deps == nil {
			deps = []string{}
		}
		out[file] = deps
	}
	return json.Marshal(out)
}
