package impact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/impacted/internal/core/domain"
	"go.trai.ch/impacted/internal/engine/impact"
)

func graphOf(edges ...[2]string) *domain.Graph {
	g := domain.NewGraph()
	for _, e := range edges {
		g.AddEdge(e[0], e[1])
	}
	return g
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name    string
		graph   *domain.Graph
		changed []string
		tests   []string
		want    []string
	}{
		{
			name:    "no changes",
			graph:   graphOf([2]string{"/t1.test.ts", "/m.ts"}),
			changed: nil,
			tests:   []string{"/t1.test.ts"},
			want:    []string{},
		},
		{
			name:    "no tests",
			graph:   graphOf([2]string{"/t1.test.ts", "/m.ts"}),
			changed: []string{"/m.ts"},
			tests:   nil,
			want:    []string{},
		},
		{
			name:    "direct import",
			graph:   graphOf([2]string{"/t1.test.ts", "/m.ts"}),
			changed: []string{"/m.ts"},
			tests:   []string{"/t1.test.ts", "/t2.test.ts"},
			want:    []string{"/t1.test.ts"},
		},
		{
			name: "transitive import",
			graph: graphOf(
				[2]string{"/t3.test.ts", "/h.ts"},
				[2]string{"/h.ts", "/m.ts"},
			),
			changed: []string{"/m.ts"},
			tests:   []string{"/t3.test.ts"},
			want:    []string{"/t3.test.ts"},
		},
		{
			name: "two hops through a chain",
			graph: graphOf(
				[2]string{"/a.test.ts", "/b.ts"},
				[2]string{"/b.ts", "/c.ts"},
			),
			changed: []string{"/c.ts"},
			tests:   []string{"/a.test.ts"},
			want:    []string{"/a.test.ts"},
		},
		{
			name:    "changed test file",
			graph:   graphOf(),
			changed: []string{"/t1.test.ts"},
			tests:   []string{"/t1.test.ts"},
			want:    []string{"/t1.test.ts"},
		},
		{
			name:    "changed test file without graph entry is still impacted",
			graph:   graphOf([2]string{"/t2.test.ts", "/m.ts"}),
			changed: []string{"/t1.test.ts", "/t1.test.ts"},
			tests:   []string{"/t1.test.ts", "/t2.test.ts"},
			want:    []string{"/t1.test.ts"},
		},
		{
			name: "cycle terminates",
			graph: graphOf(
				[2]string{"/t.test.ts", "/a.ts"},
				[2]string{"/a.ts", "/b.ts"},
				[2]string{"/b.ts", "/a.ts"},
			),
			changed: []string{"/b.ts"},
			tests:   []string{"/t.test.ts"},
			want:    []string{"/t.test.ts"},
		},
		{
			name: "diamond reports each test once",
			graph: graphOf(
				[2]string{"/t.test.ts", "/l.ts"},
				[2]string{"/t.test.ts", "/r.ts"},
				[2]string{"/l.ts", "/m.ts"},
				[2]string{"/r.ts", "/m.ts"},
			),
			changed: []string{"/m.ts", "/l.ts"},
			tests:   []string{"/t.test.ts"},
			want:    []string{"/t.test.ts"},
		},
		{
			name:    "unrelated change",
			graph:   graphOf([2]string{"/t1.test.ts", "/m.ts"}),
			changed: []string{"/other.ts"},
			tests:   []string{"/t1.test.ts"},
			want:    []string{},
		},
		{
			name: "test imported by another test",
			graph: graphOf(
				[2]string{"/a.test.ts", "/helpers.test.ts"},
				[2]string{"/helpers.test.ts", "/m.ts"},
			),
			changed: []string{"/m.ts"},
			tests:   []string{"/a.test.ts", "/helpers.test.ts"},
			want:    []string{"/a.test.ts", "/helpers.test.ts"},
		},
		{
			name:    "paths are cleaned",
			graph:   graphOf([2]string{"/t1.test.ts", "/src/m.ts"}),
			changed: []string{"/src/../src/m.ts"},
			tests:   []string{"/./t1.test.ts"},
			want:    []string{"/t1.test.ts"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := impact.Analyze(tt.changed, tt.tests, tt.graph)
			assert.ElementsMatch(t, tt.want, got)
			assert.NotNil(t, got)
		})
	}
}
