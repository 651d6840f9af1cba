package builder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/impacted/internal/adapters/fs"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/impacted/internal/adapters/parser"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/impacted/internal/adapters/resolver" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/impacted/internal/core/ports"
)

// NodeID is the unique identifier for the graph builder Graft node.
const NodeID graft.ID = "engine.builder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.FileSystemNodeID,
			parser.NodeID,
			resolver.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}

			extractor, err := graft.Dep[ports.SpecifierExtractor](ctx)
			if err != nil {
				return nil, err
			}

			res, err := graft.Dep[ports.ModuleResolver](ctx)
			if err != nil {
				return nil, err
			}

			return New(fsys, extractor, res), nil
		},
	})
}
