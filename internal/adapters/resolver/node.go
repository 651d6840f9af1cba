package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/impacted/internal/adapters/fs"
	"go.trai.ch/impacted/internal/core/ports"
)

// NodeID is the unique identifier for the module resolver Graft node.
const NodeID graft.ID = "adapter.resolver"

func init() {
	graft.Register(graft.Node[ports.ModuleResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.FileSystemNodeID},
		Run: func(ctx context.Context) (ports.ModuleResolver, error) {
			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			manifests, err := NewManifestCache(fsys, DefaultManifestCacheSize)
			if err != nil {
				return nil, err
			}
			return New(fsys, manifests), nil
		},
	})
}
