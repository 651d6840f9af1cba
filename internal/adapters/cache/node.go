package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/impacted/internal/adapters/fs"
	"go.trai.ch/impacted/internal/core/ports"
)

// NodeID is the unique identifier for the cache factory Graft node.
const NodeID graft.ID = "adapter.cache"

func init() {
	graft.Register(graft.Node[ports.CacheFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.FileSystemNodeID},
		Run: func(ctx context.Context) (ports.CacheFactory, error) {
			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(fsys), nil
		},
	})
}
