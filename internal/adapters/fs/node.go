package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/impacted/internal/core/ports"
)

const (
	WalkerNodeID     graft.ID = "adapter.fs.walker"
	FileSystemNodeID graft.ID = "adapter.fs.filesystem"
	ListerNodeID     graft.ID = "adapter.fs.lister"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.FileSystem]{
		ID:        FileSystemNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.FileSystem, error) {
			return NewOSFS(), nil
		},
	})

	graft.Register(graft.Node[ports.TestFileLister]{
		ID:        ListerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.TestFileLister, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewLister(walker), nil
		},
	})
}
