package changes

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/impacted/internal/core/ports"
)

// NodeID is the unique identifier for the change source factory Graft node.
const NodeID graft.ID = "adapter.changes"

func init() {
	graft.Register(graft.Node[ports.ChangeSourceFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ChangeSourceFactory, error) {
			return NewFactory(), nil
		},
	})
}
