package parser

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/impacted/internal/adapters/logger"
	"go.trai.ch/impacted/internal/core/ports"
)

// NodeID is the unique identifier for the specifier extractor Graft node.
const NodeID graft.ID = "adapter.parser"

func init() {
	graft.Register(graft.Node[ports.SpecifierExtractor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.SpecifierExtractor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
