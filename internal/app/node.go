package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/impacted/internal/adapters/cache"              //nolint:depguard // Wired in app layer
	"go.trai.ch/impacted/internal/adapters/changes"            //nolint:depguard // Wired in app layer
	"go.trai.ch/impacted/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/impacted/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/impacted/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/impacted/internal/adapters/metrics"            //nolint:depguard // Wired in app layer
	"go.trai.ch/impacted/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/impacted/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/impacted/internal/core/ports"
	"go.trai.ch/impacted/internal/engine/builder"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.ListerNodeID,
			builder.NodeID,
			changes.NodeID,
			cache.NodeID,
			watcher.NodeID,
			progrock.NodeID,
			metrics.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	lister, err := graft.Dep[ports.TestFileLister](ctx)
	if err != nil {
		return nil, err
	}

	graphBuilder, err := graft.Dep[*builder.Builder](ctx)
	if err != nil {
		return nil, err
	}

	changeSources, err := graft.Dep[ports.ChangeSourceFactory](ctx)
	if err != nil {
		return nil, err
	}

	caches, err := graft.Dep[ports.CacheFactory](ctx)
	if err != nil {
		return nil, err
	}

	watchers, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	recorder, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, lister, graphBuilder, changeSources, caches, watchers, telemetry, recorder, log), nil
}
