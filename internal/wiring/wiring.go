// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/impacted/internal/adapters/cache"
	_ "go.trai.ch/impacted/internal/adapters/changes"
	_ "go.trai.ch/impacted/internal/adapters/config"
	_ "go.trai.ch/impacted/internal/adapters/fs"
	_ "go.trai.ch/impacted/internal/adapters/logger"
	_ "go.trai.ch/impacted/internal/adapters/metrics"
	_ "go.trai.ch/impacted/internal/adapters/parser"
	_ "go.trai.ch/impacted/internal/adapters/resolver"
	_ "go.trai.ch/impacted/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/impacted/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/impacted/internal/app"
	_ "go.trai.ch/impacted/internal/engine/builder"
)
