package ports

import "go.trai.ch/impacted/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the configuration for the given working directory.
	// Defaults are returned when no config file exists.
	Load(cwd string) (*domain.Config, error)
}
