package ports

import "go.trai.ch/nativedev/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the project configuration for the given working directory.
	// A missing configuration file yields the defaults rooted at cwd.
	Load(cwd string) (*domain.ProjectConfig, error)
}
