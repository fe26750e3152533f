package ports

import "go.trai.ch/mason/internal/core/domain"

// ConfigLoader defines the interface for loading build defaults.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the defaults file from the given working directory.
	// A missing file is not an error and yields zero-value defaults.
	Load(cwd string) (*domain.BuildDefaults, error)
}
