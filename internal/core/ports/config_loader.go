package ports

import "go.trai.ch/mortar/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads mortar.yaml from dir and returns the resulting project.
	// A missing config file is not an error: every value falls back to the
	// fixed defaults.
	Load(dir string) (domain.Project, error)
}
