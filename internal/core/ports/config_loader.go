package ports

import "go.trai.ch/rig/internal/core/domain"

// ConfigLoader defines the interface for loading the provisioning configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path, applies environment overrides and returns the plan.
	// An empty path searches the working directory.
	Load(path string) (*domain.Plan, error)
}
