package ports

import (
	"context"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
)

// ConfigLoader defines the interface for loading configuration files
type ConfigLoader interface {
	// LoadGlobal loads the global configuration file
	LoadGlobal(ctx context.Context) (*entities.Config, error)

	// LoadLocal loads a local configuration file from the specified directory
	LoadLocal(ctx context.Context, dir string) (*entities.Config, error)

	// LoadFile loads an explicit configuration file
	LoadFile(ctx context.Context, path string) (*entities.Config, error)

	// CreateDefaults creates a default configuration file at the specified path
	CreateDefaults(ctx context.Context, path string) error
}

// ConfigMerger defines the interface for merging configurations
type ConfigMerger interface {
	// Merge merges multiple configurations with later configs taking precedence
	Merge(configs ...*entities.Config) *entities.Config

	// ApplyFlags applies CLI flag overrides to a configuration
	ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config

	// ApplyEnvVars applies environment variable overrides to a configuration
	ApplyEnvVars(config *entities.Config) *entities.Config
}
