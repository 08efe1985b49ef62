package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
	"github.com/fredcamaral/blogdeck/internal/domain/ports"
)

// ConfigService resolves the effective configuration from its layered sources
type ConfigService struct {
	loader ports.ConfigLoader
	merger ports.ConfigMerger
}

// NewConfigService creates a new configuration service
func NewConfigService(loader ports.ConfigLoader, merger ports.ConfigMerger) *ConfigService {
	return &ConfigService{
		loader: loader,
		merger: merger,
	}
}

// LoadConfig merges defaults, the global file, the local file (or configPath
// when set), environment variables and CLI flags, in increasing precedence
func (s *ConfigService) LoadConfig(ctx context.Context, workingDir, configPath string, flags map[string]interface{}) (*entities.Config, error) {
	defaultConfig := s.GetDefaultConfig()

	globalConfig, err := s.loader.LoadGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	var localConfig *entities.Config
	if configPath != "" {
		localConfig, err = s.loader.LoadFile(ctx, configPath)
	} else {
		localConfig, err = s.loader.LoadLocal(ctx, workingDir)
	}
	if err != nil {
		return nil, fmt.Errorf("loading local config: %w", err)
	}

	configs := []*entities.Config{defaultConfig}
	if globalConfig != nil {
		configs = append(configs, globalConfig)
	}
	if localConfig != nil {
		configs = append(configs, localConfig)
	}

	mergedConfig := s.merger.Merge(configs...)
	envConfig := s.merger.ApplyEnvVars(mergedConfig)
	finalConfig := s.merger.ApplyFlags(envConfig, flags)

	if err := s.ValidateConfig(finalConfig); err != nil {
		return nil, fmt.Errorf("final config validation: %w", err)
	}

	return finalConfig, nil
}

// GetDefaultConfig returns the default configuration
func (s *ConfigService) GetDefaultConfig() *entities.Config {
	// Merge with no arguments returns defaults
	return s.merger.Merge()
}

// ValidateConfig validates a configuration
func (s *ConfigService) ValidateConfig(config *entities.Config) error {
	if config == nil {
		return errors.New("config cannot be nil")
	}

	return config.Validate()
}
