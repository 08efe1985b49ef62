package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
	"github.com/fredcamaral/blogdeck/internal/domain/ports"
)

// LocalConfigName is the per-project configuration file name
const LocalConfigName = "blogdeck.toml"

// TOMLLoader implements the ConfigLoader interface using TOML files
type TOMLLoader struct {
	globalPath string
	localName  string
}

// NewTOMLLoader creates a new TOML configuration loader
func NewTOMLLoader() *TOMLLoader {
	homeDir, _ := os.UserHomeDir()
	globalPath := filepath.Join(homeDir, ".config", "blogdeck", "config.toml")

	return NewTOMLLoaderWithPath(globalPath)
}

// NewTOMLLoaderWithPath creates a loader using an explicit global config path
func NewTOMLLoaderWithPath(globalPath string) *TOMLLoader {
	return &TOMLLoader{
		globalPath: globalPath,
		localName:  LocalConfigName,
	}
}

// LoadGlobal loads the global configuration file, creating it with defaults on first run
func (l *TOMLLoader) LoadGlobal(ctx context.Context) (*entities.Config, error) {
	if _, err := os.Stat(l.globalPath); os.IsNotExist(err) {
		if err := l.CreateDefaults(ctx, l.globalPath); err != nil {
			return nil, fmt.Errorf("creating defaults: %w", err)
		}
	}

	return l.loadConfig(l.globalPath)
}

// LoadLocal loads the local configuration file from dir, returning nil when absent
func (l *TOMLLoader) LoadLocal(ctx context.Context, dir string) (*entities.Config, error) {
	localPath := filepath.Join(dir, l.localName)

	if _, err := os.Stat(localPath); os.IsNotExist(err) {
		return nil, nil // Local config is optional
	}

	return l.loadConfig(localPath)
}

// LoadFile loads an explicitly named configuration file, which must exist
func (l *TOMLLoader) LoadFile(ctx context.Context, path string) (*entities.Config, error) {
	return l.loadConfig(path)
}

// CreateDefaults creates a default configuration file at the specified path
func (l *TOMLLoader) CreateDefaults(ctx context.Context, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating directory %s: %w", filepath.Dir(path), err)
	}

	file, err := os.Create(path) // #nosec G304 - path is the controlled global config path
	if err != nil {
		return fmt.Errorf("creating config file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	encoder := toml.NewEncoder(file)
	encoder.Indent = "  "

	if err := encoder.Encode(GetDefaultConfig()); err != nil {
		return fmt.Errorf("encoding config to %s: %w", path, err)
	}

	return nil
}

// GetGlobalPath returns the path to the global configuration file
func (l *TOMLLoader) GetGlobalPath() string {
	return l.globalPath
}

// GetLocalPath returns the path to the local configuration file for a directory
func (l *TOMLLoader) GetLocalPath(dir string) string {
	return filepath.Join(dir, l.localName)
}

// loadConfig decodes a configuration file. Partial files are allowed; the
// merged result is validated by the caller.
func (l *TOMLLoader) loadConfig(path string) (*entities.Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is from controlled sources (global/local/flag)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var config entities.Config
	meta, err := toml.Decode(string(data), &config)
	if err != nil {
		return nil, fmt.Errorf("parsing TOML from %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in %s: %v", path, undecoded)
	}

	return &config, nil
}

// Ensure TOMLLoader implements ports.ConfigLoader
var _ ports.ConfigLoader = (*TOMLLoader)(nil)
