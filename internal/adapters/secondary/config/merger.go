package config

import (
	"github.com/fredcamaral/blogdeck/internal/domain/entities"
	"github.com/fredcamaral/blogdeck/internal/domain/ports"
)

// EnvPrefix prefixes every environment variable override
const EnvPrefix = "BLOGDECK_"

// ConfigMerger implements the ConfigMerger interface
type ConfigMerger struct{}

// NewConfigMerger creates a new configuration merger
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge merges multiple configurations with later configs taking precedence
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 || configs[0] == nil {
		configs = append([]*entities.Config{GetDefaultConfig()}, configs...)
	}

	result := deepCopy(configs[0])

	for i := 1; i < len(configs); i++ {
		if configs[i] != nil {
			m.mergeInto(result, configs[i])
		}
	}

	return result
}

// ApplyFlags applies CLI flag overrides to a configuration
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if dir, ok := flags["content-dir"].(string); ok && dir != "" {
		result.Content.Dir = dir
	}

	if dir, ok := flags["output-dir"].(string); ok && dir != "" {
		result.Output.Dir = dir
	}

	if maxChars, ok := flags["max-chars"].(int); ok && maxChars > 0 {
		result.Segmenter.MaxChars = maxChars
	}

	if concurrency, ok := flags["concurrency"].(int); ok && concurrency > 0 {
		result.Generate.Concurrency = concurrency
	}

	if port, ok := flags["port"].(int); ok && port > 0 {
		result.Server.Port = port
	}

	if host, ok := flags["host"].(string); ok && host != "" {
		result.Server.Host = host
	}

	if theme, ok := flags["theme"].(string); ok && theme != "" {
		result.Theme.Name = theme
	}

	if verbose, ok := flags["verbose"].(bool); ok && verbose {
		result.Logging.Level = string(entities.LogLevelDebug)
	}

	return result
}

// ApplyEnvVars applies BLOGDECK_* environment variable overrides to a configuration
func (m *ConfigMerger) ApplyEnvVars(config *entities.Config) *entities.Config {
	result := deepCopy(config)

	result.Content.Dir = getEnvOrDefault(EnvPrefix+"CONTENT_DIR", result.Content.Dir)
	result.Output.Dir = getEnvOrDefault(EnvPrefix+"OUTPUT_DIR", result.Output.Dir)
	result.Output.Manifest = getEnvOrDefault(EnvPrefix+"MANIFEST", result.Output.Manifest)

	if maxChars := getEnvIntOrDefault(EnvPrefix+"MAX_CHARS", 0); maxChars > 0 {
		result.Segmenter.MaxChars = maxChars
	}

	if concurrency := getEnvIntOrDefault(EnvPrefix+"CONCURRENCY", 0); concurrency > 0 {
		result.Generate.Concurrency = concurrency
	}

	result.Server.Host = getEnvOrDefault(EnvPrefix+"HOST", result.Server.Host)
	if port := getEnvIntOrDefault(EnvPrefix+"PORT", 0); port > 0 {
		result.Server.Port = port
	}
	result.Server.CORSOrigins = getEnvSliceOrDefault(EnvPrefix+"CORS_ORIGINS", result.Server.CORSOrigins)

	result.Theme.Name = getEnvOrDefault(EnvPrefix+"THEME", result.Theme.Name)

	if debounce := getEnvIntOrDefault(EnvPrefix+"WATCH_DEBOUNCE", -1); debounce >= 0 {
		result.Watcher.DebounceMs = debounce
	}

	result.Logging.Level = getEnvOrDefault(EnvPrefix+"LOG_LEVEL", result.Logging.Level)
	result.Logging.JSONFormat = getEnvBoolOrDefault(EnvPrefix+"LOG_JSON", result.Logging.JSONFormat)
	result.Logging.File = getEnvOrDefault(EnvPrefix+"LOG_FILE", result.Logging.File)

	return result
}

// mergeInto merges source configuration into target configuration
func (m *ConfigMerger) mergeInto(target, source *entities.Config) {
	// Content and output
	if source.Content.Dir != "" {
		target.Content.Dir = source.Content.Dir
	}
	if source.Output.Dir != "" {
		target.Output.Dir = source.Output.Dir
	}
	if source.Output.Manifest != "" {
		target.Output.Manifest = source.Output.Manifest
	}

	// Generation
	if source.Segmenter.MaxChars != 0 {
		target.Segmenter.MaxChars = source.Segmenter.MaxChars
	}
	if source.Generate.Concurrency != 0 {
		target.Generate.Concurrency = source.Generate.Concurrency
	}

	// Server config
	if source.Server.Port != 0 {
		target.Server.Port = source.Server.Port
	}
	if source.Server.Host != "" {
		target.Server.Host = source.Server.Host
	}
	if source.Server.ReadTimeout != 0 {
		target.Server.ReadTimeout = source.Server.ReadTimeout
	}
	if source.Server.WriteTimeout != 0 {
		target.Server.WriteTimeout = source.Server.WriteTimeout
	}
	if source.Server.ShutdownTimeout != 0 {
		target.Server.ShutdownTimeout = source.Server.ShutdownTimeout
	}
	if len(source.Server.CORSOrigins) > 0 {
		target.Server.CORSOrigins = make([]string, len(source.Server.CORSOrigins))
		copy(target.Server.CORSOrigins, source.Server.CORSOrigins)
	}

	// Theme config
	if source.Theme.Name != "" {
		target.Theme.Name = source.Theme.Name
	}

	// Watcher config
	if source.Watcher.DebounceMs != 0 {
		target.Watcher.DebounceMs = source.Watcher.DebounceMs
	}

	// Logging config
	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
	if source.Logging.JSONFormat {
		target.Logging.JSONFormat = true
	}
	if source.Logging.File != "" {
		target.Logging.File = source.Logging.File
	}
}

// deepCopy creates a deep copy of a configuration
func deepCopy(config *entities.Config) *entities.Config {
	if config == nil {
		return GetDefaultConfig()
	}

	result := *config

	if config.Server.CORSOrigins != nil {
		result.Server.CORSOrigins = make([]string, len(config.Server.CORSOrigins))
		copy(result.Server.CORSOrigins, config.Server.CORSOrigins)
	}

	return &result
}

// Ensure ConfigMerger implements ports.ConfigMerger
var _ ports.ConfigMerger = (*ConfigMerger)(nil)
