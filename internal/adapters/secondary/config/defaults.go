package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
)

// GetDefaultConfig returns the built-in configuration
func GetDefaultConfig() *entities.Config {
	return &entities.Config{
		Content: entities.ContentConfig{
			Dir: "content/posts",
		},
		Output: entities.OutputConfig{
			Dir:      "public/slides",
			Manifest: "",
		},
		Segmenter: entities.SegmenterConfig{
			MaxChars: entities.DefaultMaxChars,
		},
		Generate: entities.GenerateConfig{
			Concurrency: 4,
		},
		Server: entities.ServerConfig{
			Host:            "localhost",
			Port:            3000,
			ReadTimeout:     30,
			WriteTimeout:    30,
			ShutdownTimeout: 5,
			CORSOrigins: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
			},
		},
		Theme: entities.ThemeConfig{
			Name: "default",
		},
		Watcher: entities.WatcherConfig{
			DebounceMs: 200,
		},
		Logging: entities.LoggingConfig{
			Level:      "info",
			JSONFormat: false,
			File:       "",
		},
	}
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvSliceOrDefault returns environment variable as slice or default
func getEnvSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
