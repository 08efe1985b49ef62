package entities

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultMaxChars is the paragraph grouping threshold used when none is configured
const DefaultMaxChars = 300

// Config represents the complete application configuration
type Config struct {
	Content   ContentConfig   `toml:"content"`
	Output    OutputConfig    `toml:"output"`
	Segmenter SegmenterConfig `toml:"segmenter"`
	Generate  GenerateConfig  `toml:"generate"`
	Server    ServerConfig    `toml:"server"`
	Theme     ThemeConfig     `toml:"theme"`
	Watcher   WatcherConfig   `toml:"watcher"`
	Logging   LoggingConfig   `toml:"logging"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Content.Validate(); err != nil {
		return fmt.Errorf("content config: %w", err)
	}

	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	if err := c.Segmenter.Validate(); err != nil {
		return fmt.Errorf("segmenter config: %w", err)
	}

	if err := c.Generate.Validate(); err != nil {
		return fmt.Errorf("generate config: %w", err)
	}

	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Theme.Validate(); err != nil {
		return fmt.Errorf("theme config: %w", err)
	}

	if err := c.Watcher.Validate(); err != nil {
		return fmt.Errorf("watcher config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ContentConfig locates the source documents
type ContentConfig struct {
	Dir string `toml:"dir"`
}

// Validate validates content configuration
func (c ContentConfig) Validate() error {
	if strings.TrimSpace(c.Dir) == "" {
		return errors.New("content directory cannot be empty")
	}
	return nil
}

// OutputConfig locates the persisted deck artifacts
type OutputConfig struct {
	Dir      string `toml:"dir"`
	Manifest string `toml:"manifest"`
}

// Validate validates output configuration
func (o OutputConfig) Validate() error {
	if strings.TrimSpace(o.Dir) == "" {
		return errors.New("output directory cannot be empty")
	}
	return nil
}

// GetManifestPath returns the manifest database path, defaulting to a file in the output directory
func (o OutputConfig) GetManifestPath() string {
	if o.Manifest != "" {
		return o.Manifest
	}
	return filepath.Join(o.Dir, ".manifest.db")
}

// SegmenterConfig tunes how document bodies are split into slides
type SegmenterConfig struct {
	// MaxChars is the longest a grouped content slide may grow before it is flushed
	MaxChars int `toml:"max_chars"`
}

// Validate validates segmenter configuration
func (s SegmenterConfig) Validate() error {
	if s.MaxChars < 0 {
		return errors.New("max chars must be non-negative")
	}
	return nil
}

// GetMaxChars returns the threshold with default
func (s SegmenterConfig) GetMaxChars() int {
	if s.MaxChars <= 0 {
		return DefaultMaxChars
	}
	return s.MaxChars
}

// GenerateConfig controls batch generation
type GenerateConfig struct {
	Concurrency int `toml:"concurrency"`
}

// Validate validates generate configuration
func (g GenerateConfig) Validate() error {
	if g.Concurrency < 0 {
		return errors.New("concurrency must be non-negative")
	}
	return nil
}

// GetConcurrency returns the worker count with default
func (g GenerateConfig) GetConcurrency() int {
	if g.Concurrency <= 0 {
		return 4
	}
	return g.Concurrency
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	CORSOrigins     []string `toml:"cors_origins"`
}

// Validate validates server configuration
func (s ServerConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}

	if s.Host != "" && s.Host != "localhost" {
		if ip := net.ParseIP(s.Host); ip == nil && strings.ContainsAny(s.Host, " !/") {
			return fmt.Errorf("invalid host: %s", s.Host)
		}
	}

	if s.ReadTimeout < 0 {
		return errors.New("read timeout must be non-negative")
	}

	if s.WriteTimeout < 0 {
		return errors.New("write timeout must be non-negative")
	}

	if s.ShutdownTimeout < 0 {
		return errors.New("shutdown timeout must be non-negative")
	}

	for _, origin := range s.CORSOrigins {
		if origin == "" {
			return errors.New("CORS origin cannot be empty")
		}
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid CORS origin format: %s (must start with http:// or https://)", origin)
		}
	}

	return nil
}

// GetReadTimeout returns the read timeout as a duration
func (s ServerConfig) GetReadTimeout() time.Duration {
	if s.ReadTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.ReadTimeout) * time.Second
}

// GetWriteTimeout returns the write timeout as a duration
func (s ServerConfig) GetWriteTimeout() time.Duration {
	if s.WriteTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.WriteTimeout) * time.Second
}

// GetShutdownTimeout returns the shutdown timeout as a duration
func (s ServerConfig) GetShutdownTimeout() time.Duration {
	if s.ShutdownTimeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// GetCORSOrigins returns CORS origins with defaults if empty
func (s ServerConfig) GetCORSOrigins() []string {
	if len(s.CORSOrigins) == 0 {
		return []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:8080",
			"http://127.0.0.1:8080",
		}
	}
	return s.CORSOrigins
}

// ThemeConfig selects the display theme handed to the presentation runtime
type ThemeConfig struct {
	Name string `toml:"name"`
}

// Validate validates theme configuration
func (t ThemeConfig) Validate() error {
	if strings.ContainsAny(t.Name, "/\\") {
		return fmt.Errorf("invalid theme name: %s", t.Name)
	}
	return nil
}

// WatcherConfig contains file watcher configuration
type WatcherConfig struct {
	DebounceMs int `toml:"debounce_ms"`
}

// Validate validates watcher configuration
func (w WatcherConfig) Validate() error {
	if w.DebounceMs < 0 {
		return errors.New("debounce time must be non-negative")
	}
	return nil
}

// GetDebounce returns the debounce time as a duration
func (w WatcherConfig) GetDebounce() time.Duration {
	if w.DebounceMs <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(w.DebounceMs) * time.Millisecond
}

// LogLevel represents logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `toml:"level"`       // debug, info, warn, error
	JSONFormat bool   `toml:"json_format"` // Output logs in JSON format
	File       string `toml:"file"`        // Also log to file (optional)
}

// Validate validates logging configuration
func (l LoggingConfig) Validate() error {
	switch LogLevel(l.Level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	case "":
		// Empty is okay, will use default
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l.Level)
	}

	if l.File != "" {
		if !filepath.IsAbs(l.File) {
			return errors.New("log file path must be absolute")
		}

		dir := filepath.Dir(l.File)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("log file directory does not exist: %s", dir)
		}
	}

	return nil
}

// GetLevel returns the log level with default
func (l LoggingConfig) GetLevel() LogLevel {
	if l.Level == "" {
		return LogLevelInfo
	}
	return LogLevel(l.Level)
}
