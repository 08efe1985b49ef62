package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
)

// Setup builds the process logger from cfg. Text goes to w unless JSONFormat
// is set; when File is set every record is also appended to that file.
// The returned cleanup closes the file handle.
func Setup(cfg entities.LoggingConfig, w io.Writer) (*slog.Logger, func(), error) {
	if w == nil {
		w = os.Stderr
	}
	cleanup := func() {}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o750); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}

		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) // #nosec G304 - path comes from validated config
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}

		w = io.MultiWriter(w, f)
		cleanup = func() {
			_ = f.Close()
		}
	}

	opts := &slog.HandlerOptions{Level: Level(cfg.GetLevel())}

	var handler slog.Handler
	if cfg.JSONFormat {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler), cleanup, nil
}

// Level maps a configured level to its slog equivalent
func Level(level entities.LogLevel) slog.Level {
	switch level {
	case entities.LogLevelDebug:
		return slog.LevelDebug
	case entities.LogLevelWarn:
		return slog.LevelWarn
	case entities.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
