package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/blogdeck/internal/adapters/secondary/config"
	"github.com/fredcamaral/blogdeck/internal/adapters/secondary/logging"
	"github.com/fredcamaral/blogdeck/internal/adapters/secondary/manifest"
	"github.com/fredcamaral/blogdeck/internal/adapters/secondary/parser"
	"github.com/fredcamaral/blogdeck/internal/adapters/secondary/repository"
	"github.com/fredcamaral/blogdeck/internal/adapters/secondary/sink"
	"github.com/fredcamaral/blogdeck/internal/domain/entities"
	"github.com/fredcamaral/blogdeck/internal/domain/ports"
	"github.com/fredcamaral/blogdeck/internal/domain/services"
)

// app holds the resolved configuration and shared adapters for one command run
type app struct {
	cfg     *entities.Config
	logger  *slog.Logger
	cleanup func()
}

// loadApp resolves the layered configuration and sets up logging. extra holds
// command specific flag overrides.
func loadApp(cmd *cobra.Command, extra map[string]interface{}) (*app, error) {
	workingDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	configPath, _ := cmd.Flags().GetString("config")

	flags := collectFlags(cmd, "content-dir", "output-dir", "max-chars", "verbose")
	for k, v := range extra {
		flags[k] = v
	}

	configService := services.NewConfigService(config.NewTOMLLoader(), config.NewConfigMerger())
	cfg, err := configService.LoadConfig(cmd.Context(), workingDir, configPath, flags)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	logger, cleanup, err := logging.Setup(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	logger.Debug("Configuration loaded",
		slog.String("content", cfg.Content.Dir),
		slog.String("output", cfg.Output.Dir),
		slog.Int("max_chars", cfg.Segmenter.GetMaxChars()),
	)

	return &app{cfg: cfg, logger: logger, cleanup: cleanup}, nil
}

// collectFlags returns the values of the named flags the user set explicitly
func collectFlags(cmd *cobra.Command, names ...string) map[string]interface{} {
	flags := make(map[string]interface{})
	for _, name := range names {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		switch f.Value.Type() {
		case "int":
			v, _ := cmd.Flags().GetInt(name)
			flags[name] = v
		case "bool":
			v, _ := cmd.Flags().GetBool(name)
			flags[name] = v
		default:
			flags[name] = f.Value.String()
		}
	}
	return flags
}

func (a *app) close() {
	if a.cleanup != nil {
		a.cleanup()
	}
}

func (a *app) repository() *repository.DocumentRepository {
	return repository.NewDocumentRepository(a.cfg.Content.Dir, nil, parser.NewFrontMatterReader())
}

func (a *app) store() *sink.JSONStore {
	return sink.NewJSONStore(a.cfg.Output.Dir, nil)
}

// openManifest opens the build manifest. A manifest that cannot be opened
// only disables build tracking.
func (a *app) openManifest() (ports.ManifestStore, func()) {
	path := a.cfg.Output.GetManifestPath()
	store, err := manifest.Open(path)
	if err != nil {
		a.logger.Warn("Build manifest unavailable",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return nil, func() {}
	}

	return store, func() {
		if err := store.Close(); err != nil {
			a.logger.Warn("Failed to close build manifest", slog.String("error", err.Error()))
		}
	}
}
