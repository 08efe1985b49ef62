package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/spf13/cobra"

	httpadapter "github.com/fredcamaral/blogdeck/internal/adapters/primary/http"
	"github.com/fredcamaral/blogdeck/internal/adapters/secondary/browser"
	"github.com/fredcamaral/blogdeck/internal/adapters/secondary/renderer"
	"github.com/fredcamaral/blogdeck/internal/adapters/secondary/watcher"
	"github.com/fredcamaral/blogdeck/internal/domain/services"
)

func newServeCmd() *cobra.Command {
	var (
		watch  bool
		openID string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve decks built on demand from the content directory",
		Long: `Start a local HTTP server that builds decks from the posts in the
content directory on every request. With --watch (the default) the posts
are reloaded when they change and open deck pages refresh themselves.

Example:
  blogdeck serve
  blogdeck serve --port 8080 --theme dark --watch=false
  blogdeck serve --open hello-world`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, collectFlags(cmd, "port", "host", "theme"))
			if err != nil {
				return err
			}
			defer a.close()

			return runServe(cmd, a, watch, openID)
		},
	}

	cmd.Flags().IntP("port", "p", 0, "Port to serve on (overrides config)")
	cmd.Flags().String("host", "", "Host to bind to (overrides config)")
	cmd.Flags().StringP("theme", "t", "", "Default deck theme (overrides config)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", true, "Reload posts when they change")
	cmd.Flags().StringVar(&openID, "open", "", "Open this deck in the browser once serving")

	return cmd
}

func runServe(cmd *cobra.Command, a *app, watch bool, openID string) error {
	ctx := cmd.Context()

	html, err := renderer.NewHTMLRenderer()
	if err != nil {
		return err
	}

	repo := a.repository()
	decks := services.NewDeckService(repo, nil, nil, nil, a.logger, a.cfg.Segmenter.GetMaxChars())
	server := httpadapter.NewServer(repo, decks, html, a.cfg.Server, a.cfg.Theme.Name, a.logger)

	count, err := server.Reload(ctx)
	if err != nil {
		return err
	}

	if err := server.Start(ctx); err != nil {
		return err
	}
	defer func() {
		// The command context is already cancelled at this point
		if err := server.Stop(context.Background()); err != nil {
			a.logger.Warn("Server shutdown failed", slog.String("error", err.Error()))
		}
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %d decks at http://%s\n", count, server.Addr())

	if watch {
		fsWatcher := watcher.NewFSNotifyWatcher(a.cfg.Watcher.GetDebounce(), a.logger)
		liveReload := services.NewLiveReloadService(fsWatcher, server, server, a.logger)
		if err := liveReload.Start(ctx, repo.Root()); err != nil {
			return err
		}
		defer func() {
			if err := liveReload.Stop(); err != nil {
				a.logger.Warn("Stopping watcher failed", slog.String("error", err.Error()))
			}
		}()
		a.logger.Info("Watching for changes", slog.String("dir", repo.Root()))
	}

	if openID != "" {
		page := fmt.Sprintf("http://%s/decks/%s", server.Addr(), url.PathEscape(openID))
		if err := browser.NewOpener().Open(ctx, page); err != nil {
			a.logger.Warn("Could not open browser", slog.String("url", page), slog.String("error", err.Error()))
		}
	}

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down")
		return nil
	case err, ok := <-server.Errors():
		if ok && err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	}
}
