package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fredcamaral/blogdeck/internal/domain/ports"
)

// LiveReloadService reloads the served documents when the content directory
// changes and tells connected clients to refresh
type LiveReloadService struct {
	watcher     ports.FileWatcher
	reloader    ports.DocumentReloader
	server      ports.HTTPServer
	logger      *slog.Logger
	mu          sync.Mutex
	watching    bool
	watchCancel context.CancelFunc
	done        chan struct{}
}

// NewLiveReloadService creates a new live reload service
func NewLiveReloadService(
	watcher ports.FileWatcher,
	reloader ports.DocumentReloader,
	server ports.HTTPServer,
	logger *slog.Logger,
) *LiveReloadService {
	if logger == nil {
		logger = slog.Default()
	}

	return &LiveReloadService{
		watcher:  watcher,
		reloader: reloader,
		server:   server,
		logger:   logger.With("service", "live_reload"),
	}
}

// Start starts watching dir
func (s *LiveReloadService) Start(ctx context.Context, dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watching {
		return errors.New("already watching")
	}

	watchCtx, cancel := context.WithCancel(ctx)

	events, err := s.watcher.Watch(watchCtx, dir)
	if err != nil {
		cancel()
		return fmt.Errorf("starting watcher: %w", err)
	}

	s.watching = true
	s.watchCancel = cancel
	s.done = make(chan struct{})

	go s.handleEvents(watchCtx, events, s.done)

	return nil
}

// Stop stops the live reload service and waits for the event loop to exit
func (s *LiveReloadService) Stop() error {
	s.mu.Lock()
	if !s.watching {
		s.mu.Unlock()
		return nil
	}
	s.watchCancel()
	s.watchCancel = nil
	s.watching = false
	done := s.done
	s.mu.Unlock()

	<-done
	return s.watcher.Stop()
}

// IsWatching returns whether the service is currently watching
func (s *LiveReloadService) IsWatching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watching
}

// handleEvents handles file change events until ctx ends or the watcher closes
func (s *LiveReloadService) handleEvents(ctx context.Context, events <-chan ports.FileChangeEvent, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				return
			}

			s.logger.Info("Content change detected",
				slog.String("path", event.Path),
				slog.String("type", event.Type.String()),
			)

			count, err := s.reloader.Reload(ctx)
			if err != nil {
				s.logger.Error("Failed to reload documents",
					slog.String("error", err.Error()),
					slog.String("path", event.Path),
				)
				s.server.NotifyClients(ports.UpdateEvent{
					Type:      ports.EventTypeError,
					Timestamp: event.Timestamp,
					Data:      map[string]interface{}{"message": "reload failed"},
				})
				continue
			}

			s.server.NotifyClients(ports.UpdateEvent{
				Type:      ports.EventTypeReload,
				Timestamp: event.Timestamp,
				Data: map[string]interface{}{
					"file":      event.Path,
					"type":      event.Type.String(),
					"documents": count,
				},
			})

			s.logger.Debug("Clients notified", slog.Int("documents", count))
		}
	}
}
