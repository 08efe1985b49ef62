package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fredcamaral/blogdeck/internal/domain/ports"
)

// FSNotifyWatcher reports changes to markdown files in a directory. Bursts of
// events closer together than the debounce window collapse into one event
// carrying the last change seen.
type FSNotifyWatcher struct {
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	events  chan ports.FileChangeEvent
	stopCh  chan struct{}
	wg      sync.WaitGroup
	stopped bool
}

// NewFSNotifyWatcher creates a new fsnotify-backed watcher
func NewFSNotifyWatcher(debounce time.Duration, logger *slog.Logger) *FSNotifyWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &FSNotifyWatcher{
		debounce: debounce,
		logger:   logger.With("component", "watcher"),
		events:   make(chan ports.FileChangeEvent, 10),
		stopCh:   make(chan struct{}),
	}
}

// Watch starts watching dir. A watcher can only watch one directory.
func (w *FSNotifyWatcher) Watch(ctx context.Context, dir string) (<-chan ports.FileChangeEvent, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil, errors.New("watcher stopped")
	}
	if w.watcher != nil {
		return nil, errors.New("already watching")
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := fw.Add(absDir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", absDir, err)
	}

	w.watcher = fw
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.loop(ctx, fw)
	}()

	return w.events, nil
}

// Stop stops the watcher and closes the event channel
func (w *FSNotifyWatcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.stopCh)
	fw := w.watcher
	w.mu.Unlock()

	w.wg.Wait()
	close(w.events)

	if fw != nil {
		return fw.Close()
	}
	return nil
}

func (w *FSNotifyWatcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	var pending *ports.FileChangeEvent

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			event, relevant := translate(ev)
			if !relevant {
				continue
			}
			pending = &event
			debounce.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watcher error", slog.String("error", err.Error()))

		case <-debounce.C:
			if pending == nil {
				continue
			}
			select {
			case w.events <- *pending:
				pending = nil
			case <-ctx.Done():
				return
			case <-w.stopCh:
				return
			}
		}
	}
}

// translate maps an fsnotify event on a markdown file to a change event
func translate(ev fsnotify.Event) (ports.FileChangeEvent, bool) {
	if !isMarkdown(ev.Name) {
		return ports.FileChangeEvent{}, false
	}

	var change ports.ChangeType
	switch {
	case ev.Has(fsnotify.Create):
		change = ports.Created
	case ev.Has(fsnotify.Write):
		change = ports.Modified
	case ev.Has(fsnotify.Remove):
		change = ports.Deleted
	case ev.Has(fsnotify.Rename):
		change = ports.Renamed
	default:
		return ports.FileChangeEvent{}, false
	}

	return ports.FileChangeEvent{
		Path:      ev.Name,
		Type:      change,
		Timestamp: time.Now(),
	}, true
}

func isMarkdown(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// Ensure FSNotifyWatcher implements ports.FileWatcher
var _ ports.FileWatcher = (*FSNotifyWatcher)(nil)
