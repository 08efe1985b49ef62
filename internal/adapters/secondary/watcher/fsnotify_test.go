package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/blogdeck/internal/domain/ports"
)

func TestFSNotifyWatcher_Watch(t *testing.T) {
	t.Run("reports markdown changes", func(t *testing.T) {
		dir := t.TempDir()
		w := NewFSNotifyWatcher(20*time.Millisecond, nil)
		defer func() { _ = w.Stop() }()

		events, err := w.Watch(context.Background(), dir)
		require.NoError(t, err)

		path := filepath.Join(dir, "post.md")
		require.NoError(t, os.WriteFile(path, []byte("# hi"), 0o600))

		select {
		case event := <-events:
			assert.Equal(t, "post.md", filepath.Base(event.Path))
		case <-time.After(3 * time.Second):
			t.Fatal("no event received")
		}
	})

	t.Run("bursts collapse into one event", func(t *testing.T) {
		dir := t.TempDir()
		w := NewFSNotifyWatcher(300*time.Millisecond, nil)
		defer func() { _ = w.Stop() }()

		events, err := w.Watch(context.Background(), dir)
		require.NoError(t, err)

		path := filepath.Join(dir, "post.md")
		for i := 0; i < 5; i++ {
			require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0o600))
		}

		select {
		case <-events:
		case <-time.After(3 * time.Second):
			t.Fatal("no event received")
		}

		select {
		case event := <-events:
			t.Fatalf("unexpected second event: %+v", event)
		case <-time.After(600 * time.Millisecond):
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		w := NewFSNotifyWatcher(10*time.Millisecond, nil)
		defer func() { _ = w.Stop() }()

		_, err := w.Watch(context.Background(), filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
	})

	t.Run("second watch is rejected", func(t *testing.T) {
		w := NewFSNotifyWatcher(10*time.Millisecond, nil)
		defer func() { _ = w.Stop() }()

		_, err := w.Watch(context.Background(), t.TempDir())
		require.NoError(t, err)

		_, err = w.Watch(context.Background(), t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already watching")
	})
}

func TestFSNotifyWatcher_Stop(t *testing.T) {
	w := NewFSNotifyWatcher(10*time.Millisecond, nil)

	events, err := w.Watch(context.Background(), t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	_, open := <-events
	assert.False(t, open)

	_, err = w.Watch(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		event    fsnotify.Event
		want     ports.ChangeType
		relevant bool
	}{
		{name: "create", event: fsnotify.Event{Name: "/c/a.md", Op: fsnotify.Create}, want: ports.Created, relevant: true},
		{name: "write", event: fsnotify.Event{Name: "/c/a.markdown", Op: fsnotify.Write}, want: ports.Modified, relevant: true},
		{name: "remove", event: fsnotify.Event{Name: "/c/A.MD", Op: fsnotify.Remove}, want: ports.Deleted, relevant: true},
		{name: "rename", event: fsnotify.Event{Name: "/c/a.md", Op: fsnotify.Rename}, want: ports.Renamed, relevant: true},
		{name: "chmod only", event: fsnotify.Event{Name: "/c/a.md", Op: fsnotify.Chmod}},
		{name: "other extension", event: fsnotify.Event{Name: "/c/a.txt", Op: fsnotify.Write}},
		{name: "editor swap file", event: fsnotify.Event{Name: "/c/.a.md.swp", Op: fsnotify.Write}},
		{name: "hidden markdown", event: fsnotify.Event{Name: "/c/.draft.md", Op: fsnotify.Write}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, relevant := translate(tt.event)
			assert.Equal(t, tt.relevant, relevant)
			if tt.relevant {
				assert.Equal(t, tt.want, event.Type)
				assert.Equal(t, tt.event.Name, event.Path)
			}
		})
	}
}
