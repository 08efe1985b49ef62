package ports

import (
	"context"
	"time"
)

// FileWatcher reports changes to the source posts of a content directory
type FileWatcher interface {
	// Watch starts watching dir; the channel is closed when the watcher stops
	Watch(ctx context.Context, dir string) (<-chan FileChangeEvent, error)
	Stop() error
}

// FileChangeEvent is one settled change to a source post
type FileChangeEvent struct {
	Path      string
	Type      ChangeType
	Timestamp time.Time
}

// ChangeType classifies a FileChangeEvent
type ChangeType int

// Change kinds, as reported to live reload clients
const (
	Modified ChangeType = iota
	Created
	Deleted
	Renamed
)

var changeNames = [...]string{
	Modified: "modified",
	Created:  "created",
	Deleted:  "deleted",
	Renamed:  "renamed",
}

func (c ChangeType) String() string {
	if c < 0 || int(c) >= len(changeNames) {
		return "unknown"
	}
	return changeNames[c]
}
