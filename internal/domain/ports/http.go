package ports

import (
	"context"
	"time"
)

// HTTPServer defines the interface for the deck runtime server
type HTTPServer interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	NotifyClients(event UpdateEvent)
	IsRunning() bool
}

// UpdateEvent represents an event sent to WebSocket clients
type UpdateEvent struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// UpdateEventType constants
const (
	EventTypeConnected = "connected"
	EventTypeReload    = "reload"
	EventTypeError     = "error"
)

// DocumentReloader refreshes an in-memory document snapshot from its source
type DocumentReloader interface {
	// Reload re-reads every document and returns how many were loaded
	Reload(ctx context.Context) (int, error)
}
