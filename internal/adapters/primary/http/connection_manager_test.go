package http

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/blogdeck/internal/domain/ports"
)

func TestConnectionManager_Broadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cm := NewConnectionManager()
	go cm.Run(ctx)

	a := &Connection{ID: "a", Send: make(chan ports.UpdateEvent, 1)}
	b := &Connection{ID: "b", Send: make(chan ports.UpdateEvent, 1)}
	cm.RegisterConnection(a)
	cm.RegisterConnection(b)

	cm.Broadcast(ports.UpdateEvent{Type: ports.EventTypeReload})

	for _, conn := range []*Connection{a, b} {
		select {
		case event := <-conn.Send:
			assert.Equal(t, ports.EventTypeReload, event.Type)
		case <-time.After(time.Second):
			t.Fatalf("connection %s received nothing", conn.ID)
		}
	}
}

func TestConnectionManager_Unregister(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cm := NewConnectionManager()
	go cm.Run(ctx)

	conn := &Connection{ID: "a", Send: make(chan ports.UpdateEvent, 1)}
	cm.RegisterConnection(conn)
	cm.Unregister("a")

	_, open := <-conn.Send
	assert.False(t, open)
	assert.Equal(t, 0, cm.Count())

	// Unknown ids are ignored
	cm.Unregister("missing")
}

func TestConnectionManager_DropsSlowClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cm := NewConnectionManager()
	go cm.Run(ctx)

	slow := &Connection{ID: "slow", Send: make(chan ports.UpdateEvent)}
	cm.RegisterConnection(slow)

	cm.Broadcast(ports.UpdateEvent{Type: ports.EventTypeReload})

	require.Eventually(t, func() bool { return cm.Count() == 0 }, time.Second, 10*time.Millisecond)
	_, open := <-slow.Send
	assert.False(t, open)
}

func TestConnectionManager_ShutdownClosesConnections(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cm := NewConnectionManager()
	stopped := make(chan struct{})
	go func() {
		cm.Run(ctx)
		close(stopped)
	}()

	conn := &Connection{ID: "a", Send: make(chan ports.UpdateEvent, 1)}
	cm.RegisterConnection(conn)

	cancel()
	<-stopped

	_, open := <-conn.Send
	assert.False(t, open)

	// Calls after shutdown return instead of blocking
	late := &Connection{ID: "late", Send: make(chan ports.UpdateEvent, 1)}
	cm.RegisterConnection(late)
	_, open = <-late.Send
	assert.False(t, open)

	cm.Broadcast(ports.UpdateEvent{Type: ports.EventTypeReload})
	cm.Unregister("a")
	cm.CloseAll()
}
