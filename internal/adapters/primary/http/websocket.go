package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/fredcamaral/blogdeck/internal/domain/ports"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

// WebSocketClient represents a WebSocket client connection
type WebSocketClient struct {
	id      string
	conn    *websocket.Conn
	send    chan ports.UpdateEvent
	manager *ConnectionManager
	logger  *slog.Logger
}

// handleWebSocket upgrades the request and registers the client for reload events
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.isValidOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := &WebSocketClient{
		id:      uuid.New().String(),
		conn:    conn,
		send:    make(chan ports.UpdateEvent, 16),
		manager: s.connMgr,
		logger:  s.logger,
	}

	// Queue the greeting before registering so it is always the first message
	client.send <- ports.UpdateEvent{
		Type:      ports.EventTypeConnected,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"client":    client.id,
			"documents": len(s.Documents()),
		},
	}

	s.connMgr.RegisterConnection(&Connection{ID: client.id, Send: client.send})

	go client.writePump()
	go client.readPump()
}

// readPump drains client messages until the connection closes
func (c *WebSocketClient) readPump() {
	defer func() {
		c.manager.Unregister(c.id)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("WebSocket connection error",
					slog.String("client", c.id),
					slog.String("error", err.Error()),
				)
			}
			return
		}
	}
}

// writePump pumps events to the WebSocket connection
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// isValidOrigin accepts same-host and configured origins
func (s *Server) isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		s.logger.Warn("WebSocket connection rejected: invalid origin", slog.String("origin", origin))
		return false
	}

	if originURL.Host == r.Host {
		return true
	}

	for _, allowed := range s.config.GetCORSOrigins() {
		if allowed == "*" || allowed == originURL.Scheme+"://"+originURL.Host {
			return true
		}
	}

	s.logger.Warn("WebSocket connection rejected: origin not allowed", slog.String("origin", origin))
	return false
}
