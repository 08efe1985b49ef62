package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
	"github.com/fredcamaral/blogdeck/internal/domain/ports"
)

// Server serves decks built on demand from an in-memory document snapshot
type Server struct {
	repo     ports.DocumentRepository
	provider ports.DeckProvider
	renderer ports.DeckRenderer
	config   entities.ServerConfig
	theme    string
	logger   *slog.Logger
	connMgr  *ConnectionManager

	docsMu sync.RWMutex
	docs   []entities.Document

	mu         sync.RWMutex
	server     *http.Server
	listener   net.Listener
	stopHub    context.CancelFunc
	running    bool
	serveError chan error
}

// NewServer creates a new HTTP server. theme is the default display theme for
// deck pages.
func NewServer(
	repo ports.DocumentRepository,
	provider ports.DeckProvider,
	renderer ports.DeckRenderer,
	config entities.ServerConfig,
	theme string,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		repo:     repo,
		provider: provider,
		renderer: renderer,
		config:   config,
		theme:    theme,
		logger:   logger.With("component", "http"),
		connMgr:  NewConnectionManager(),
	}
}

// Reload replaces the document snapshot with the repository's current contents
func (s *Server) Reload(ctx context.Context) (int, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("reloading documents: %w", err)
	}

	s.docsMu.Lock()
	s.docs = docs
	s.docsMu.Unlock()

	s.logger.Debug("Documents loaded", slog.Int("count", len(docs)))
	return len(docs), nil
}

// Documents returns the current document snapshot
func (s *Server) Documents() []entities.Document {
	s.docsMu.RLock()
	defer s.docsMu.RUnlock()
	return s.docs
}

// Handler returns the routed handler with middleware and CORS applied
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/decks", s.handleListDecks).Methods(http.MethodGet)
	router.HandleFunc("/api/decks/{id}", s.handleGetDeck).Methods(http.MethodGet)
	router.HandleFunc("/decks/{id}", s.handleDeckPage).Methods(http.MethodGet)
	router.HandleFunc("/ws", s.handleWebSocket)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusNotFound, "not found")
	})

	// Applied outermost last: recovery -> logging -> security headers -> routes
	var handler http.Handler = router
	handler = securityHeadersMiddleware(handler)
	handler = loggingMiddleware(handler, s.logger)
	handler = recoveryMiddleware(handler, s.logger)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.GetCORSOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	return c.Handler(handler)
}

// Start binds the listen address and serves in the background
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server already running")
	}

	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	go s.connMgr.Run(hubCtx)

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.config.GetReadTimeout(),
		WriteTimeout:      s.config.GetWriteTimeout(),
		IdleTimeout:       60 * time.Second,
	}
	s.listener = listener
	s.stopHub = stopHub
	s.running = true
	s.serveError = make(chan error, 1)

	go func(srv *http.Server, errCh chan<- error) {
		s.logger.Info("HTTP server starting", slog.String("addr", listener.Addr().String()))
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", slog.String("error", err.Error()))
			errCh <- err
		}
		close(errCh)
	}(s.server, s.serveError)

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("server not running")
	}

	s.stopHub()
	s.connMgr.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.GetShutdownTimeout())
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.running = false
	return nil
}

// Errors reports a serve failure after Start returned; it is closed when serving ends
func (s *Server) Errors() <-chan error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.serveError
}

// Addr returns the bound listen address, or "" before Start
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// NotifyClients sends an update event to all connected clients. Events sent
// while the server is stopped are dropped.
func (s *Server) NotifyClients(event ports.UpdateEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.running {
		return
	}

	s.connMgr.Broadcast(event)
}

// IsRunning returns whether the server is currently running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Ensure Server implements the runtime ports
var (
	_ ports.HTTPServer       = (*Server)(nil)
	_ ports.DocumentReloader = (*Server)(nil)
)
