package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string    `json:"error"`
	Time  time.Time `json:"time"`
}

// DeckSummary is one entry of the deck listing
type DeckSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	TotalSlides int    `json:"totalSlides"`
}

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListDecks lists every loaded document with its slide count
func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	docs := s.Documents()

	summaries := make([]DeckSummary, 0, len(docs))
	for _, doc := range docs {
		deck := s.provider.Build(doc)
		summaries = append(summaries, DeckSummary{
			ID:          deck.ID,
			Title:       deck.Title,
			Date:        deck.Metadata.Date,
			TotalSlides: deck.Metadata.TotalSlides,
		})
	}

	s.writeJSON(w, http.StatusOK, summaries)
}

// handleGetDeck returns one deck as JSON
func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	deck := s.provider.GetDeckByID(id, s.Documents())
	if deck == nil {
		s.writeError(w, http.StatusNotFound, "deck not found: "+id)
		return
	}

	s.writeJSON(w, http.StatusOK, deck)
}

// handleDeckPage renders one deck as an HTML page
func (s *Server) handleDeckPage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	deck := s.provider.GetDeckByID(id, s.Documents())
	if deck == nil {
		http.NotFound(w, r)
		return
	}

	theme := r.URL.Query().Get("theme")
	if theme == "" {
		theme = s.theme
	}

	page, err := s.renderer.Render(deck, theme)
	if err != nil {
		s.logger.Error("Failed to render deck",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		s.writeError(w, http.StatusInternalServerError, "rendering failed")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(page)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("Failed to encode response", slog.String("error", err.Error()))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{
		Error: message,
		Time:  time.Now(),
	})
}
