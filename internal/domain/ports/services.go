package ports

import (
	"context"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
)

// DeckProvider builds decks on demand from documents that are already loaded
type DeckProvider interface {
	// Build assembles a deck with no generation stamp and no I/O
	Build(doc entities.Document) *entities.Deck

	// GetDeckByID returns the deck for id, or nil when no document has that id
	GetDeckByID(id string, docs []entities.Document) *entities.Deck
}

// DeckGenerator persists deck artifacts for source documents
type DeckGenerator interface {
	Generate(ctx context.Context, id string) (*GenerateResult, error)
	GenerateAll(ctx context.Context, concurrency int) ([]GenerateResult, error)
}

// GenerateResult describes one persisted deck
type GenerateResult struct {
	ID   string
	Path string
	Deck *entities.Deck
}
