package ports

import (
	"context"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
)

// DeckWriter persists a deck artifact keyed by its id
type DeckWriter interface {
	// Write serializes the deck and returns the path it was written to
	Write(ctx context.Context, deck *entities.Deck) (string, error)
}

// DeckReader loads previously persisted deck artifacts
type DeckReader interface {
	// Read returns the deck for id, or an error wrapping entities.ErrArtifactNotFound
	Read(ctx context.Context, id string) (*entities.Deck, error)

	// PathFor returns where the artifact for id lives
	PathFor(id string) string
}

// ManifestStore records every persisted deck
type ManifestStore interface {
	Put(ctx context.Context, record entities.BuildRecord) error
	Get(ctx context.Context, id string) (*entities.BuildRecord, error)
	List(ctx context.Context) ([]entities.BuildRecord, error)
	Close() error
}
