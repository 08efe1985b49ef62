package ports

import (
	"github.com/fredcamaral/blogdeck/internal/domain/entities"
)

// DeckRenderer turns a deck into a standalone HTML page for a display theme
type DeckRenderer interface {
	Render(deck *entities.Deck, theme string) ([]byte, error)
}
