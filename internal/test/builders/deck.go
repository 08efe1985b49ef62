package builders

import (
	"time"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
)

// DeckBuilder helps build Deck entities for testing
type DeckBuilder struct {
	deck *entities.Deck
}

// NewDeckBuilder creates a deck holding only a title slide
func NewDeckBuilder() *DeckBuilder {
	return &DeckBuilder{
		deck: &entities.Deck{
			ID:    "test-post",
			Title: "Test Post",
			Slides: []entities.Slide{
				entities.TitleSlide{Title: "Test Post", Notes: "Published on 2024-01-15. Tags: "},
			},
			Metadata: entities.DeckMetadata{
				Date: "2024-01-15",
				Tags: []string{},
			},
		},
	}
}

// WithID sets the deck id
func (b *DeckBuilder) WithID(id string) *DeckBuilder {
	b.deck.ID = id
	return b
}

// WithTitle sets the deck and title slide title
func (b *DeckBuilder) WithTitle(title string) *DeckBuilder {
	b.deck.Title = title
	if ts, ok := b.deck.Slides[0].(entities.TitleSlide); ok {
		ts.Title = title
		b.deck.Slides[0] = ts
	}
	return b
}

// WithSlide appends a slide after the existing ones
func (b *DeckBuilder) WithSlide(slide entities.Slide) *DeckBuilder {
	b.deck.Slides = append(b.deck.Slides, slide)
	return b
}

// WithContentSlides appends count numbered content slides
func (b *DeckBuilder) WithContentSlides(count int) *DeckBuilder {
	for i := 1; i <= count; i++ {
		b.deck.Slides = append(b.deck.Slides, entities.ContentSlide{
			Title:   entities.ContentSlideTitle(i),
			Content: "Paragraph text.",
		})
	}
	return b
}

// WithTags sets the deck tags
func (b *DeckBuilder) WithTags(tags ...string) *DeckBuilder {
	b.deck.Metadata.Tags = tags
	return b
}

// WithGeneratedAt stamps the deck as persisted at the given time
func (b *DeckBuilder) WithGeneratedAt(at time.Time) *DeckBuilder {
	b.deck.Metadata.GeneratedAt = &at
	b.deck.Metadata.SourcePost = b.deck.ID
	return b
}

// Build returns the built deck with its slide total kept in sync
func (b *DeckBuilder) Build() *entities.Deck {
	deck := *b.deck
	deck.Slides = append([]entities.Slide(nil), b.deck.Slides...)
	deck.Metadata.TotalSlides = len(deck.Slides)
	return &deck
}
