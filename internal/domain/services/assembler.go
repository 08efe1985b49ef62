package services

import (
	"fmt"
	"strings"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
)

// Assemble builds the deck for one document: a title slide derived from the
// front matter followed by the segmented body. The result depends only on its
// arguments, so repeated calls produce identical decks.
func Assemble(id string, meta entities.FrontMatter, body string, maxChars int) *entities.Deck {
	tags := meta.Tags.Normalized()

	title := entities.TitleSlide{
		Title:   meta.Title,
		Content: meta.Excerpt,
		Notes:   fmt.Sprintf("Published on %s. Tags: %s", meta.Date, strings.Join(tags, ", ")),
	}

	segmented := Segment(body, maxChars)

	slides := make([]entities.Slide, 0, len(segmented)+1)
	slides = append(slides, title)
	slides = append(slides, segmented...)

	return &entities.Deck{
		ID:     id,
		Title:  meta.Title,
		Slides: slides,
		Metadata: entities.DeckMetadata{
			Author:      meta.Author,
			Date:        meta.Date,
			Tags:        tags,
			TotalSlides: len(slides),
		},
	}
}
