package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidDeck is returned when a deck breaks one of its structural invariants
	ErrInvalidDeck = errors.New("invalid deck")

	// ErrDocumentNotFound is returned when no source document exists for an id
	ErrDocumentNotFound = errors.New("document not found")

	// ErrArtifactNotFound is returned when no persisted deck exists for an id
	ErrArtifactNotFound = errors.New("deck artifact not found")
)

// Deck is the ordered collection of slides generated from one document
type Deck struct {
	// ID is the source document id
	ID string `json:"id"`

	// Title is the document title
	Title string `json:"title"`

	// Slides always starts with the title slide
	Slides []Slide `json:"slides"`

	Metadata DeckMetadata `json:"metadata"`
}

// DeckMetadata contains deck-level information derived from the front matter
type DeckMetadata struct {
	Author      string     `json:"author,omitempty"`
	Date        string     `json:"date"`
	Tags        []string   `json:"tags"`
	TotalSlides int        `json:"totalSlides"`
	GeneratedAt *time.Time `json:"generatedAt,omitempty"`
	SourcePost  string     `json:"sourcePost,omitempty"`
}

// Validate checks the title-slide and slide-count invariants
func (d *Deck) Validate() error {
	if len(d.Slides) == 0 {
		return fmt.Errorf("%w: deck has no slides", ErrInvalidDeck)
	}

	if _, ok := d.Slides[0].(TitleSlide); !ok {
		return fmt.Errorf("%w: first slide is %s, want title", ErrInvalidDeck, d.Slides[0].Type())
	}

	for i := 1; i < len(d.Slides); i++ {
		if d.Slides[i].Type() == SlideTypeTitle {
			return fmt.Errorf("%w: title slide at index %d", ErrInvalidDeck, i)
		}
	}

	if d.Metadata.TotalSlides != len(d.Slides) {
		return fmt.Errorf("%w: totalSlides is %d but deck has %d slides",
			ErrInvalidDeck, d.Metadata.TotalSlides, len(d.Slides))
	}

	return nil
}

// SlideCount returns the total number of slides, title slide included
func (d *Deck) SlideCount() int {
	return len(d.Slides)
}

// CountByType returns how many slides of each type the deck holds
func (d *Deck) CountByType() map[SlideType]int {
	counts := make(map[SlideType]int, 4)
	for _, s := range d.Slides {
		counts[s.Type()]++
	}
	return counts
}

// UnmarshalJSON decodes a deck, resolving each slide to its concrete variant
func (d *Deck) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       string            `json:"id"`
		Title    string            `json:"title"`
		Slides   []json.RawMessage `json:"slides"`
		Metadata DeckMetadata      `json:"metadata"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	slides := make([]Slide, 0, len(raw.Slides))
	for i, rs := range raw.Slides {
		s, err := DecodeSlide(rs)
		if err != nil {
			return fmt.Errorf("slide %d: %w", i, err)
		}
		slides = append(slides, s)
	}

	d.ID = raw.ID
	d.Title = raw.Title
	d.Slides = slides
	d.Metadata = raw.Metadata
	return nil
}
