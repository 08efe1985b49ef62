package entities

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SlideType identifies the variant of a slide in its serialized form
type SlideType string

const (
	SlideTypeTitle   SlideType = "title"
	SlideTypeContent SlideType = "content"
	SlideTypeCode    SlideType = "code"
	SlideTypeImage   SlideType = "image"
)

const (
	// CodeSlideTitle is the title given to every code slide
	CodeSlideTitle = "Code Example"

	// DefaultCodeLanguage is used when a fence declares no language
	DefaultCodeLanguage = "text"

	// DefaultImageTitle is used when an image has no alt text
	DefaultImageTitle = "Image"
)

// Slide is one typed unit of a deck. The set of implementations is closed:
// TitleSlide, ContentSlide, CodeSlide and ImageSlide.
type Slide interface {
	// Type returns the discriminator written to JSON
	Type() SlideType

	// Heading returns the slide title regardless of variant
	Heading() string

	sealed()
}

// TitleSlide opens every deck and carries the document metadata
type TitleSlide struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Notes   string `json:"notes"`
}

// ContentSlide holds one or more grouped text paragraphs
type ContentSlide struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CodeSlide holds a single fenced code block
type CodeSlide struct {
	Title    string `json:"title"`
	Language string `json:"language"`
	Content  string `json:"content"`
}

// ImageSlide holds a single standalone image reference
type ImageSlide struct {
	Title   string `json:"title"`
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

// NewCodeSlide builds a code slide, defaulting the language to "text"
func NewCodeSlide(language, content string) CodeSlide {
	language = strings.TrimSpace(language)
	if language == "" {
		language = DefaultCodeLanguage
	}
	return CodeSlide{
		Title:    CodeSlideTitle,
		Language: language,
		Content:  content,
	}
}

// NewImageSlide builds an image slide; the alt text doubles as title and caption
func NewImageSlide(src, alt string) ImageSlide {
	title := alt
	if title == "" {
		title = DefaultImageTitle
	}
	return ImageSlide{
		Title:   title,
		Src:     src,
		Alt:     alt,
		Caption: alt,
	}
}

// ContentSlideTitle returns the ordinal label of the n-th content slide (1-based)
func ContentSlideTitle(n int) string {
	return fmt.Sprintf("Slide %d", n)
}

func (TitleSlide) Type() SlideType   { return SlideTypeTitle }
func (ContentSlide) Type() SlideType { return SlideTypeContent }
func (CodeSlide) Type() SlideType    { return SlideTypeCode }
func (ImageSlide) Type() SlideType   { return SlideTypeImage }

func (s TitleSlide) Heading() string   { return s.Title }
func (s ContentSlide) Heading() string { return s.Title }
func (s CodeSlide) Heading() string    { return s.Title }
func (s ImageSlide) Heading() string   { return s.Title }

func (TitleSlide) sealed()   {}
func (ContentSlide) sealed() {}
func (CodeSlide) sealed()    {}
func (ImageSlide) sealed()   {}

// MarshalJSON writes the slide with its "type" discriminator first
func (s TitleSlide) MarshalJSON() ([]byte, error) {
	type fields TitleSlide
	return json.Marshal(struct {
		Type SlideType `json:"type"`
		fields
	}{SlideTypeTitle, fields(s)})
}

// MarshalJSON writes the slide with its "type" discriminator first
func (s ContentSlide) MarshalJSON() ([]byte, error) {
	type fields ContentSlide
	return json.Marshal(struct {
		Type SlideType `json:"type"`
		fields
	}{SlideTypeContent, fields(s)})
}

// MarshalJSON writes the slide with its "type" discriminator first
func (s CodeSlide) MarshalJSON() ([]byte, error) {
	type fields CodeSlide
	return json.Marshal(struct {
		Type SlideType `json:"type"`
		fields
	}{SlideTypeCode, fields(s)})
}

// MarshalJSON writes the slide with its "type" discriminator first
func (s ImageSlide) MarshalJSON() ([]byte, error) {
	type fields ImageSlide
	return json.Marshal(struct {
		Type SlideType `json:"type"`
		fields
	}{SlideTypeImage, fields(s)})
}

// DecodeSlide decodes one serialized slide into its concrete variant
func DecodeSlide(data []byte) (Slide, error) {
	var probe struct {
		Type SlideType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decoding slide type: %w", err)
	}

	switch probe.Type {
	case SlideTypeTitle:
		var s TitleSlide
		err := json.Unmarshal(data, &s)
		return s, err
	case SlideTypeContent:
		var s ContentSlide
		err := json.Unmarshal(data, &s)
		return s, err
	case SlideTypeCode:
		var s CodeSlide
		err := json.Unmarshal(data, &s)
		return s, err
	case SlideTypeImage:
		var s ImageSlide
		err := json.Unmarshal(data, &s)
		return s, err
	case "":
		return nil, fmt.Errorf("slide has no type")
	default:
		return nil, fmt.Errorf("unknown slide type %q", probe.Type)
	}
}
