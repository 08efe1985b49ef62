package builders

import (
	"strings"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
)

// DocumentBuilder helps build Document entities for testing
type DocumentBuilder struct {
	document *entities.Document
	body     []string
}

// NewDocumentBuilder creates a new document builder with sensible defaults
func NewDocumentBuilder() *DocumentBuilder {
	return &DocumentBuilder{
		document: &entities.Document{
			ID: "test-post",
			Meta: entities.FrontMatter{
				Title: "Test Post",
				Date:  "2024-01-15",
			},
		},
	}
}

// WithID sets the document id
func (b *DocumentBuilder) WithID(id string) *DocumentBuilder {
	b.document.ID = id
	return b
}

// WithTitle sets the front matter title
func (b *DocumentBuilder) WithTitle(title string) *DocumentBuilder {
	b.document.Meta.Title = title
	return b
}

// WithDate sets the front matter date
func (b *DocumentBuilder) WithDate(date string) *DocumentBuilder {
	b.document.Meta.Date = date
	return b
}

// WithExcerpt sets the front matter excerpt
func (b *DocumentBuilder) WithExcerpt(excerpt string) *DocumentBuilder {
	b.document.Meta.Excerpt = excerpt
	return b
}

// WithAuthor sets the front matter author
func (b *DocumentBuilder) WithAuthor(author string) *DocumentBuilder {
	b.document.Meta.Author = author
	return b
}

// WithTags sets the front matter tags
func (b *DocumentBuilder) WithTags(tags ...string) *DocumentBuilder {
	b.document.Meta.Tags = tags
	return b
}

// WithParagraph appends a text paragraph to the body
func (b *DocumentBuilder) WithParagraph(text string) *DocumentBuilder {
	b.body = append(b.body, text)
	return b
}

// WithCode appends a fenced code block to the body
func (b *DocumentBuilder) WithCode(language, code string) *DocumentBuilder {
	b.body = append(b.body, "```"+language+"\n"+code+"\n```")
	return b
}

// WithImage appends an image paragraph to the body
func (b *DocumentBuilder) WithImage(alt, src string) *DocumentBuilder {
	b.body = append(b.body, "!["+alt+"]("+src+")")
	return b
}

// WithBody replaces the body with raw text
func (b *DocumentBuilder) WithBody(body string) *DocumentBuilder {
	b.body = []string{body}
	return b
}

// Build returns the built document. Raw holds the body so that
// change detection sees every edit.
func (b *DocumentBuilder) Build() entities.Document {
	doc := *b.document
	doc.Body = strings.Join(b.body, "\n\n")
	doc.Raw = []byte(doc.Body)
	return doc
}

// BuildPtr returns a pointer to the built document
func (b *DocumentBuilder) BuildPtr() *entities.Document {
	doc := b.Build()
	return &doc
}
