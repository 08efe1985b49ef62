package renderer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// markdownConverter renders slide text to sanitized HTML
type markdownConverter struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func newMarkdownConverter() *markdownConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	return &markdownConverter{
		md:     md,
		policy: newSlidePolicy(),
	}
}

// newSlidePolicy allows the formatting a paragraph slide can carry and nothing else
func newSlidePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowElements("p", "br", "hr")
	p.AllowElements("strong", "b", "em", "i", "del", "s", "mark")
	p.AllowElements("ul", "ol", "li")
	p.AllowElements("blockquote", "pre", "code")
	p.AllowElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "alt", "title").OnElements("img")
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowStandardURLs()
	p.RequireNoFollowOnLinks(true)

	return p
}

// convert renders markdown text and strips anything the policy does not allow
func (c *markdownConverter) convert(text string) (template.HTML, error) {
	if text == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := c.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	return template.HTML(c.policy.SanitizeBytes(buf.Bytes())), nil // #nosec G203 - sanitized by bluemonday
}
