package renderer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
)

func renderDeck(t *testing.T, deck *entities.Deck, theme string) string {
	t.Helper()
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	out, err := r.Render(deck, theme)
	require.NoError(t, err)
	return string(out)
}

func TestHTMLRenderer_Render(t *testing.T) {
	deck := &entities.Deck{
		ID:    "intro",
		Title: "Intro <Talk>",
		Slides: []entities.Slide{
			entities.TitleSlide{Title: "Intro <Talk>", Content: "An *excerpt*", Notes: "Published on 2024-01-01. Tags: go"},
			entities.ContentSlide{Title: "Slide 1", Content: "Some **bold** text.\n\n<script>alert(1)</script>"},
			entities.NewCodeSlide("go", "if a < b {\n}"),
			entities.NewImageSlide("/img/diagram.png", "Diagram"),
		},
		Metadata: entities.DeckMetadata{Date: "2024-01-01", TotalSlides: 4},
	}

	out := renderDeck(t, deck, "Solarized-Dark")

	t.Run("one section per slide", func(t *testing.T) {
		assert.Equal(t, 4, strings.Count(out, "<section class=\"slide"))
		assert.Contains(t, out, `class="slide slide-title"`)
		assert.Contains(t, out, `class="slide slide-image"`)
	})

	t.Run("title is escaped", func(t *testing.T) {
		assert.Contains(t, out, "<title>Intro &lt;Talk&gt;</title>")
	})

	t.Run("markdown converted and sanitized", func(t *testing.T) {
		assert.Contains(t, out, "<strong>bold</strong>")
		assert.Contains(t, out, "<em>excerpt</em>")
		assert.NotContains(t, out, "<script>alert(1)</script>")
	})

	t.Run("code is escaped with language class", func(t *testing.T) {
		assert.Contains(t, out, `<code class="language-go">if a &lt; b {`)
	})

	t.Run("image with caption", func(t *testing.T) {
		assert.Contains(t, out, `<img src="/img/diagram.png" alt="Diagram">`)
		assert.Contains(t, out, "<figcaption>Diagram</figcaption>")
	})

	t.Run("theme normalized", func(t *testing.T) {
		assert.Contains(t, out, `data-theme="solarized-dark"`)
		assert.Contains(t, out, `data-theme-name="Solarized Dark"`)
	})
}

func TestHTMLRenderer_RenderNil(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	_, err = r.Render(nil, "")
	assert.Error(t, err)
}

func TestHTMLRenderer_UnsafeImageSource(t *testing.T) {
	deck := &entities.Deck{
		Slides: []entities.Slide{
			entities.TitleSlide{Title: "T"},
			entities.NewImageSlide("javascript:alert(1)", ""),
		},
	}

	out := renderDeck(t, deck, "")
	assert.NotContains(t, out, "javascript:alert")
	assert.Contains(t, out, `data-theme="default"`)
}

func TestThemeNames(t *testing.T) {
	assert.Equal(t, "default", NormalizeTheme("  "))
	assert.Equal(t, "dark", NormalizeTheme(" DARK "))
	assert.Equal(t, "Default", ThemeDisplayName(""))
	assert.Equal(t, "High Contrast", ThemeDisplayName("high_contrast"))
}
