package renderer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
	"github.com/fredcamaral/blogdeck/internal/domain/ports"
)

// DefaultTheme is used when no theme is requested
const DefaultTheme = "default"

// HTMLRenderer renders a deck as a standalone HTML page, one section per slide
type HTMLRenderer struct {
	page *template.Template
	md   *markdownConverter
}

// NewHTMLRenderer creates a new HTML deck renderer
func NewHTMLRenderer() (*HTMLRenderer, error) {
	page, err := template.New("deck").Parse(deckTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing deck template: %w", err)
	}

	return &HTMLRenderer{
		page: page,
		md:   newMarkdownConverter(),
	}, nil
}

type pageData struct {
	Title       string
	Author      string
	Date        string
	Tags        []string
	Theme       string
	ThemeName   string
	TotalSlides int
	Slides      []slideView
}

type slideView struct {
	Index    int
	Type     string
	Title    string
	Body     template.HTML
	Notes    string
	Language string
	Code     string
	Src      string
	Alt      string
	Caption  string
}

// Render renders deck with the given theme
func (r *HTMLRenderer) Render(deck *entities.Deck, theme string) ([]byte, error) {
	if deck == nil {
		return nil, errors.New("deck cannot be nil")
	}

	theme = NormalizeTheme(theme)
	data := pageData{
		Title:       deck.Title,
		Author:      deck.Metadata.Author,
		Date:        deck.Metadata.Date,
		Tags:        deck.Metadata.Tags,
		Theme:       theme,
		ThemeName:   ThemeDisplayName(theme),
		TotalSlides: len(deck.Slides),
		Slides:      make([]slideView, 0, len(deck.Slides)),
	}

	for i, slide := range deck.Slides {
		view, err := r.view(i, slide)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i, err)
		}
		data.Slides = append(data.Slides, view)
	}

	var buf bytes.Buffer
	if err := r.page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing deck template: %w", err)
	}

	return buf.Bytes(), nil
}

func (r *HTMLRenderer) view(index int, slide entities.Slide) (slideView, error) {
	view := slideView{
		Index: index,
		Type:  string(slide.Type()),
		Title: slide.Heading(),
	}

	switch s := slide.(type) {
	case entities.TitleSlide:
		body, err := r.md.convert(s.Content)
		if err != nil {
			return view, err
		}
		view.Body = body
		view.Notes = s.Notes
	case entities.ContentSlide:
		body, err := r.md.convert(s.Content)
		if err != nil {
			return view, err
		}
		view.Body = body
	case entities.CodeSlide:
		view.Language = s.Language
		view.Code = s.Content
	case entities.ImageSlide:
		view.Src = s.Src
		view.Alt = s.Alt
		view.Caption = s.Caption
	}

	return view, nil
}

// NormalizeTheme lowercases a theme name, falling back to DefaultTheme
func NormalizeTheme(theme string) string {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if theme == "" {
		return DefaultTheme
	}
	return theme
}

// ThemeDisplayName turns "solarized-dark" into "Solarized Dark"
func ThemeDisplayName(theme string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(NormalizeTheme(theme))
	return cases.Title(language.Und).String(words)
}

const deckTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; }
        .slide { display: none; min-height: 100vh; box-sizing: border-box; padding: 4em; }
        .slide.active { display: block; }
        .slide pre { background: #f4f4f4; padding: 1em; border-radius: 4px; overflow-x: auto; }
        .slide img { max-width: 100%; max-height: 70vh; }
        .theme-dark { background: #1e1e1e; color: #eee; }
        .theme-dark .slide pre { background: #2d2d2d; }
        .slide-number { position: fixed; bottom: 1em; right: 1em; color: #888; }
    </style>
</head>
<body class="theme-{{.Theme}}" data-theme="{{.Theme}}" data-theme-name="{{.ThemeName}}">
    <main class="deck" data-total="{{.TotalSlides}}">
    {{range .Slides}}
        <section class="slide slide-{{.Type}}" data-index="{{.Index}}">
            {{if eq .Type "title"}}
            <h1>{{.Title}}</h1>
            {{.Body}}
            {{if .Notes}}<aside class="notes">{{.Notes}}</aside>{{end}}
            {{else if eq .Type "code"}}
            <h2>{{.Title}}</h2>
            <pre><code class="language-{{.Language}}">{{.Code}}</code></pre>
            {{else if eq .Type "image"}}
            <figure>
                <img src="{{.Src}}" alt="{{.Alt}}">
                {{if .Caption}}<figcaption>{{.Caption}}</figcaption>{{end}}
            </figure>
            {{else}}
            <h2>{{.Title}}</h2>
            {{.Body}}
            {{end}}
        </section>
    {{end}}
    </main>
    <div class="slide-number"><span id="current-slide">1</span> / {{.TotalSlides}}</div>
    <script>
    (function () {
        var slides = document.querySelectorAll('.slide');
        var current = 0;
        function show(i) {
            if (i < 0 || i >= slides.length) { return; }
            slides[current].classList.remove('active');
            current = i;
            slides[current].classList.add('active');
            document.getElementById('current-slide').textContent = current + 1;
        }
        document.addEventListener('keydown', function (e) {
            if (e.key === 'ArrowRight' || e.key === ' ') { show(current + 1); }
            if (e.key === 'ArrowLeft') { show(current - 1); }
        });
        if (slides.length) { slides[0].classList.add('active'); }
        if (window.WebSocket) {
            var ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
            ws.onmessage = function (msg) {
                var event = JSON.parse(msg.data);
                if (event.type === 'reload') { location.reload(); }
            };
        }
    })();
    </script>
</body>
</html>`

// Ensure HTMLRenderer implements ports.DeckRenderer
var _ ports.DeckRenderer = (*HTMLRenderer)(nil)
