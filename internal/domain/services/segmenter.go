package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
)

const fenceMarker = "```"

// imagePattern matches a paragraph that is exactly one markdown image, with an
// optional quoted title that is dropped
var imagePattern = regexp.MustCompile(`^!\[([^\]]*)\]\(\s*([^)\s]+)(?:\s+"[^"]*")?\s*\)$`)

// Segment splits a document body into content, code and image slides in
// source order. The title slide is not included. Text paragraphs are grouped
// into content slides of at most maxChars characters; a paragraph longer than
// that on its own is kept whole. A non-positive maxChars uses
// entities.DefaultMaxChars.
//
// Segment never fails: unterminated fences, missing languages and missing alt
// text all fall back to defaults.
func Segment(body string, maxChars int) []entities.Slide {
	if maxChars <= 0 {
		maxChars = entities.DefaultMaxChars
	}

	s := &segmenter{
		maxChars: maxChars,
		slides:   make([]entities.Slide, 0),
	}

	body = strings.ReplaceAll(body, "\r\n", "\n")
	lines := strings.Split(body, "\n")

	var para []string
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			s.paragraph(para)
			para = para[:0]

		case strings.HasPrefix(trimmed, fenceMarker):
			s.paragraph(para)
			para = para[:0]
			i = s.fence(lines, i)

		default:
			para = append(para, line)
		}
	}
	s.paragraph(para)
	s.flush()

	return s.slides
}

// segmenter is the scan state: the pending content buffer and the slides
// emitted so far
type segmenter struct {
	maxChars int
	buffer   string
	content  int
	slides   []entities.Slide
}

// paragraph routes one blank-line delimited paragraph
func (s *segmenter) paragraph(lines []string) {
	text := strings.TrimSpace(strings.Join(lines, "\n"))
	if text == "" {
		return
	}

	if m := imagePattern.FindStringSubmatch(text); m != nil {
		s.flush()
		s.slides = append(s.slides, entities.NewImageSlide(m[2], m[1]))
		return
	}

	if s.buffer == "" {
		s.buffer = text
		return
	}

	candidate := s.buffer + "\n\n" + text
	if utf8.RuneCountInString(candidate) > s.maxChars {
		s.flush()
		s.buffer = text
		return
	}
	s.buffer = candidate
}

// fence captures the code block opened at lines[start] and returns the index
// of its closing fence, or of the last line when the block is unterminated
func (s *segmenter) fence(lines []string, start int) int {
	s.flush()

	opening := strings.TrimSpace(lines[start])
	info := strings.TrimLeft(opening, "`")
	width := len(opening) - len(info)
	language := ""
	if fields := strings.Fields(info); len(fields) > 0 {
		language = fields[0]
	}

	end := len(lines) - 1
	closed := false
	for j := start + 1; j < len(lines); j++ {
		if isClosingFence(lines[j], width) {
			end = j
			closed = true
			break
		}
	}

	var code []string
	if closed {
		code = lines[start+1 : end]
	} else {
		code = lines[start+1:]
		for len(code) > 0 && strings.TrimSpace(code[len(code)-1]) == "" {
			code = code[:len(code)-1]
		}
	}

	s.slides = append(s.slides, entities.NewCodeSlide(language, strings.Join(code, "\n")))
	return end
}

// flush emits the pending buffer as the next numbered content slide
func (s *segmenter) flush() {
	if s.buffer == "" {
		return
	}
	s.content++
	s.slides = append(s.slides, entities.ContentSlide{
		Title:   entities.ContentSlideTitle(s.content),
		Content: s.buffer,
	})
	s.buffer = ""
}

// isClosingFence reports whether line is a bare backtick run of at least width
func isClosingFence(line string, width int) bool {
	trimmed := strings.TrimSpace(line)
	return len(trimmed) >= width && strings.Trim(trimmed, "`") == ""
}
