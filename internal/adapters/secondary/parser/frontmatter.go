package parser

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
	"github.com/fredcamaral/blogdeck/internal/domain/ports"
)

// FrontMatterReader implements ports.FrontMatterReader for YAML headers
// delimited by "---" lines
type FrontMatterReader struct{}

// NewFrontMatterReader creates a new front matter reader
func NewFrontMatterReader() *FrontMatterReader {
	return &FrontMatterReader{}
}

// Read splits raw into front matter and body. A document without a header
// yields empty front matter and the whole content as body; a header that is
// not valid YAML is an error.
func (r *FrontMatterReader) Read(raw []byte) (entities.FrontMatter, string, error) {
	header, body, ok := splitFrontMatter(raw)
	if !ok {
		return entities.FrontMatter{}, string(body), nil
	}

	var fm entities.FrontMatter
	if len(bytes.TrimSpace(header)) > 0 {
		if err := yaml.Unmarshal(header, &fm); err != nil {
			return entities.FrontMatter{}, "", fmt.Errorf("parsing front matter: %w", err)
		}
	}

	return fm, string(body), nil
}

// splitFrontMatter separates the YAML header from the body. ok is false when
// the content does not open with a delimiter or the header is never closed.
func splitFrontMatter(content []byte) (header, body []byte, ok bool) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))

	if !bytes.HasPrefix(content, []byte("---\n")) {
		return nil, content, false
	}

	lines := bytes.Split(content, []byte("\n"))
	endIndex := -1

	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			endIndex = i
			break
		}
	}

	if endIndex == -1 {
		return nil, content, false
	}

	header = bytes.Join(lines[1:endIndex], []byte("\n"))
	body = bytes.Join(lines[endIndex+1:], []byte("\n"))

	return header, body, true
}

// Ensure FrontMatterReader implements ports.FrontMatterReader
var _ ports.FrontMatterReader = (*FrontMatterReader)(nil)
