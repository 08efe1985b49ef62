package entities

import (
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the metadata header of a source document
type FrontMatter struct {
	Title   string  `yaml:"title" json:"title"`
	Date    string  `yaml:"date" json:"date"`
	Excerpt string  `yaml:"excerpt" json:"excerpt,omitempty"`
	Author  string  `yaml:"author" json:"author,omitempty"`
	Tags    TagList `yaml:"tags" json:"tags,omitempty"`
}

// Document is a source document split into front matter and body
type Document struct {
	ID   string
	Meta FrontMatter
	Body string

	// Raw is the unparsed file content, used for change detection
	Raw []byte
}

// TagList accepts either a YAML sequence or a comma separated scalar
type TagList []string

// UnmarshalYAML implements yaml.Unmarshaler
func (t *TagList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*t = items
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*t = nil
			return nil
		}
		var items []string
		for _, part := range strings.Split(node.Value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				items = append(items, trimmed)
			}
		}
		*t = items
	default:
		return errors.New("tags must be a list or a comma separated string")
	}
	return nil
}

// Normalized returns the tags trimmed, without empties and without duplicates,
// keeping first-seen order
func (t TagList) Normalized() []string {
	seen := make(map[string]struct{}, len(t))
	out := make([]string, 0, len(t))
	for _, tag := range t {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
