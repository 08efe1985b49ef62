package sink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
	"github.com/fredcamaral/blogdeck/internal/domain/ports"
)

// JSONStore persists decks as indented JSON files named <id>.json
type JSONStore struct {
	dir string
	fs  ports.FileSystem
}

// NewJSONStore creates a store writing into dir
func NewJSONStore(dir string, fsys ports.FileSystem) *JSONStore {
	if fsys == nil {
		fsys = ports.NewRealFileSystem()
	}
	return &JSONStore{dir: dir, fs: fsys}
}

// PathFor returns the artifact path for id
func (s *JSONStore) PathFor(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Write serializes the deck, replacing any previous artifact for the same id
func (s *JSONStore) Write(ctx context.Context, deck *entities.Deck) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if deck == nil {
		return "", errors.New("deck cannot be nil")
	}
	if deck.ID == "" {
		return "", errors.New("deck id cannot be empty")
	}

	data, err := Encode(deck)
	if err != nil {
		return "", err
	}

	if err := s.fs.MkdirAll(s.dir, 0o750); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", s.dir, err)
	}

	path := s.PathFor(deck.ID)
	if err := s.fs.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	return path, nil
}

// Read loads the artifact for id
func (s *JSONStore) Read(ctx context.Context, id string) (*entities.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.PathFor(id)
	data, err := s.fs.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", entities.ErrArtifactNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var deck entities.Deck
	if err := json.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return &deck, nil
}

// Encode renders a deck in the artifact format: two-space indented JSON with
// a trailing newline
func Encode(deck *entities.Deck) ([]byte, error) {
	data, err := json.MarshalIndent(deck, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding deck %s: %w", deck.ID, err)
	}
	return append(data, '\n'), nil
}

// Ensure JSONStore implements the sink ports
var (
	_ ports.DeckWriter = (*JSONStore)(nil)
	_ ports.DeckReader = (*JSONStore)(nil)
)
