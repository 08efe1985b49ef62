package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
	"github.com/fredcamaral/blogdeck/internal/domain/ports"
)

// Extensions lists the source file extensions in lookup order
var Extensions = []string{".md", ".markdown"}

// DocumentRepository reads markdown documents from a flat content directory.
// A document's id is its file name without extension.
type DocumentRepository struct {
	root   string
	fs     ports.FileSystem
	reader ports.FrontMatterReader
}

// NewDocumentRepository creates a repository rooted at dir
func NewDocumentRepository(dir string, fsys ports.FileSystem, reader ports.FrontMatterReader) *DocumentRepository {
	if fsys == nil {
		fsys = ports.NewRealFileSystem()
	}
	return &DocumentRepository{
		root:   dir,
		fs:     fsys,
		reader: reader,
	}
}

// Root returns the content directory
func (r *DocumentRepository) Root() string {
	return r.root
}

// Get loads the document with the given id
func (r *DocumentRepository) Get(ctx context.Context, id string) (*entities.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !validID(id) {
		return nil, fmt.Errorf("%w: invalid id %q", entities.ErrDocumentNotFound, id)
	}

	for _, ext := range Extensions {
		path := filepath.Join(r.root, id+ext)
		raw, err := r.fs.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading document %s: %w", path, err)
		}
		return r.parse(id, raw)
	}

	return nil, fmt.Errorf("%w: %s (looked in %s)", entities.ErrDocumentNotFound, id, r.root)
}

// List loads every document directly inside the content directory, sorted by id.
// When the same id exists with several extensions the first in Extensions wins.
func (r *DocumentRepository) List(ctx context.Context) ([]entities.Document, error) {
	type source struct {
		name string
		rank int
	}
	found := make(map[string]source)

	err := r.fs.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == r.root {
				return nil
			}
			return fs.SkipDir
		}
		id, ext, ok := splitSourceName(d.Name())
		if !ok {
			return nil
		}
		rank := extRank(ext)
		if prev, exists := found[id]; exists && prev.rank <= rank {
			return nil
		}
		found[id] = source{name: d.Name(), rank: rank}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", r.root, err)
	}

	ids := make([]string, 0, len(found))
	for id := range found {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	docs := make([]entities.Document, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(r.root, found[id].name)
		raw, err := r.fs.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading document %s: %w", path, err)
		}
		doc, err := r.parse(id, raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	return docs, nil
}

func (r *DocumentRepository) parse(id string, raw []byte) (*entities.Document, error) {
	meta, body, err := r.reader.Read(raw)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", id, err)
	}
	return &entities.Document{
		ID:   id,
		Meta: meta,
		Body: body,
		Raw:  raw,
	}, nil
}

func splitSourceName(name string) (id, ext string, ok bool) {
	ext = strings.ToLower(filepath.Ext(name))
	if extRank(ext) < 0 {
		return "", "", false
	}
	id = strings.TrimSuffix(name, filepath.Ext(name))
	if id == "" || strings.HasPrefix(id, ".") {
		return "", "", false
	}
	return id, ext, true
}

func extRank(ext string) int {
	for i, e := range Extensions {
		if e == ext {
			return i
		}
	}
	return -1
}

func validID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}

// Ensure DocumentRepository implements ports.DocumentRepository
var _ ports.DocumentRepository = (*DocumentRepository)(nil)
