package ports

import (
	"context"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
)

// FrontMatterReader splits a raw document into its metadata header and body
type FrontMatterReader interface {
	Read(raw []byte) (entities.FrontMatter, string, error)
}

// DocumentRepository loads source documents by id
type DocumentRepository interface {
	// Get returns the document for id, or an error wrapping entities.ErrDocumentNotFound
	Get(ctx context.Context, id string) (*entities.Document, error)

	// List returns every document in the content directory, sorted by id
	List(ctx context.Context) ([]entities.Document, error)

	// Root returns the directory the repository reads from
	Root() string
}
