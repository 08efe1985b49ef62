package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/blogdeck/internal/adapters/secondary/parser"
	"github.com/fredcamaral/blogdeck/internal/domain/entities"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestDocumentRepository_Get(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	writeFile(t, dir, "hello.md", "---\ntitle: Hello\ndate: 2024-01-01\n---\nBody text")
	writeFile(t, dir, "legacy.markdown", "---\ntitle: Legacy\n---\nOld body")

	repo := NewDocumentRepository(dir, nil, parser.NewFrontMatterReader())

	t.Run("md file", func(t *testing.T) {
		doc, err := repo.Get(ctx, "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", doc.ID)
		assert.Equal(t, "Hello", doc.Meta.Title)
		assert.Equal(t, "2024-01-01", doc.Meta.Date)
		assert.Equal(t, "Body text", doc.Body)
		assert.NotEmpty(t, doc.Raw)
	})

	t.Run("markdown extension", func(t *testing.T) {
		doc, err := repo.Get(ctx, "legacy")
		require.NoError(t, err)
		assert.Equal(t, "Legacy", doc.Meta.Title)
	})

	t.Run("missing document", func(t *testing.T) {
		_, err := repo.Get(ctx, "nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrDocumentNotFound)
		assert.Contains(t, err.Error(), "nope")
	})

	t.Run("path traversal is not found", func(t *testing.T) {
		_, err := repo.Get(ctx, "../etc/passwd")
		assert.ErrorIs(t, err, entities.ErrDocumentNotFound)
	})

	t.Run("invalid front matter", func(t *testing.T) {
		writeFile(t, dir, "broken.md", "---\ntitle: [oops\n---\nBody")
		_, err := repo.Get(ctx, "broken")
		require.Error(t, err)
		assert.NotErrorIs(t, err, entities.ErrDocumentNotFound)
		assert.Contains(t, err.Error(), "broken")
	})
}

func TestDocumentRepository_List(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	writeFile(t, dir, "b-post.md", "---\ntitle: B\n---\nB body")
	writeFile(t, dir, "a-post.md", "---\ntitle: A\n---\nA body")
	writeFile(t, dir, "a-post.markdown", "---\ntitle: A duplicate\n---\nignored")
	writeFile(t, dir, "notes.txt", "not a document")
	writeFile(t, dir, ".hidden.md", "hidden")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "drafts"), 0o750))
	writeFile(t, filepath.Join(dir, "drafts"), "draft.md", "---\ntitle: Draft\n---\n")

	repo := NewDocumentRepository(dir, nil, parser.NewFrontMatterReader())

	docs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "a-post", docs[0].ID)
	assert.Equal(t, "A", docs[0].Meta.Title)
	assert.Equal(t, "b-post", docs[1].ID)
}

func TestDocumentRepository_ListMissingDir(t *testing.T) {
	repo := NewDocumentRepository(filepath.Join(t.TempDir(), "missing"), nil, parser.NewFrontMatterReader())

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scanning")
}
