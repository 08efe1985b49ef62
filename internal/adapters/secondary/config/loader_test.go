package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOMLLoader_LoadGlobal(t *testing.T) {
	t.Run("creates config on first run", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "blogdeck-test-*")
		require.NoError(t, err)
		defer func() { _ = os.RemoveAll(tmpDir) }()

		globalPath := filepath.Join(tmpDir, "config.toml")
		loader := NewTOMLLoaderWithPath(globalPath)

		ctx := context.Background()
		config, err := loader.LoadGlobal(ctx)
		require.NoError(t, err)
		assert.NotNil(t, config)

		// Check that file was created
		_, err = os.Stat(globalPath)
		assert.NoError(t, err)

		// Verify default values
		assert.Equal(t, "content/posts", config.Content.Dir)
		assert.Equal(t, "public/slides", config.Output.Dir)
		assert.Equal(t, 300, config.Segmenter.MaxChars)
		assert.Equal(t, 4, config.Generate.Concurrency)
		assert.Equal(t, "localhost", config.Server.Host)
		assert.Equal(t, 3000, config.Server.Port)
		assert.Equal(t, 200, config.Watcher.DebounceMs)
	})

	t.Run("loads existing config", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "blogdeck-test-*")
		require.NoError(t, err)
		defer func() { _ = os.RemoveAll(tmpDir) }()

		globalPath := filepath.Join(tmpDir, "config.toml")

		configContent := `
[content]
dir = "posts"

[output]
dir = "dist/decks"

[segmenter]
max_chars = 500

[server]
host = "0.0.0.0"
port = 8080
`
		err = os.WriteFile(globalPath, []byte(configContent), 0644)
		require.NoError(t, err)

		loader := NewTOMLLoaderWithPath(globalPath)

		ctx := context.Background()
		config, err := loader.LoadGlobal(ctx)
		require.NoError(t, err)
		assert.NotNil(t, config)

		assert.Equal(t, "posts", config.Content.Dir)
		assert.Equal(t, "dist/decks", config.Output.Dir)
		assert.Equal(t, 500, config.Segmenter.MaxChars)
		assert.Equal(t, "0.0.0.0", config.Server.Host)
		assert.Equal(t, 8080, config.Server.Port)
	})

	t.Run("fails with invalid TOML", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "blogdeck-test-*")
		require.NoError(t, err)
		defer func() { _ = os.RemoveAll(tmpDir) }()

		globalPath := filepath.Join(tmpDir, "config.toml")

		invalidContent := `
[server
host = "localhost"
`
		err = os.WriteFile(globalPath, []byte(invalidContent), 0644)
		require.NoError(t, err)

		loader := NewTOMLLoaderWithPath(globalPath)

		ctx := context.Background()
		_, err = loader.LoadGlobal(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "parsing TOML")
	})

	t.Run("fails with unknown keys", func(t *testing.T) {
		tmpDir := t.TempDir()
		globalPath := filepath.Join(tmpDir, "config.toml")

		err := os.WriteFile(globalPath, []byte("[segmenter]\nmax_char = 10\n"), 0644)
		require.NoError(t, err)

		loader := NewTOMLLoaderWithPath(globalPath)
		_, err = loader.LoadGlobal(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown keys")
		assert.Contains(t, err.Error(), "max_char")
	})
}

func TestTOMLLoader_LoadLocal(t *testing.T) {
	t.Run("loads partial local config", func(t *testing.T) {
		tmpDir := t.TempDir()
		localPath := filepath.Join(tmpDir, LocalConfigName)

		configContent := `
[segmenter]
max_chars = 120

[watcher]
debounce_ms = 50
`
		err := os.WriteFile(localPath, []byte(configContent), 0644)
		require.NoError(t, err)

		loader := NewTOMLLoaderWithPath("unused")

		config, err := loader.LoadLocal(context.Background(), tmpDir)
		require.NoError(t, err)
		require.NotNil(t, config)

		assert.Equal(t, 120, config.Segmenter.MaxChars)
		assert.Equal(t, 50, config.Watcher.DebounceMs)
		// Unset sections stay zero until merged
		assert.Empty(t, config.Content.Dir)
	})

	t.Run("returns nil for non-existent local config", func(t *testing.T) {
		loader := NewTOMLLoaderWithPath("unused")

		config, err := loader.LoadLocal(context.Background(), t.TempDir())
		require.NoError(t, err)
		assert.Nil(t, config)
	})
}

func TestTOMLLoader_LoadFile(t *testing.T) {
	t.Run("loads explicit file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.toml")
		require.NoError(t, os.WriteFile(path, []byte("[content]\ndir = \"blog\"\n"), 0644))

		loader := NewTOMLLoaderWithPath("unused")
		config, err := loader.LoadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "blog", config.Content.Dir)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		loader := NewTOMLLoaderWithPath("unused")
		_, err := loader.LoadFile(context.Background(), filepath.Join(t.TempDir(), "nope.toml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config")
	})
}

func TestTOMLLoader_CreateDefaults(t *testing.T) {
	t.Run("creates default config file", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "blogdeck-test-*")
		require.NoError(t, err)
		defer func() { _ = os.RemoveAll(tmpDir) }()

		configPath := filepath.Join(tmpDir, "nested", "config.toml")
		loader := NewTOMLLoader()

		ctx := context.Background()
		err = loader.CreateDefaults(ctx, configPath)
		require.NoError(t, err)

		_, err = os.Stat(configPath)
		assert.NoError(t, err)

		// Verify file contents by loading it
		config, err := loader.loadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, GetDefaultConfig(), config)
		assert.NoError(t, config.Validate())
	})

	t.Run("fails when parent is a file", func(t *testing.T) {
		tmpDir := t.TempDir()
		blocker := filepath.Join(tmpDir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		loader := NewTOMLLoader()
		err := loader.CreateDefaults(context.Background(), filepath.Join(blocker, "config.toml"))
		assert.Error(t, err)
	})
}

func TestTOMLLoader_GetPaths(t *testing.T) {
	t.Run("returns correct global path", func(t *testing.T) {
		loader := NewTOMLLoader()
		globalPath := loader.GetGlobalPath()

		assert.Contains(t, globalPath, ".config")
		assert.Contains(t, globalPath, "blogdeck")
		assert.Contains(t, globalPath, "config.toml")
	})

	t.Run("returns correct local path", func(t *testing.T) {
		loader := NewTOMLLoader()
		localPath := loader.GetLocalPath("/some/project")

		expected := filepath.Join("/some/project", "blogdeck.toml")
		assert.Equal(t, expected, localPath)
	})
}
