package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
)

func TestConfigMerger_Merge(t *testing.T) {
	merger := NewConfigMerger()

	t.Run("no configs returns defaults", func(t *testing.T) {
		result := merger.Merge()
		assert.Equal(t, GetDefaultConfig(), result)
	})

	t.Run("later configs take precedence", func(t *testing.T) {
		global := &entities.Config{
			Content:   entities.ContentConfig{Dir: "global/posts"},
			Segmenter: entities.SegmenterConfig{MaxChars: 200},
			Server:    entities.ServerConfig{Host: "localhost", Port: 3000},
		}
		local := &entities.Config{
			Segmenter: entities.SegmenterConfig{MaxChars: 450},
			Server:    entities.ServerConfig{Port: 4000},
		}

		result := merger.Merge(GetDefaultConfig(), global, local)
		assert.Equal(t, "global/posts", result.Content.Dir)
		assert.Equal(t, "public/slides", result.Output.Dir)
		assert.Equal(t, 450, result.Segmenter.MaxChars)
		assert.Equal(t, "localhost", result.Server.Host)
		assert.Equal(t, 4000, result.Server.Port)
	})

	t.Run("nil configs are skipped", func(t *testing.T) {
		result := merger.Merge(GetDefaultConfig(), nil, &entities.Config{Theme: entities.ThemeConfig{Name: "dark"}})
		assert.Equal(t, "dark", result.Theme.Name)
		assert.Equal(t, 300, result.Segmenter.MaxChars)
	})

	t.Run("json format only turns on", func(t *testing.T) {
		base := GetDefaultConfig()
		base.Logging.JSONFormat = true

		result := merger.Merge(base, &entities.Config{Logging: entities.LoggingConfig{Level: "warn"}})
		assert.True(t, result.Logging.JSONFormat)
		assert.Equal(t, "warn", result.Logging.Level)
	})

	t.Run("inputs are not mutated", func(t *testing.T) {
		base := GetDefaultConfig()
		_ = merger.Merge(base, &entities.Config{Output: entities.OutputConfig{Dir: "elsewhere"}})
		assert.Equal(t, "public/slides", base.Output.Dir)
	})
}

func TestConfigMerger_ApplyFlags(t *testing.T) {
	merger := NewConfigMerger()

	t.Run("apply flag overrides", func(t *testing.T) {
		flags := map[string]interface{}{
			"content-dir": "src/posts",
			"output-dir":  "out",
			"max-chars":   80,
			"concurrency": 2,
			"port":        9000,
			"host":        "0.0.0.0",
			"theme":       "dark",
			"verbose":     true,
		}

		result := merger.ApplyFlags(GetDefaultConfig(), flags)
		assert.Equal(t, "src/posts", result.Content.Dir)
		assert.Equal(t, "out", result.Output.Dir)
		assert.Equal(t, 80, result.Segmenter.MaxChars)
		assert.Equal(t, 2, result.Generate.Concurrency)
		assert.Equal(t, 9000, result.Server.Port)
		assert.Equal(t, "0.0.0.0", result.Server.Host)
		assert.Equal(t, "dark", result.Theme.Name)
		assert.Equal(t, "debug", result.Logging.Level)
	})

	t.Run("zero values leave config unchanged", func(t *testing.T) {
		flags := map[string]interface{}{
			"content-dir": "",
			"max-chars":   0,
			"verbose":     false,
		}

		result := merger.ApplyFlags(GetDefaultConfig(), flags)
		assert.Equal(t, "content/posts", result.Content.Dir)
		assert.Equal(t, 300, result.Segmenter.MaxChars)
		assert.Equal(t, "info", result.Logging.Level)
	})

	t.Run("wrong types are ignored", func(t *testing.T) {
		flags := map[string]interface{}{
			"port":      "not-a-number",
			"max-chars": "lots",
		}

		result := merger.ApplyFlags(GetDefaultConfig(), flags)
		assert.Equal(t, 3000, result.Server.Port)
		assert.Equal(t, 300, result.Segmenter.MaxChars)
	})
}

func TestConfigMerger_ApplyEnvVars(t *testing.T) {
	merger := NewConfigMerger()

	t.Run("apply environment variable overrides", func(t *testing.T) {
		t.Setenv("BLOGDECK_CONTENT_DIR", "env/posts")
		t.Setenv("BLOGDECK_OUTPUT_DIR", "env/out")
		t.Setenv("BLOGDECK_MAX_CHARS", "150")
		t.Setenv("BLOGDECK_PORT", "9100")
		t.Setenv("BLOGDECK_CORS_ORIGINS", "https://a.example, https://b.example")
		t.Setenv("BLOGDECK_WATCH_DEBOUNCE", "0")
		t.Setenv("BLOGDECK_LOG_JSON", "true")

		result := merger.ApplyEnvVars(GetDefaultConfig())
		assert.Equal(t, "env/posts", result.Content.Dir)
		assert.Equal(t, "env/out", result.Output.Dir)
		assert.Equal(t, 150, result.Segmenter.MaxChars)
		assert.Equal(t, 9100, result.Server.Port)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, result.Server.CORSOrigins)
		assert.Equal(t, 0, result.Watcher.DebounceMs)
		assert.True(t, result.Logging.JSONFormat)
	})

	t.Run("ignore invalid environment values", func(t *testing.T) {
		t.Setenv("BLOGDECK_PORT", "not-a-number")
		t.Setenv("BLOGDECK_MAX_CHARS", "-5")
		t.Setenv("BLOGDECK_LOG_JSON", "not-a-bool")

		result := merger.ApplyEnvVars(GetDefaultConfig())
		assert.Equal(t, 3000, result.Server.Port)
		assert.Equal(t, 300, result.Segmenter.MaxChars)
		assert.False(t, result.Logging.JSONFormat)
	})

	t.Run("no environment variables set", func(t *testing.T) {
		result := merger.ApplyEnvVars(GetDefaultConfig())
		assert.Equal(t, GetDefaultConfig(), result)
	})
}

func TestDeepCopy(t *testing.T) {
	t.Run("deep copy creates independent slices", func(t *testing.T) {
		original := &entities.Config{
			Server: entities.ServerConfig{
				CORSOrigins: []string{"http://localhost:3000"},
			},
		}

		copy := deepCopy(original)
		original.Server.CORSOrigins[0] = "modified"

		assert.Equal(t, "http://localhost:3000", copy.Server.CORSOrigins[0])
	})

	t.Run("deep copy of nil yields defaults", func(t *testing.T) {
		assert.Equal(t, GetDefaultConfig(), deepCopy(nil))
	})
}
