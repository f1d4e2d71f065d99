package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileConfig(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := writeConfigFile(t, `{"api_key": "k", "format": "pdf", "concurrency": 4}`)

		cfg, err := LoadFileConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "k", cfg.APIKey)
		assert.Equal(t, "pdf", cfg.Format)
		assert.Equal(t, 4, cfg.Concurrency)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := LoadFileConfig("")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFileConfig(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := writeConfigFile(t, `{not json`)
		_, err := LoadFileConfig(path)
		assert.Error(t, err)
	})
}

func TestFileConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     FileConfig
		wantErr bool
	}{
		{"empty is valid", FileConfig{}, false},
		{"text format", FileConfig{Format: "text"}, false},
		{"pdf format", FileConfig{Format: "pdf"}, false},
		{"unknown format", FileConfig{Format: "docx"}, true},
		{"negative concurrency", FileConfig{Concurrency: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	partial := FileConfig{Format: "json"}
	defaults := FileConfig{APIKey: "default-key", Format: "text", Concurrency: 2}

	merged := partial.MergeWithDefaults(defaults)

	assert.Equal(t, "default-key", merged.APIKey)
	assert.Equal(t, "json", merged.Format) // explicit value wins
	assert.Equal(t, 2, merged.Concurrency)
}

func TestMergeWithDefaultsEmptyDefaults(t *testing.T) {
	cfg := FileConfig{APIKey: "k", Concurrency: 8}
	merged := cfg.MergeWithDefaults(FileConfig{})
	assert.Equal(t, cfg, merged)
}
