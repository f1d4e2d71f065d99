package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/cvfiller")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("MAX_UPLOAD_BYTES", "")

	cfg, err := NewServerConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "postgres://localhost/cvfiller", cfg.DatabaseURL)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.Contains(t, cfg.AllowedExtensions, ".pdf")
}

func TestNewServerConfig_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_API_KEY", "test-key")

	_, err := NewServerConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestNewServerConfig_MissingAPIKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/cvfiller")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := NewServerConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestNewServerConfig_UploadLimit(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/cvfiller")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")

	cfg, err := NewServerConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(1048576), cfg.MaxUploadBytes)

	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")
	_, err = NewServerConfig()
	assert.Error(t, err)

	t.Setenv("MAX_UPLOAD_BYTES", "-5")
	_, err = NewServerConfig()
	assert.Error(t, err)
}

func TestExtensionAllowed(t *testing.T) {
	cfg := &ServerConfig{AllowedExtensions: []string{".pdf", ".txt"}}

	assert.True(t, cfg.ExtensionAllowed("resume.pdf"))
	assert.True(t, cfg.ExtensionAllowed("resume.PDF"))
	assert.True(t, cfg.ExtensionAllowed("resume.txt"))
	assert.False(t, cfg.ExtensionAllowed("resume.exe"))
	assert.False(t, cfg.ExtensionAllowed("resume"))
}

func TestNewClientConfig_Defaults(t *testing.T) {
	t.Setenv("CVFILLER_SERVER", "")
	t.Setenv("CVFILLER_STATE_DIR", "")
	t.Setenv("HOME", t.TempDir())

	cfg, err := NewClientConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
	assert.Contains(t, cfg.StateDir, ".cvfiller")
}

func TestNewClientConfig_Overrides(t *testing.T) {
	t.Setenv("CVFILLER_SERVER", "https://cv.example.com")
	t.Setenv("CVFILLER_STATE_DIR", "/tmp/cvstate")

	cfg, err := NewClientConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://cv.example.com", cfg.ServerURL)
	assert.Equal(t, "/tmp/cvstate", cfg.StateDir)
}
