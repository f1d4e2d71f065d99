// Package config provides configuration loading for the server and the
// CLI, along with the JWT and password hashing settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultMaxUploadBytes caps resume uploads at 10MB.
const DefaultMaxUploadBytes = 10 << 20

// ServerConfig holds the settings the HTTP server needs, read from the
// environment.
type ServerConfig struct {
	Port              string
	DatabaseURL       string
	GeminiAPIKey      string
	MaxUploadBytes    int64
	AllowedExtensions []string
}

// NewServerConfig reads server configuration from environment variables.
// PORT defaults to 8000; DATABASE_URL and GEMINI_API_KEY are required.
func NewServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Port:           os.Getenv("PORT"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		MaxUploadBytes: DefaultMaxUploadBytes,
		AllowedExtensions: []string{
			".pdf", ".doc", ".docx", ".txt", ".html", ".htm",
		},
	}

	if cfg.Port == "" {
		cfg.Port = "8000"
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required but not set")
	}

	if maxStr := os.Getenv("MAX_UPLOAD_BYTES"); maxStr != "" {
		max, err := strconv.ParseInt(maxStr, 10, 64)
		if err != nil || max <= 0 {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %q", maxStr)
		}
		cfg.MaxUploadBytes = max
	}

	return cfg, nil
}

// ExtensionAllowed reports whether the upload filename carries an
// accepted extension.
func (c *ServerConfig) ExtensionAllowed(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range c.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ClientConfig holds the settings the CLI client needs.
type ClientConfig struct {
	ServerURL string
	StateDir  string
}

// NewClientConfig reads client configuration from environment variables.
// CVFILLER_SERVER defaults to a local server; CVFILLER_STATE_DIR defaults
// to ~/.cvfiller.
func NewClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{
		ServerURL: os.Getenv("CVFILLER_SERVER"),
		StateDir:  os.Getenv("CVFILLER_STATE_DIR"),
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = "http://localhost:8000"
	}
	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.StateDir = filepath.Join(home, ".cvfiller")
	}

	return cfg, nil
}
