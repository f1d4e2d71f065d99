package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenStore is the durable storage for the authentication token. It is
// written by login/register (set) and by logout or validation failure
// (clear), and read once at startup.
type TokenStore interface {
	// Load returns the stored token, or "" when none is stored.
	Load() (string, error)
	// Save replaces the stored token.
	Save(token string) error
	// Clear removes the stored token. Clearing an empty store succeeds.
	Clear() error
}

// FileTokenStore persists the token in a mode-0600 file.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a store writing to dir/token.
func NewFileTokenStore(dir string) *FileTokenStore {
	return &FileTokenStore{path: filepath.Join(dir, "token")}
}

// Load reads the stored token. A missing file is not an error.
func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token, creating the parent directory if needed.
func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Clear removes the token file.
func (s *FileTokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
