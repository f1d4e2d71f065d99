package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileConfig represents the CLI configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or
// must be provided via CLI flags.
type FileConfig struct {
	APIKey      string `json:"api_key,omitempty"`     // Gemini API key
	OutputDir   string `json:"output_dir,omitempty"`  // Directory for exported files
	Format      string `json:"format,omitempty"`      // Export format: text, json, html or pdf
	Concurrency int    `json:"concurrency,omitempty"` // Parallel file workers
	Verbose     bool   `json:"verbose,omitempty"`     // Print detailed debug information
}

// LoadFileConfig loads CLI configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadFileConfig(path string) (*FileConfig, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *FileConfig) Validate() error {
	switch c.Format {
	case "", "text", "json", "html", "pdf":
	default:
		return fmt.Errorf("config error: unknown format %q", c.Format)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new FileConfig with empty fields filled
// from defaults. This is used to apply config file values as defaults
// for CLI flags.
func (c *FileConfig) MergeWithDefaults(defaults FileConfig) FileConfig {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}
