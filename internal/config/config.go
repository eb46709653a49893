// Package config loads application configuration for the pastemd CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pastemd/pastemd/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidFormat  = errors.New("invalid default format")
)

// Known default-format values. The empty string means "word".
var knownFormats = map[string]bool{
	"": true, "word": true, "excel": true, "html": true,
}

// Config holds all configuration for the pastemd CLI.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Rules  RulesConfig  `yaml:"rules"`
	Output OutputConfig `yaml:"output"`
	Word   WordConfig   `yaml:"word"`
}

// EngineConfig locates the external conversion engine.
type EngineConfig struct {
	Path string `yaml:"path"` // Empty = "pandoc" resolved via PATH
}

// RulesConfig locates the LaTeX correction rule file.
type RulesConfig struct {
	File string `yaml:"file"` // Empty = embedded default rules
}

// OutputConfig defines delivery options.
type OutputConfig struct {
	DefaultFormat string `yaml:"defaultFormat"` // "word", "excel", "html" (default: "word")
	SaveDir       string `yaml:"saveDir"`       // Directory for kept artifacts
	KeepFile      bool   `yaml:"keepFile"`      // Also persist clipboard deliveries to SaveDir
}

// WordConfig defines Word-target options.
type WordConfig struct {
	ReferenceDocx string `yaml:"referenceDocx"` // Optional style template for docx output
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{DefaultFormat: "word"},
	}
}

// Validate checks field values. Called automatically by LoadConfig, but
// available for consumers who construct Config manually.
func (c *Config) Validate() error {
	if !knownFormats[c.Output.DefaultFormat] {
		return fmt.Errorf("%w: %q (must be word, excel, or html)", ErrInvalidFormat, c.Output.DefaultFormat)
	}
	return nil
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths returns the candidate config locations, most specific first.
func SearchPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".pastemd.yaml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "pastemd", "config.yaml"))
	}
	return paths
}

// FindConfig loads the first config found in SearchPaths. When none
// exists, the defaults are returned without error.
func FindConfig() (*Config, error) {
	for _, path := range SearchPaths() {
		cfg, err := LoadConfig(path)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, ErrConfigNotFound) {
			return nil, err
		}
	}
	return DefaultConfig(), nil
}
