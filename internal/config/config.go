// Package config loads the optional YAML configuration file for the ps2kit
// CLI. Flags always win; the file only supplies defaults for paths that would
// otherwise be repeated on every invocation.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the CLI defaults.
type Config struct {
	// Database is the SQLite event store path.
	Database string `yaml:"database"`
	// Dataset is the exported dataset directory.
	Dataset string `yaml:"dataset"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Database: "ps2.db",
		Dataset:  "dataset",
	}
}

// Load reads a YAML config file, layering it over the defaults. Unknown keys
// are rejected so typos surface instead of silently falling back.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
