package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Path returns the file Save writes to: the file the config was loaded
// from, or config.yaml in the user's config directory.
func (c *Config) Path() string {
	if c.path != "" {
		return c.path
	}
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Save validates the config and writes it back to Path.
func (c *Config) Save() error {
	return c.SaveTo(c.Path())
}

// SaveTo validates the config and writes it to path. An invalid config is
// never written, so the next Load does not fail on it.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	c.path = path
	return nil
}
