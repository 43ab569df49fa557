// Package config loads and validates per-server client configuration.
// Configuration is a restart-time concern: files are read once at startup
// and the resulting entries are treated as immutable.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultLoader loads configuration from TOML (default) or YAML files,
// selected by file extension.
type DefaultLoader struct{}

// Load reads, decodes and validates the configuration file at path.
func (l *DefaultLoader) Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("config file path cannot be empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config '%s': %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config '%s': %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", path, err)
	}

	return &cfg, nil
}

// Validate ensures every server entry is well-formed and ids are unique.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Servers))

	for i, s := range c.Servers {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return fmt.Errorf("server at index %d has an empty id", i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate server id '%s'", id)
		}
		seen[id] = struct{}{}

		if err := validateURL(s.URL); err != nil {
			return fmt.Errorf("server '%s': %w", id, err)
		}
		if s.Timeout < 0 {
			return fmt.Errorf("server '%s': timeout cannot be negative", id)
		}
	}

	return nil
}

func validateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("url cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url '%s': %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url '%s' must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("url '%s' has no host", raw)
	}
	return nil
}
