package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".vidwalk"

// ErrConfigNotFound is returned when the configuration file does not exist.
// Callers decide how to present it depending on whether the path was
// explicit or came from the default search.
var ErrConfigNotFound = errors.New("configuration file not found")

// Load reads the YAML configuration file at path and returns a Config
// with defaults applied for every field the file omits. It does not
// validate; call Validate on the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("read configuration file: %w", err)
	}

	// Unmarshalling over the defaults keeps omitted keys at their
	// default values while explicit zeroes (e.g. max_depth: 0) stick.
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse configuration file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile resolves the configuration file path:
//  1. If configPath is set, it is used directly (empty result if missing).
//  2. Otherwise .vidwalk in the current directory.
//  3. Otherwise .vidwalk in the user's home directory.
//
// Returns an empty string when no file is found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}
