package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// configFile is the name looked up in the working and user config directories.
const configFile = "config.yaml"

// Load builds the effective configuration: defaults, then the first config
// file found, then command-line flags. The result is validated.
func Load() (*Config, error) {
	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	return layered(path)
}

// layered applies the file at path (if any) and the flags over Default.
func layered(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// searchPaths lists config file candidates in lookup order.
func searchPaths() []string {
	return []string{
		configFile,
		filepath.Join(ConfigDir(), configFile),
	}
}

// findConfigFile returns the first regular file in searchPaths, or "".
func findConfigFile() string {
	for _, path := range searchPaths() {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user directory the viewer keeps its config in.
func ConfigDir() string {
	name := "lighthouse"
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		name = "Lighthouse"
	}
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, name)
}

// loadFromFile merges a YAML file into cfg. Keys the viewer does not know are
// rejected so that a misspelled setting does not silently keep its default.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
