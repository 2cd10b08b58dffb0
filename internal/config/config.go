package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all histexport configuration.
type Config struct {
	Profiles ProfilesConfig `yaml:"profiles"`
	Output   OutputConfig   `yaml:"output"`
	Scratch  ScratchConfig  `yaml:"scratch"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ProfilesConfig locates browser data. Relative paths are taken from the
// home directory.
type ProfilesConfig struct {
	Chrome  string `yaml:"chrome"`
	Firefox string `yaml:"firefox"`
	Safari  string `yaml:"safari"`
}

type OutputConfig struct {
	Dir  string `yaml:"dir"`
	Gzip bool   `yaml:"gzip"`
}

type ScratchConfig struct {
	Dir string `yaml:"dir"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path when it is set and returns defaults otherwise.
// No file is ever created.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	return Load(expanded)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// Roots are the absolute profile locations handed to discovery.
type Roots struct {
	Chrome  string
	Firefox string
	Safari  string
}

// Resolve joins relative profile paths onto home.
func (c *Config) Resolve(home string) Roots {
	abs := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(home, p)
	}
	return Roots{
		Chrome:  abs(c.Profiles.Chrome),
		Firefox: abs(c.Profiles.Firefox),
		Safari:  abs(c.Profiles.Safari),
	}
}
