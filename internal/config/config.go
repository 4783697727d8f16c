// Package config loads and saves the downloader's yaml configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// appDir is the per-user directory holding config and token files.
const appDir = "coverflex-downloader"

// Config represents the top-level config.yaml.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Token  TokenConfig  `yaml:"token"`
	Export ExportConfig `yaml:"export"`
}

// APIConfig selects the Coverflex API to talk to.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
}

// TokenConfig controls durable token storage.
type TokenConfig struct {
	Path string `yaml:"path"`
}

// ExportConfig holds default filter flags for exports.
type ExportConfig struct {
	IncludeTopups   bool `yaml:"include_topups"`
	IncludeRejected bool `yaml:"include_rejected"`
}

// Load reads a config.yaml from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a yaml file, creating parent directories.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config pointing at the production API and the standard
// per-user token path.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://menhir-api.coverflex.com/api/employee",
		},
		Token: TokenConfig{
			Path: filepath.Join(userConfigDir(), appDir, "token"),
		},
	}
}

// DefaultPath returns the standard location of config.yaml.
func DefaultPath() string {
	return filepath.Join(userConfigDir(), appDir, "config.yaml")
}

// LoadOrDefault loads the config at path, falling back to defaults when the
// file does not exist yet. Missing fields pick up their default values.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = Default().API.BaseURL
	}
	if cfg.Token.Path == "" {
		cfg.Token.Path = Default().Token.Path
	}
	return cfg, nil
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return "."
}
