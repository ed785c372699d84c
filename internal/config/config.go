// Package config handles the repository configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the config file's name inside the repository data directory.
const FileName = "config.yml"

// DefaultBranch is the branch a fresh repository starts on.
const DefaultBranch = "master"

// Config is the repository configuration.
type Config struct {
	Version       int    `yaml:"version"`
	DefaultBranch string `yaml:"default_branch"`
}

// Default returns the configuration written by init.
func Default() *Config {
	return &Config{Version: 1, DefaultBranch: DefaultBranch}
}

// Load reads the config at path. Missing fields fall back to defaults so
// configs written by older versions keep working.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DefaultBranch == "" {
		cfg.DefaultBranch = DefaultBranch
	}
	return &cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
