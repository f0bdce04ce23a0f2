package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Default policy values applied when the config file is absent or a field
// is left at its zero value.
const (
	DefaultMaxActiveAssignments = 1
	DefaultOvercrowdThreshold   = 0.95
)

// Config represents the flat relief engine configuration
type Config struct {
	Version      string `json:"version"`
	DatabasePath string `json:"database_path,omitempty"` // overrides ~/.relief/relief.db

	// MaxActiveAssignments caps the number of Active assignments a volunteer
	// may hold at once. -1 disables the cap entirely; the at-most-one rule is
	// assumed but unconfirmed, so it stays configurable.
	MaxActiveAssignments int `json:"max_active_assignments,omitempty"`

	// OvercrowdThreshold is the occupancy ratio above which a camp is
	// flagged Overcrowded.
	OvercrowdThreshold float64 `json:"overcrowd_threshold,omitempty"`
}

// LoadConfig reads .relief/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".relief", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	reliefDir := filepath.Join(dir, ".relief")
	if err := os.MkdirAll(reliefDir, 0755); err != nil {
		return fmt.Errorf("failed to create .relief dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(reliefDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Default returns a config populated with default policy values.
func Default() *Config {
	cfg := &Config{Version: "1"}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.MaxActiveAssignments == 0 {
		c.MaxActiveAssignments = DefaultMaxActiveAssignments
	}
	if c.OvercrowdThreshold <= 0 {
		c.OvercrowdThreshold = DefaultOvercrowdThreshold
	}
}
