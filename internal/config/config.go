// Package config handles ib configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds user settings. Loaded once at startup and immutable for
// the process lifetime; flags may override individual values per run.
type Config struct {
	// Template for generated branch names. Supports {number} and {title}.
	BranchTemplate string `json:"branchTemplate"`

	// Maximum number of issues to fetch.
	MaxIssues int `json:"maxIssues"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		BranchTemplate: "feature/{number}-{title}",
		MaxIssues:      50,
	}
}

// Dir returns the config directory, honoring XDG_CONFIG_HOME.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ib")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "ib")
	}
	return filepath.Join(home, ".config", "ib")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config.json")
}

// Load reads the config file, merging it over the defaults. A missing
// or unreadable file yields the defaults without error.
func Load() *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		return cfg
	}

	// Unmarshal over the defaults so absent keys keep their values.
	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	if cfg.BranchTemplate == "" {
		cfg.BranchTemplate = DefaultConfig().BranchTemplate
	}
	if cfg.MaxIssues <= 0 {
		cfg.MaxIssues = DefaultConfig().MaxIssues
	}
	return cfg
}

// Init writes the default config file if it does not exist. It reports
// whether a new file was created and where the file lives.
func Init() (created bool, path string, err error) {
	path = Path()

	if _, err := os.Stat(path); err == nil {
		return false, path, nil
	}

	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return false, path, err
	}

	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return false, path, err
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, path, err
	}
	return true, path, nil
}
