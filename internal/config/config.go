// Package config holds the tool-wide settings shared by every subcommand,
// mostly cluster paths that rarely change between projects.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings represents the tool configuration options.
type Settings struct {
	// Profile is the Snakemake execution profile directory.
	Profile string `yaml:"profile"`

	// SnakemakeCache caches between-workflow results.
	SnakemakeCache string `yaml:"snakemake_cache"`

	// CondaCache caches conda environments across deployments.
	CondaCache string `yaml:"conda_cache"`

	// CondaEnv is the shared Snakemake conda installation.
	CondaEnv string `yaml:"conda_env"`

	// DefaultOrganism is used when no organism flag is given.
	DefaultOrganism string `yaml:"default_organism"`

	// HistoryDB is the run journal location.
	HistoryDB string `yaml:"history_db"`

	// LogLevel sets the console verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// DefaultSettings returns the cluster defaults.
func DefaultSettings() *Settings {
	home, _ := os.UserHomeDir()
	return &Settings{
		Profile:         "/mnt/beegfs/pipelines/unofficial-snakemake-wrappers/profiles/slurm-web-8/",
		SnakemakeCache:  "/mnt/beegfs/pipelines/unofficial-snakemake-wrappers/snakemake_cache",
		CondaCache:      "/mnt/beegfs/pipelines/unofficial-snakemake-wrappers/conda_cache",
		CondaEnv:        "/mnt/beegfs/pipelines/unofficial-snakemake-wrappers/shared_install/snakemake/",
		DefaultOrganism: "homo_sapiens.GRCh38.109",
		HistoryDB:       filepath.Join(home, ".bigr-utils", "history.db"),
		LogLevel:        "info",
	}
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bigr-utils", "config.yaml")
}

// Load reads settings from path, merging non-empty values over the
// defaults. A missing file yields the defaults without error, an
// unreadable or malformed one is reported.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if loaded.Profile != "" {
		settings.Profile = loaded.Profile
	}
	if loaded.SnakemakeCache != "" {
		settings.SnakemakeCache = loaded.SnakemakeCache
	}
	if loaded.CondaCache != "" {
		settings.CondaCache = loaded.CondaCache
	}
	if loaded.CondaEnv != "" {
		settings.CondaEnv = loaded.CondaEnv
	}
	if loaded.DefaultOrganism != "" {
		settings.DefaultOrganism = loaded.DefaultOrganism
	}
	if loaded.HistoryDB != "" {
		settings.HistoryDB = loaded.HistoryDB
	}
	if loaded.LogLevel != "" {
		settings.LogLevel = loaded.LogLevel
	}

	return settings, nil
}

// Save writes settings to path, creating parent directories.
func Save(path string, settings *Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
