// ABOUTME: gymtrack configuration file handling.
// ABOUTME: Resolves the data directory and opens the workout store and preferences.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/gymtrack/internal/prefs"
	"github.com/harperreed/gymtrack/internal/storage"
)

// Config stores gymtrack configuration.
type Config struct {
	// DataDir is the root directory for data storage. It holds gymtrack.db
	// and the prefs/ folder. Supports ~ expansion for home directory.
	// Defaults to ~/.local/share/gymtrack.
	DataDir string `json:"data_dir,omitempty"`

	// Debug turns on debug logging mirrored to stderr.
	Debug bool `json:"debug,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DBPath is the SQLite database file inside the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), "gymtrack.db")
}

// OpenStorage opens the workout database in the data directory.
func (c *Config) OpenStorage(opts ...storage.Option) (storage.Repository, error) {
	db, err := storage.Open(c.DBPath(), opts...)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// OpenPrefs opens the preferences store in the data directory.
func (c *Config) OpenPrefs() (*prefs.Store, error) {
	dir := filepath.Join(c.GetDataDir(), "prefs")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create prefs directory: %w", err)
	}
	return prefs.Open(dir)
}

// LogDir is the directory that holds the logs/ folder.
func LogDir() string {
	return filepath.Dir(GetConfigPath())
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "gymtrack", "config.json")
}

// Load reads config from disk. A missing file yields the defaults.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
