// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// backoffice TUI.
//
// Supports both TOML and JSON configuration formats, with built-in
// defaults, environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.backoffice/config.toml
//   - ~/.backoffice/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete backoffice configuration.
type Config struct {
	// StateDir is where the token file and local history database live
	// (empty = ~/.backoffice)
	StateDir string `toml:"state_dir" json:"state_dir"`

	// API configuration
	API APIConfig `toml:"api" json:"api"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// History configuration
	History HistoryConfig `toml:"history" json:"history"`
}

// APIConfig contains the remote admin API settings.
type APIConfig struct {
	// BaseURL is the admin API base URL
	BaseURL string `toml:"base_url" json:"base_url"`
	// TimeoutSecs is the per-request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// PageSize is the number of roster rows per page
	PageSize int `toml:"page_size" json:"page_size"`
	// RedirectDelaySecs is how long an expired-session notice stays on
	// screen before the UI returns to the login form
	RedirectDelaySecs int `toml:"redirect_delay_secs" json:"redirect_delay_secs"`
}

// HistoryConfig controls the local action history.
type HistoryConfig struct {
	// Enabled turns local action recording on or off
	Enabled bool `toml:"enabled" json:"enabled"`
	// MaxEntries caps the number of stored entries (0 = unlimited)
	MaxEntries int `toml:"max_entries" json:"max_entries"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultBaseURL is the hosted admin API endpoint.
const DefaultBaseURL = "https://classconnect-backoffice-service-api.onrender.com"

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     DefaultBaseURL,
			TimeoutSecs: 30,
		},
		UI: UIConfig{
			PageSize:          10,
			RedirectDelaySecs: 3,
		},
		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: 1000,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the configuration directory (~/.backoffice).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".backoffice"), nil
}

// ConfigPathTOML returns the TOML config file path.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the JSON config file path.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ResolveStateDir returns the state directory, falling back to the
// config directory when none is configured.
func (c *Config) ResolveStateDir() (string, error) {
	if c.StateDir != "" {
		return c.StateDir, nil
	}
	return ConfigDir()
}

// TokenPath returns the path of the persisted session token file.
func (c *Config) TokenPath() (string, error) {
	dir, err := c.ResolveStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "token"), nil
}

// HistoryPath returns the path of the local action history database.
func (c *Config) HistoryPath() (string, error) {
	dir, err := c.ResolveStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSecs) * time.Second
}

// RedirectDelay returns the expired-session redirect delay.
func (c *Config) RedirectDelay() time.Duration {
	return time.Duration(c.UI.RedirectDelaySecs) * time.Second
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from disk, preferring TOML over JSON,
// and falls back to defaults when no file exists. Environment
// overrides apply on top of whatever was loaded.
func Load() (*Config, error) {
	cfg := Default()

	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				return nil, fmt.Errorf("failed to load TOML config: %w", err)
			}
			return finishLoad(cfg)
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				return nil, fmt.Errorf("failed to load JSON config: %w", err)
			}
			return finishLoad(cfg)
		}
	}

	return finishLoad(cfg)
}

func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// Save writes the configuration to the TOML config path.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// DEFAULTS AND VALIDATION
// =============================================================================

// SetDefaults fills in zero values with their defaults.
func (c *Config) SetDefaults() {
	def := Default()
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.TimeoutSecs == 0 {
		c.API.TimeoutSecs = def.API.TimeoutSecs
	}
	if c.UI.PageSize == 0 {
		c.UI.PageSize = def.UI.PageSize
	}
	if c.UI.RedirectDelaySecs == 0 {
		c.UI.RedirectDelaySecs = def.UI.RedirectDelaySecs
	}
	if c.History.MaxEntries == 0 {
		c.History.MaxEntries = def.History.MaxEntries
	}
}

// Validate checks the configuration for values the application cannot
// run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url scheme must be http or https, got %q", u.Scheme)
	}
	if c.API.TimeoutSecs < 1 || c.API.TimeoutSecs > 300 {
		return fmt.Errorf("api.timeout_secs must be in [1, 300], got %d", c.API.TimeoutSecs)
	}
	if c.UI.PageSize < 1 || c.UI.PageSize > 100 {
		return fmt.Errorf("ui.page_size must be in [1, 100], got %d", c.UI.PageSize)
	}
	if c.UI.RedirectDelaySecs < 1 || c.UI.RedirectDelaySecs > 30 {
		return fmt.Errorf("ui.redirect_delay_secs must be in [1, 30], got %d", c.UI.RedirectDelaySecs)
	}
	if c.History.MaxEntries < 0 {
		return fmt.Errorf("history.max_entries must not be negative, got %d", c.History.MaxEntries)
	}
	return nil
}

// ApplyEnvOverrides applies BACKOFFICE_* environment variables on top
// of the loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("BACKOFFICE_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("BACKOFFICE_API_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.API.TimeoutSecs = n
		}
	}
	if v := os.Getenv("BACKOFFICE_STATE_DIR"); v != "" {
		c.StateDir = v
	}
	if v := os.Getenv("BACKOFFICE_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.UI.PageSize = n
		}
	}
	if v := os.Getenv("BACKOFFICE_HISTORY"); v != "" {
		c.History.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalConfig     *Config
	globalConfigMu   sync.RWMutex
	globalConfigOnce sync.Once
)

// Global returns the process-wide configuration, loading it on first
// use. Load failures fall back to defaults with a warning on stderr.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state between tests.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
