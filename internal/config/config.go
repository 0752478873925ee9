// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/cv-builder/internal/types"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// API client
	APIURL         string `json:"api_url,omitempty" yaml:"api_url,omitempty"`                 // Base URL of the enhancement/profile API
	APIToken       string `json:"api_token,omitempty" yaml:"api_token,omitempty"`             // Bearer token for the API
	EnhanceTimeout string `json:"enhance_timeout,omitempty" yaml:"enhance_timeout,omitempty"` // Go duration; empty or "0" means no timeout

	// Local state
	CachePath string `json:"cache_path,omitempty" yaml:"cache_path,omitempty"` // SQLite draft cache file
	LogFile   string `json:"log_file,omitempty" yaml:"log_file,omitempty"`     // Log destination for interactive runs

	// Export
	ExportDir  string `json:"export_dir,omitempty" yaml:"export_dir,omitempty"`   // Directory exports are written to
	Template   string `json:"template,omitempty" yaml:"template,omitempty"`       // Optional LaTeX template override
	ChromePath string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"` // Chrome/Chromium binary for PDF export

	// Behavior
	DefaultMode string `json:"default_mode,omitempty" yaml:"default_mode,omitempty"` // manual or ai-interview
	Verbose     bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`           // Debug logging

	// Server
	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`                 // HTTP port for `serve`
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	GeminiKey   string `json:"gemini_api_key,omitempty" yaml:"gemini_api_key,omitempty"`
}

// Environment variables that override file values.
const (
	EnvAPIURL      = "CVBUILDER_API_URL"
	EnvAPIToken    = "CVBUILDER_API_TOKEN"
	EnvCachePath   = "CVBUILDER_CACHE_PATH"
	EnvDatabaseURL = "DATABASE_URL"
	EnvGeminiKey   = "GEMINI_API_KEY"
)

func baseDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "cvbuilder")
	}
	return ".cvbuilder"
}

// DefaultPath is the config file read when --config is not given.
func DefaultPath() string {
	return filepath.Join(baseDir(), "config.yaml")
}

// Defaults returns the built-in defaults, rooted at the user's config directory.
func Defaults() Config {
	base := baseDir()
	return Config{
		APIURL:      "http://localhost:8080",
		CachePath:   filepath.Join(base, "cache.db"),
		LogFile:     filepath.Join(base, "cvbuilder.log"),
		ExportDir:   ".",
		DefaultMode: string(types.ModeManual),
		Port:        8080,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// SaveConfig writes cfg to path as JSON or YAML, chosen by extension. The file
// may hold a token, so it is created owner-readable only.
func SaveConfig(path string, cfg *Config) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from environment variables when they are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv(EnvAPIToken); v != "" {
		c.APIToken = v
	}
	if v := os.Getenv(EnvCachePath); v != "" {
		c.CachePath = v
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv(EnvGeminiKey); v != "" {
		c.GeminiKey = v
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.APIURL != "" {
		u, err := url.Parse(c.APIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: 'api_url' must be an absolute URL, got %q", c.APIURL)
		}
	}

	if c.DefaultMode != "" {
		if _, err := types.ParseBuilderMode(c.DefaultMode); err != nil {
			return fmt.Errorf("config error: 'default_mode': %w", err)
		}
	}

	if _, err := c.EnhanceTimeoutDuration(); err != nil {
		return err
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}

	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}

	return nil
}

// EnhanceTimeoutDuration parses enhance_timeout. Zero means the transport default (no timeout).
func (c *Config) EnhanceTimeoutDuration() (time.Duration, error) {
	if c.EnhanceTimeout == "" || c.EnhanceTimeout == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.EnhanceTimeout)
	if err != nil {
		return 0, fmt.Errorf("config error: invalid 'enhance_timeout': %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config error: 'enhance_timeout' must be non-negative")
	}
	return d, nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIURL == "" {
		result.APIURL = defaults.APIURL
	}
	if result.APIToken == "" {
		result.APIToken = defaults.APIToken
	}
	if result.EnhanceTimeout == "" {
		result.EnhanceTimeout = defaults.EnhanceTimeout
	}
	if result.CachePath == "" {
		result.CachePath = defaults.CachePath
	}
	if result.LogFile == "" {
		result.LogFile = defaults.LogFile
	}
	if result.ExportDir == "" {
		result.ExportDir = defaults.ExportDir
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.DefaultMode == "" {
		result.DefaultMode = defaults.DefaultMode
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.GeminiKey == "" {
		result.GeminiKey = defaults.GeminiKey
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
