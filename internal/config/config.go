package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Calendar backends.
const (
	BackendSimulated = "simulated"
	BackendGoogle    = "google"
)

// GoogleConfig holds the settings for the Google Calendar backend.
type GoogleConfig struct {
	// Account selects the token file written by the auth command
	// (token-<account>.json).
	Account string `yaml:"account" json:"account"`

	// CalendarID is the target calendar. "primary" targets the account's
	// default calendar.
	CalendarID string `yaml:"calendar_id" json:"calendar_id"`
}

// Config is the top-level application configuration.
type Config struct {
	// Model is the chat model used for extraction and edits. Overridden by
	// the GROQ_MODEL environment variable when set.
	Model string `yaml:"model" json:"model"`

	// BaseURL overrides the chat API endpoint. Empty uses the provider
	// default.
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Timezone is the IANA timezone applied to drafts that do not specify
	// one (e.g. "UTC", "Asia/Kolkata").
	Timezone string `yaml:"timezone" json:"timezone"`

	// Backend selects the calendar backend: "simulated" or "google".
	Backend string `yaml:"backend" json:"backend"`

	// Google configures the Google Calendar backend. Ignored when Backend
	// is "simulated".
	Google GoogleConfig `yaml:"google" json:"google"`

	// SearchResults is the default number of web search results.
	SearchResults int `yaml:"search_results" json:"search_results"`

	// LogLevel sets log verbosity: debug, info, warn or error.
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Model:    "openai/gpt-oss-120b",
		Timezone: "UTC",
		Backend:  BackendSimulated,
		Google: GoogleConfig{
			CalendarID: "primary",
		},
		SearchResults: 3,
		LogLevel:      "info",
	}
}

// Normalize fills in missing/zero values with defaults so partially-filled
// configs still behave correctly.
func (c *Config) Normalize() {
	if c.Model == "" {
		c.Model = "openai/gpt-oss-120b"
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	switch c.Backend {
	case BackendSimulated, BackendGoogle:
		// ok
	default:
		c.Backend = BackendSimulated
	}
	if c.Google.CalendarID == "" {
		c.Google.CalendarID = "primary"
	}
	if c.SearchResults <= 0 {
		c.SearchResults = 3
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		// ok
	default:
		c.LogLevel = "info"
	}
}

// Validate reports configuration combinations that cannot work.
func (c *Config) Validate() error {
	if c.Backend == BackendGoogle && c.Google.Account == "" {
		return fmt.Errorf("backend %q requires google.account to be set", BackendGoogle)
	}
	return nil
}

// Load loads configuration from the given YAML path. When the file does not
// exist, a default config is written there with 0600 permissions and
// returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration to the given path atomically (temp file +
// rename) with 0600 permissions, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".schedbot-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save delegates to the package-level Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
