// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/edgeui/internal/model"
)

// Default configuration values.
const (
	DefaultBackend      = "file"
	DefaultOutputFormat = "plain"
	DefaultTokenTTL     = "0s"
)

// Config represents the edgeui configuration.
type Config struct {
	Locale  LocaleConfig  `toml:"locale"`
	Session SessionConfig `toml:"session"`
	Errors  ErrorsConfig  `toml:"errors"`
	Output  OutputConfig  `toml:"output"`
}

// LocaleConfig holds language settings.
type LocaleConfig struct {
	Default    string `toml:"default"`     // de, en, cz
	CatalogDir string `toml:"catalog_dir"` // Overrides bundled translations if set
}

// SessionConfig holds credential persistence settings.
type SessionConfig struct {
	Backend  string `toml:"backend"`   // memory, file, redis
	Path     string `toml:"path"`      // file backend (default: data dir)
	RedisURL string `toml:"redis_url"` // redis backend
	TokenTTL string `toml:"token_ttl"` // Go duration, "0s" = no expiry
}

// ErrorsConfig controls the uncaught-error sink.
type ErrorsConfig struct {
	NotifyUncaught bool `toml:"notify_uncaught"` // Turn command failures into error notifications
}

// OutputConfig holds notification rendering settings.
type OutputConfig struct {
	Format string `toml:"format"` // plain, json
	Color  bool   `toml:"color"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Locale: LocaleConfig{
			Default: string(model.DefaultLocale),
		},
		Session: SessionConfig{
			Backend:  DefaultBackend,
			TokenTTL: DefaultTokenTTL,
		},
		Errors: ErrorsConfig{
			NotifyUncaught: true,
		},
		Output: OutputConfig{
			Format: DefaultOutputFormat,
			Color:  true,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "edgeui", "config.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "edgeui")
}

// SessionPath returns the path to the session file.
func SessionPath() string {
	return filepath.Join(DataPath(), "session.json")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if _, err := model.ParseLocale(c.Locale.Default); err != nil {
		return fmt.Errorf("locale.default: %w", err)
	}
	if _, err := c.TokenTTL(); err != nil {
		return err
	}
	if err := ValidateOutputFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	return nil
}

// ValidateOutputFormat rejects anything other than plain or json.
func ValidateOutputFormat(format string) error {
	switch format {
	case "plain", "json":
		return nil
	default:
		return fmt.Errorf("unknown format %q (supported: plain, json)", format)
	}
}

// TokenTTL parses Session.TokenTTL. An empty value means no expiry.
func (c *Config) TokenTTL() (time.Duration, error) {
	if c.Session.TokenTTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Session.TokenTTL)
	if err != nil {
		return 0, fmt.Errorf("session.token_ttl: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("session.token_ttl: must not be negative")
	}
	return d, nil
}

// SessionFile returns the configured session file path or the default.
func (c *Config) SessionFile() string {
	if c.Session.Path != "" {
		return c.Session.Path
	}
	return SessionPath()
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
