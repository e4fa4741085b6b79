// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/apply-assistant/internal/classify"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "APPLY"

// Config represents the application configuration.
// Values come from defaults, then an optional config file, then APPLY_* environment variables.
type Config struct {
	// Storage
	ProfilePath string `mapstructure:"profile_path" json:"profile_path,omitempty"` // JSON profile file used when no database is configured
	DatabaseURL string `mapstructure:"database_url" json:"database_url,omitempty"` // PostgreSQL connection URL
	UserID      string `mapstructure:"user_id" json:"user_id,omitempty"`           // Profile row UUID (required with database_url)

	// Server
	Port           int     `mapstructure:"port" json:"port,omitempty"`
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps" json:"rate_limit_rps,omitempty"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst" json:"rate_limit_burst,omitempty"`

	// Behavior
	LogLevel     string        `mapstructure:"log_level" json:"log_level,omitempty"`
	HiddenPolicy string        `mapstructure:"hidden_policy" json:"hidden_policy,omitempty"` // compatible or excluded
	UseBrowser   bool          `mapstructure:"use_browser" json:"use_browser,omitempty"`     // Use headless browser for SPA sites
	Readability  bool          `mapstructure:"readability" json:"readability,omitempty"`     // Readability fallback when no block qualifies
	CacheTTL     time.Duration `mapstructure:"cache_ttl" json:"cache_ttl,omitempty"`         // Page and profile cache lifetime
	Verbose      bool          `mapstructure:"verbose" json:"verbose,omitempty"`             // Print detailed debug information
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		ProfilePath:    DefaultProfilePath(),
		Port:           8080,
		RateLimitRPS:   10,
		RateLimitBurst: 20,
		LogLevel:       "info",
		HiddenPolicy:   string(classify.HiddenCompatible),
		CacheTTL:       15 * time.Minute,
	}
}

// DefaultProfilePath returns ~/.apply-assistant/profile.json, or profile.json
// in the working directory when the home directory is unknown.
func DefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "profile.json"
	}
	return filepath.Join(home, ".apply-assistant", "profile.json")
}

var configKeys = []string{
	"profile_path",
	"database_url",
	"user_id",
	"port",
	"rate_limit_rps",
	"rate_limit_burst",
	"log_level",
	"hidden_policy",
	"use_browser",
	"readability",
	"cache_ttl",
	"verbose",
}

// LoadConfig loads configuration from an optional JSON or YAML file and the environment.
// An empty path reads the environment only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	setDefaults(v)

	if path != "" {
		// Resolve path relative to current directory if not absolute
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("profile_path", d.ProfilePath)
	v.SetDefault("port", d.Port)
	v.SetDefault("rate_limit_rps", d.RateLimitRPS)
	v.SetDefault("rate_limit_burst", d.RateLimitBurst)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("hidden_policy", d.HiddenPolicy)
	v.SetDefault("use_browser", d.UseBrowser)
	v.SetDefault("readability", d.Readability)
	v.SetDefault("cache_ttl", d.CacheTTL)
	v.SetDefault("verbose", d.Verbose)
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("config error: 'port' must be between 0 and 65535"))
	}
	if c.RateLimitRPS < 0 {
		errs = append(errs, fmt.Errorf("config error: 'rate_limit_rps' must be non-negative"))
	}
	if c.RateLimitBurst < 0 {
		errs = append(errs, fmt.Errorf("config error: 'rate_limit_burst' must be non-negative"))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("config error: 'cache_ttl' must be non-negative"))
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel))
	}

	if c.HiddenPolicy != "" {
		if _, err := classify.ParseHiddenPolicy(c.HiddenPolicy); err != nil {
			errs = append(errs, fmt.Errorf("config error: %w", err))
		}
	}

	if c.UserID != "" {
		if _, err := uuid.Parse(c.UserID); err != nil {
			errs = append(errs, fmt.Errorf("config error: 'user_id' must be a UUID: %w", err))
		}
	} else if c.DatabaseURL != "" {
		errs = append(errs, fmt.Errorf("config error: 'user_id' is required with 'database_url'"))
	}

	return errors.Join(errs...)
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.ProfilePath == "" {
		result.ProfilePath = defaults.ProfilePath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.HiddenPolicy == "" {
		result.HiddenPolicy = defaults.HiddenPolicy
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RateLimitRPS == 0 {
		result.RateLimitRPS = defaults.RateLimitRPS
	}
	if result.RateLimitBurst == 0 {
		result.RateLimitBurst = defaults.RateLimitBurst
	}
	if result.CacheTTL == 0 {
		result.CacheTTL = defaults.CacheTTL
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
