package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/multierr"
)

const appName = "fortyfive"

// TokenEnv is the environment variable holding the Discogs access token.
const TokenEnv = "DISCOGS_TOKEN"

// Default values applied before the config files are read.
const (
	DefaultBaseURL     = "https://api.discogs.com"
	DefaultUserAgent   = "fortyfive/0.1 +https://github.com/llehouerou/fortyfive"
	DefaultTimeout     = 30 * time.Second
	DefaultMinInterval = time.Second
	DefaultPerPage     = 50
	DefaultCap         = 20
	DefaultLogLevel    = "info"
)

type Config struct {
	Discogs DiscogsConfig `koanf:"discogs"`
	Search  SearchConfig  `koanf:"search"`
	Log     LogConfig     `koanf:"log"`
	Theme   ThemeConfig   `koanf:"theme"`
}

// DiscogsConfig holds the catalog client settings.
type DiscogsConfig struct {
	Token       string        `koanf:"token"`        // personal access token
	UserAgent   string        `koanf:"user_agent"`   // sent with every request, catalog and images
	BaseURL     string        `koanf:"base_url"`     // e.g., "https://api.discogs.com"
	Timeout     time.Duration `koanf:"timeout"`      // HTTP client timeout
	MinInterval time.Duration `koanf:"min_interval"` // spacing between catalog requests
	PerPage     int           `koanf:"per_page"`     // raw records requested per page
}

// SearchConfig holds result filtering settings.
type SearchConfig struct {
	Cap        int   `koanf:"cap"`        // eligible releases kept per page
	Thumbnails *bool `koanf:"thumbnails"` // fetch row thumbnails (default: true)
}

// LogConfig holds logging settings.
type LogConfig struct {
	File  string `koanf:"file"`  // empty means XDG state dir
	Level string `koanf:"level"` // "debug", "info", "warn", "error"
}

// ThemeConfig overrides theme colors. Empty fields keep the defaults.
type ThemeConfig struct {
	Primary string `koanf:"primary"`
	Muted   string `koanf:"muted"`
	Error   string `koanf:"error"`
	Border  string `koanf:"border"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	return &Config{
		Discogs: DiscogsConfig{
			UserAgent:   DefaultUserAgent,
			BaseURL:     DefaultBaseURL,
			Timeout:     DefaultTimeout,
			MinInterval: DefaultMinInterval,
			PerPage:     DefaultPerPage,
		},
		Search: SearchConfig{Cap: DefaultCap},
		Log:    LogConfig{Level: DefaultLogLevel},
	}
}

// Load reads the default config locations. See LoadFrom.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom reads configuration from the default locations, then from extra
// when it is not empty. A .env file in the working directory is loaded into
// the environment first, and DISCOGS_TOKEN overrides the file token.
func LoadFrom(extra string) (*Config, error) {
	// Missing .env is the common case
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()
	if extra != "" {
		if _, err := os.Stat(extra); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		configPaths = append(configPaths, expandPath(extra))
	}

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if token := os.Getenv(TokenEnv); token != "" {
		cfg.Discogs.Token = token
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Discogs.BaseURL = strings.TrimSuffix(c.Discogs.BaseURL, "/")
	c.Discogs.Token = strings.TrimSpace(c.Discogs.Token)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.File != "" {
		c.Log.File = expandPath(c.Log.File)
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	if u, perr := url.Parse(c.Discogs.BaseURL); perr != nil || u.Scheme == "" || u.Host == "" {
		err = multierr.Append(err, fmt.Errorf("discogs.base_url: invalid URL %q", c.Discogs.BaseURL))
	}
	if c.Discogs.UserAgent == "" {
		err = multierr.Append(err, errors.New("discogs.user_agent: must not be empty"))
	}
	if c.Discogs.Timeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("discogs.timeout: must be positive, got %s", c.Discogs.Timeout))
	}
	if c.Discogs.MinInterval < 0 {
		err = multierr.Append(err, fmt.Errorf("discogs.min_interval: must not be negative, got %s", c.Discogs.MinInterval))
	}
	if c.Discogs.PerPage < 1 || c.Discogs.PerPage > 100 {
		err = multierr.Append(err, fmt.Errorf("discogs.per_page: must be between 1 and 100, got %d", c.Discogs.PerPage))
	}
	if c.Search.Cap < 1 {
		err = multierr.Append(err, fmt.Errorf("search.cap: must be at least 1, got %d", c.Search.Cap))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	return err
}

// HasToken returns true if a Discogs access token is configured.
func (c *Config) HasToken() bool {
	return c.Discogs.Token != ""
}

// ThumbnailsEnabled returns whether result rows fetch their thumbnails.
func (c *Config) ThumbnailsEnabled() bool {
	if c.Search.Thumbnails == nil {
		return true
	}
	return *c.Search.Thumbnails
}

// LogPath returns the log file path, defaulting to the XDG state dir.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/fortyfive/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
