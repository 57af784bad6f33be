// ABOUTME: fitday configuration management with backend selection.
// ABOUTME: Handles the config file, environment overrides, and the storage backend factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/fitday/internal/charm"
	"github.com/harperreed/fitday/internal/storage"
	"github.com/harperreed/fitday/internal/storage/redis"
)

// Backend names.
const (
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
	BackendRedis  = "redis"
)

// DefaultListen is the HTTP API address when none is configured.
const DefaultListen = "127.0.0.1:8080"

// RedisConfig holds the Redis backend connection settings.
type RedisConfig struct {
	Addr     string `json:"addr,omitempty"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db,omitempty"`
}

// Config stores fitday configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "charm", or "redis".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local data. SQLite puts fitday.db here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/fitday.
	DataDir string `json:"data_dir,omitempty"`

	// Timezone is the IANA zone that decides which calendar day it is.
	// Empty means the machine's local zone.
	Timezone string `json:"timezone,omitempty"`

	Redis RedisConfig `json:"redis,omitempty"`

	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"`

	// Listen is the address for `fitday serve`.
	Listen string `json:"listen,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetListen returns the API listen address.
func (c *Config) GetListen() string {
	if c.Listen == "" {
		return DefaultListen
	}
	return c.Listen
}

// Location returns the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate checks that the configuration can be used.
func (c *Config) Validate() error {
	switch c.GetBackend() {
	case BackendSQLite, BackendCharm:
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("backend %q requires redis.addr", BackendRedis)
		}
	default:
		return fmt.Errorf("unknown backend: %q", c.Backend)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	switch c.LogFormat {
	case "", "json", "text":
	default:
		return fmt.Errorf("unknown log_format: %q (use json or text)", c.LogFormat)
	}
	return nil
}

// ApplyEnv overrides fields from FITDAY_* environment variables.
func (c *Config) ApplyEnv() error {
	overrides := map[string]*string{
		"FITDAY_BACKEND":        &c.Backend,
		"FITDAY_DATA_DIR":       &c.DataDir,
		"FITDAY_TIMEZONE":       &c.Timezone,
		"FITDAY_REDIS_ADDR":     &c.Redis.Addr,
		"FITDAY_REDIS_PASSWORD": &c.Redis.Password,
		"FITDAY_LOG_LEVEL":      &c.LogLevel,
		"FITDAY_LOG_FORMAT":     &c.LogFormat,
		"FITDAY_LISTEN":         &c.Listen,
	}
	for name, field := range overrides {
		if v, ok := os.LookupEnv(name); ok {
			*field = v
		}
	}

	if v, ok := os.LookupEnv("FITDAY_REDIS_DB"); ok {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse FITDAY_REDIS_DB: %w", err)
		}
		c.Redis.DB = db
	}
	return nil
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

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return c.OpenBackend(c.GetBackend())
}

// OpenBackend opens the named backend using this config's settings.
func (c *Config) OpenBackend(backend string) (storage.Repository, error) {
	switch backend {
	case BackendSQLite:
		return storage.OpenInDir(c.GetDataDir())
	case BackendCharm:
		return charm.InitClient()
	case BackendRedis:
		return redis.Open(redis.Options{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitday", "config.json")
}

// LoadFile reads config from disk without environment overrides.
func LoadFile() (*Config, error) {
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

// Load reads config from disk, applies environment overrides, and validates.
func Load() (*Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
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
