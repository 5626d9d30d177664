// ABOUTME: Crumb configuration management with backend selection.
// ABOUTME: Handles settings, .env and CRUMB_* overrides, and the storage backend factory.

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/crumb/internal/charm"
	"github.com/harperreed/crumb/internal/models"
	"github.com/harperreed/crumb/internal/pgstore"
	"github.com/harperreed/crumb/internal/redisstore"
	"github.com/harperreed/crumb/internal/storage"
	"github.com/joho/godotenv"
)

// Backend names.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendCharm    = "charm"
)

// Default XP per logged meal.
const (
	DefaultXPCalorie     int64 = 10
	DefaultXPBeforeAfter int64 = 15
)

// DefaultRedisAddr is used when the redis backend has no address configured.
const DefaultRedisAddr = "localhost:6379"

// Config stores crumb configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "postgres", "redis", or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage. SQLite puts crumb.db here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/crumb.
	DataDir string `json:"data_dir,omitempty"`

	PostgresURL   string `json:"postgres_url,omitempty"`
	RedisAddr     string `json:"redis_addr,omitempty"`
	RedisPassword string `json:"redis_password,omitempty"`
	RedisDB       int    `json:"redis_db,omitempty"`

	// UserID is the user the CLI and MCP server act as.
	UserID string `json:"user_id,omitempty"`

	// Timezone is an IANA zone name deciding calendar days for streaks. Defaults to UTC.
	Timezone string `json:"timezone,omitempty"`

	XPCalorie     int64 `json:"xp_calorie,omitempty"`
	XPBeforeAfter int64 `json:"xp_before_after,omitempty"`

	LogLevel string `json:"log_level,omitempty"`
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

// Location returns the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// MealXP returns the XP a meal of type t earns.
func (c *Config) MealXP(t models.MealType) int64 {
	switch t {
	case models.MealBeforeAfter:
		if c.XPBeforeAfter > 0 {
			return c.XPBeforeAfter
		}
		return DefaultXPBeforeAfter
	default:
		if c.XPCalorie > 0 {
			return c.XPCalorie
		}
		return DefaultXPCalorie
	}
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

// OpenStorage creates a Store implementation based on the configured backend.
func (c *Config) OpenStorage(ctx context.Context) (storage.Store, error) {
	switch backend := c.GetBackend(); backend {
	case BackendSQLite:
		return storage.Open(filepath.Join(c.GetDataDir(), "crumb.db"))
	case BackendPostgres:
		if c.PostgresURL == "" {
			return nil, errors.New("postgres backend needs postgres_url")
		}
		return pgstore.Open(ctx, c.PostgresURL)
	case BackendRedis:
		addr := c.RedisAddr
		if addr == "" {
			addr = DefaultRedisAddr
		}
		return redisstore.Open(ctx, redisstore.Options{
			Addr:     addr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
	case BackendCharm:
		return charm.InitClient()
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
	return filepath.Join(configDir, "crumb", "config.json")
}

// Load reads config from disk, then applies .env and CRUMB_* overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads only the config file. A missing file yields an empty config.
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
		return nil, err
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

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"CRUMB_BACKEND":        &c.Backend,
		"CRUMB_DATA_DIR":       &c.DataDir,
		"CRUMB_POSTGRES_URL":   &c.PostgresURL,
		"CRUMB_REDIS_ADDR":     &c.RedisAddr,
		"CRUMB_REDIS_PASSWORD": &c.RedisPassword,
		"CRUMB_USER_ID":        &c.UserID,
		"CRUMB_TIMEZONE":       &c.Timezone,
		"CRUMB_LOG_LEVEL":      &c.LogLevel,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("CRUMB_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse CRUMB_REDIS_DB: %w", err)
		}
		c.RedisDB = n
	}

	ints := map[string]*int64{
		"CRUMB_XP_CALORIE":      &c.XPCalorie,
		"CRUMB_XP_BEFORE_AFTER": &c.XPBeforeAfter,
	}
	for key, dst := range ints {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parse %s: %w", key, err)
		}
		*dst = n
	}
	return nil
}
