// Package config loads CallQA configuration from TOML files and environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/callqa/pkg/cache"
	"github.com/JaimeStill/callqa/pkg/database"
	"github.com/JaimeStill/callqa/pkg/logging"
	"github.com/JaimeStill/callqa/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvCallQAEnv             = "CALLQA_ENV"
	EnvCallQAShutdownTimeout = "CALLQA_SHUTDOWN_TIMEOUT"
	EnvCallQAVersion         = "CALLQA_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "CALLQA_DB_HOST",
	Port:            "CALLQA_DB_PORT",
	Name:            "CALLQA_DB_NAME",
	User:            "CALLQA_DB_USER",
	Password:        "CALLQA_DB_PASSWORD",
	SSLMode:         "CALLQA_DB_SSL_MODE",
	MaxOpenConns:    "CALLQA_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "CALLQA_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "CALLQA_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "CALLQA_DB_CONN_TIMEOUT",

	StatementTimeout: "CALLQA_DB_STATEMENT_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "CALLQA_STORAGE_CONTAINER_NAME",
	ConnectionString: "CALLQA_STORAGE_CONNECTION_STRING",
}

var cacheEnv = &cache.Env{
	Enabled:     "CALLQA_CACHE_ENABLED",
	URL:         "CALLQA_CACHE_URL",
	DB:          "CALLQA_CACHE_DB",
	Prefix:      "CALLQA_CACHE_PREFIX",
	TTL:         "CALLQA_CACHE_TTL",
	ConnTimeout: "CALLQA_CACHE_CONN_TIMEOUT",
}

var loggingEnv = &logging.Env{
	Level:      "CALLQA_LOG_LEVEL",
	Format:     "CALLQA_LOG_FORMAT",
	File:       "CALLQA_LOG_FILE",
	MaxSizeMB:  "CALLQA_LOG_MAX_SIZE_MB",
	MaxBackups: "CALLQA_LOG_MAX_BACKUPS",
	MaxAgeDays: "CALLQA_LOG_MAX_AGE_DAYS",
}

// DatabaseEnv returns the environment variable names that override database settings.
func DatabaseEnv() *database.Env {
	return databaseEnv
}

// Config is the root configuration for the CallQA service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	Cache           cache.Config    `toml:"cache"`
	Logging         logging.Config  `toml:"logging"`
	Scoring         ScoringConfig   `toml:"scoring"`
	API             APIConfig       `toml:"api"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the CALLQA_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvCallQAEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Cache.Merge(&overlay.Cache)
	c.Logging.Merge(&overlay.Logging)
	c.Scoring.Merge(&overlay.Scoring)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Cache.Finalize(cacheEnv); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Scoring.Finalize(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvCallQAShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvCallQAVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvCallQAEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
