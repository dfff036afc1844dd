// Package pagination provides types and utilities for paginated data queries.
package pagination

import (
	"errors"
	"os"
	"strconv"
)

// pageSizeCeiling bounds max_page_size so a misconfigured deployment cannot
// turn a list request into a full table scan.
const pageSizeCeiling = 1000

// Config holds page size limits applied to every list request.
type Config struct {
	DefaultPageSize int `toml:"default_page_size"`
	MaxPageSize     int `toml:"max_page_size"`
}

// ConfigEnv names the environment variables that override Config.
type ConfigEnv struct {
	DefaultPageSize string
	MaxPageSize     string
}

// PageSize resolves a requested page size: non-positive requests take the
// default and oversized requests are capped at the maximum.
func (c Config) PageSize(requested int) int {
	switch {
	case requested < 1:
		return c.DefaultPageSize
	case requested > c.MaxPageSize:
		return c.MaxPageSize
	default:
		return requested
	}
}

func (c *Config) Finalize(env *ConfigEnv) error {
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = 10
	}
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = 100
	}
	if env != nil {
		envInt(&c.DefaultPageSize, env.DefaultPageSize)
		envInt(&c.MaxPageSize, env.MaxPageSize)
	}
	return c.validate()
}

// Merge applies positive values from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.DefaultPageSize > 0 {
		c.DefaultPageSize = overlay.DefaultPageSize
	}
	if overlay.MaxPageSize > 0 {
		c.MaxPageSize = overlay.MaxPageSize
	}
}

func envInt(dst *int, name string) {
	if name == "" {
		return
	}
	if n, err := strconv.Atoi(os.Getenv(name)); err == nil {
		*dst = n
	}
}

func (c *Config) validate() error {
	switch {
	case c.DefaultPageSize < 1:
		return errors.New("default_page_size must be positive")
	case c.MaxPageSize < 1:
		return errors.New("max_page_size must be positive")
	case c.MaxPageSize > pageSizeCeiling:
		return errors.New("max_page_size cannot exceed 1000")
	case c.DefaultPageSize > c.MaxPageSize:
		return errors.New("default_page_size cannot exceed max_page_size")
	}
	return nil
}
