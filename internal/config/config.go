// Package config holds the runtime settings shared by the CLI and the MCP
// server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/garment-palette-mcp/internal/extract"
	"github.com/ironsheep/garment-palette-mcp/internal/imaging"
	"github.com/ironsheep/garment-palette-mcp/internal/logging"
)

// Environment variables read by FromEnv.
const (
	EnvLogLevel     = "GARMENT_PALETTE_LOG_LEVEL"
	EnvAlgorithm    = "GARMENT_PALETTE_ALGORITHM"
	EnvWorkingWidth = "GARMENT_PALETTE_WORKING_WIDTH"
	EnvCacheEntries = "GARMENT_PALETTE_CACHE_ENTRIES"
)

const (
	minWorkingWidth = 16
	maxWorkingWidth = 2000
)

// Config holds runtime settings.
type Config struct {
	LogLevel     string
	Algorithm    extract.Algorithm
	WorkingWidth int
	CacheEntries int
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:     logging.DefaultLevel,
		Algorithm:    extract.AlgorithmEnhanced,
		WorkingWidth: imaging.DefaultWorkingWidth,
		CacheEntries: imaging.DefaultCacheEntries,
	}
}

// FromEnv returns Default overridden by any GARMENT_PALETTE_* variables that
// are set. Malformed numbers are reported rather than ignored.
func FromEnv() (Config, error) {
	cfg := Default()

	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvAlgorithm); ok && v != "" {
		cfg.Algorithm = extract.Algorithm(v)
	}
	if v, ok := os.LookupEnv(EnvWorkingWidth); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvWorkingWidth, err)
		}
		cfg.WorkingWidth = n
	}
	if v, ok := os.LookupEnv(EnvCacheEntries); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvCacheEntries, err)
		}
		cfg.CacheEntries = n
	}
	return cfg, nil
}

// Validate checks the configuration and normalises the algorithm name.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	alg, err := extract.ParseAlgorithm(string(c.Algorithm))
	if err != nil {
		return err
	}
	c.Algorithm = alg
	if c.WorkingWidth < minWorkingWidth || c.WorkingWidth > maxWorkingWidth {
		return fmt.Errorf("working width must be between %d and %d, got %d",
			minWorkingWidth, maxWorkingWidth, c.WorkingWidth)
	}
	if c.CacheEntries < 1 {
		return fmt.Errorf("cache entries must be at least 1, got %d", c.CacheEntries)
	}
	return nil
}
