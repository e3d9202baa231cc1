package mustache

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultMaxDepth is the default bound on section plus partial
	// nesting.
	DefaultMaxDepth = 256
	// DefaultMaxTagLength is the default bound on tag name length.
	DefaultMaxTagLength = 1024
)

// Config contains the per-render configuration of the engine. A Config
// value is passed into the top-level render call; there is no
// process-wide mutable configuration.
type Config struct {
	// AllowEmptyTag permits tags with an empty name instead of failing
	// with an empty-tag error.
	AllowEmptyTag bool
	// MaxDepth is the maximum section plus partial nesting depth.
	MaxDepth int
	// MaxTagLength is the maximum length of a tag name.
	MaxTagLength int
	// CacheMaxSize is the maximum number of template files to cache
	// for render-by-path. 0 disables caching.
	CacheMaxSize int
	// CacheTTL is the time-to-live for cached template files. 0 means
	// no expiration.
	CacheTTL time.Duration
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		AllowEmptyTag: false,
		MaxDepth:      DefaultMaxDepth,
		MaxTagLength:  DefaultMaxTagLength,
		CacheMaxSize:  100,
		CacheTTL:      0,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	// MUSTACHE_ALLOW_EMPTY_TAG
	if val := os.Getenv("MUSTACHE_ALLOW_EMPTY_TAG"); val != "" {
		config.AllowEmptyTag = parseBool(val)
	}

	// MUSTACHE_MAX_DEPTH
	if val := os.Getenv("MUSTACHE_MAX_DEPTH"); val != "" {
		if depth, err := strconv.Atoi(val); err == nil {
			config.MaxDepth = depth
		}
	}

	// MUSTACHE_MAX_TAG_LENGTH
	if val := os.Getenv("MUSTACHE_MAX_TAG_LENGTH"); val != "" {
		if length, err := strconv.Atoi(val); err == nil {
			config.MaxTagLength = length
		}
	}

	// MUSTACHE_CACHE_MAX_SIZE
	if val := os.Getenv("MUSTACHE_CACHE_MAX_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			config.CacheMaxSize = size
		}
	}

	// MUSTACHE_CACHE_TTL
	if val := os.Getenv("MUSTACHE_CACHE_TTL"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			config.CacheTTL = duration
		}
	}

	return config
}

// NewConfigWithDefaults creates a new configuration with defaults applied
// to unset fields. Values that would fail Validate are replaced by their
// defaults, so a config built from untrusted input still renders.
func NewConfigWithDefaults(overrides *Config) *Config {
	defaults := DefaultConfig()

	if overrides == nil {
		return defaults
	}

	// Create a copy of the overrides
	config := *overrides

	// Apply defaults for zero or invalid values
	if config.MaxDepth <= 0 {
		config.MaxDepth = defaults.MaxDepth
	}

	if config.MaxTagLength <= 0 {
		config.MaxTagLength = defaults.MaxTagLength
	}

	if config.CacheMaxSize < 0 {
		config.CacheMaxSize = 0
	}

	if config.CacheTTL < 0 {
		config.CacheTTL = 0
	}

	return &config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.MaxDepth <= 0 {
		return errors.New("max depth must be positive")
	}

	if c.MaxTagLength <= 0 {
		return errors.New("max tag length must be positive")
	}

	if c.CacheMaxSize < 0 {
		return errors.New("cache max size cannot be negative")
	}

	if c.CacheTTL < 0 {
		return errors.New("cache TTL cannot be negative")
	}

	return nil
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
