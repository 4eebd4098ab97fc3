// Package config loads the mvpbuild service and CLI configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mvpbuild/internal/fileutil"
	"github.com/alnah/go-mvpbuild/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxAddrLength            = 255
	MaxURLLength             = 2048 // browser limit
	MaxAcknowledgementLength = 500
	MaxStyleNameLength       = 50
	MaxPasswordLength        = 512
	MaxKeyPrefixLength       = 64
	MaxPathLength            = 4096
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Environment overrides applied by ApplyEnv.
const (
	EnvTargetOrigin = "MVPBUILD_TARGET_ORIGIN"
	EnvRedisAddr    = "MVPBUILD_REDIS_ADDR"
	EnvAddr         = "MVPBUILD_ADDR"
	EnvLogLevel     = "MVPBUILD_LOG_LEVEL"
)

// appDir is the directory under os.UserConfigDir searched by LoadConfig.
const appDir = "mvpbuild"

// Config holds all configuration for the builder, server and CLI.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Builder BuilderConfig `yaml:"builder"`
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
	Preview PreviewConfig `yaml:"preview"`
}

// ServerConfig defines the HTTP API listener.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	MaxBodyBytes int64         `yaml:"maxBodyBytes"`
}

// BuilderConfig defines what goes into every published page.
type BuilderConfig struct {
	TargetOrigin    string `yaml:"targetOrigin"`    // origin tracking messages are posted to
	StylesheetURL   string `yaml:"stylesheetURL"`   // empty = default utility stylesheet
	Acknowledgement string `yaml:"acknowledgement"` // shown after a CTA click
	HighlightStyle  string `yaml:"highlightStyle"`  // chroma style for markdown code blocks
}

// StoreConfig selects where built pages are kept.
type StoreConfig struct {
	Driver string      `yaml:"driver"` // "memory" or "redis"
	Redis  RedisConfig `yaml:"redis"`
}

// RedisConfig defines the Redis page store.
type RedisConfig struct {
	Addr      string        `yaml:"addr"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db"`
	KeyPrefix string        `yaml:"keyPrefix"`
	TTL       time.Duration `yaml:"ttl"` // 0 = pages never expire
}

// LoggingConfig defines log level, encoding and optional rotated file output.
type LoggingConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // json or console
	File       string `yaml:"file"`   // empty = stderr only
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

// PreviewConfig defines thumbnail rendering.
type PreviewConfig struct {
	Width   int           `yaml:"width"`
	Height  int           `yaml:"height"`
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns a configuration suitable for local development:
// in-memory store, console logs, localhost origin.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
		Builder: BuilderConfig{
			TargetOrigin: "http://localhost:3000",
		},
		Store: StoreConfig{
			Driver: DriverMemory,
			Redis: RedisConfig{
				Addr:      "localhost:6379",
				KeyPrefix: "mvpbuild:",
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Preview: PreviewConfig{
			Width:   1280,
			Height:  800,
			Timeout: 30 * time.Second,
		},
	}
}

// Validate checks lengths, enums and URL shapes.
// Called automatically by LoadConfig, but available for configs built in code.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"server.addr", c.Server.Addr, MaxAddrLength},
		{"builder.targetOrigin", c.Builder.TargetOrigin, MaxURLLength},
		{"builder.stylesheetURL", c.Builder.StylesheetURL, MaxURLLength},
		{"builder.acknowledgement", c.Builder.Acknowledgement, MaxAcknowledgementLength},
		{"builder.highlightStyle", c.Builder.HighlightStyle, MaxStyleNameLength},
		{"store.redis.addr", c.Store.Redis.Addr, MaxAddrLength},
		{"store.redis.password", c.Store.Redis.Password, MaxPasswordLength},
		{"store.redis.keyPrefix", c.Store.Redis.KeyPrefix, MaxKeyPrefixLength},
		{"logging.file", c.Logging.File, MaxPathLength},
	}
	for _, ch := range checks {
		if err := validateFieldLength(ch.field, ch.value, ch.max); err != nil {
			return err
		}
	}

	if c.Builder.TargetOrigin != "" {
		if err := validateOrigin(c.Builder.TargetOrigin); err != nil {
			return fmt.Errorf("builder.targetOrigin: %w", err)
		}
	}
	if c.Builder.StylesheetURL != "" {
		if err := validateHTTPURL(c.Builder.StylesheetURL); err != nil {
			return fmt.Errorf("builder.stylesheetURL: %w", err)
		}
	}

	switch strings.ToLower(c.Store.Driver) {
	case "", DriverMemory:
	case DriverRedis:
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("%w: store.redis.addr is required for the redis driver", ErrInvalidValue)
		}
	default:
		return fmt.Errorf("%w: store.driver %q (must be memory or redis)", ErrInvalidValue, c.Store.Driver)
	}
	if c.Store.Redis.DB < 0 || c.Store.Redis.DB > 15 {
		return fmt.Errorf("%w: store.redis.db must be between 0 and 15, got %d", ErrInvalidValue, c.Store.Redis.DB)
	}
	if c.Store.Redis.TTL < 0 {
		return fmt.Errorf("%w: store.redis.ttl cannot be negative", ErrInvalidValue)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q (must be debug, info, warn or error)", ErrInvalidValue, c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("%w: logging.format %q (must be json or console)", ErrInvalidValue, c.Logging.Format)
	}

	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: server.maxBodyBytes cannot be negative", ErrInvalidValue)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("%w: server timeouts cannot be negative", ErrInvalidValue)
	}
	if c.Preview.Width < 0 || c.Preview.Height < 0 || c.Preview.Timeout < 0 {
		return fmt.Errorf("%w: preview width, height and timeout cannot be negative", ErrInvalidValue)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateOrigin accepts scheme://host[:port] with no path, query or fragment.
func validateOrigin(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q is not an http(s) origin", ErrInvalidValue, s)
	}
	if (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("%w: origin %q must not have a path, query or fragment", ErrInvalidValue, s)
	}
	return nil
}

func validateHTTPURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q is not an http(s) URL", ErrInvalidValue, s)
	}
	return nil
}

// ApplyEnv overrides fields from MVPBUILD_* environment variables.
// lookup is os.LookupEnv in production.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvTargetOrigin); ok && v != "" {
		c.Builder.TargetOrigin = v
	}
	if v, ok := lookup(EnvRedisAddr); ok && v != "" {
		c.Store.Redis.Addr = v
		c.Store.Driver = DriverRedis
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
}

// LoadConfig loads configuration from a file path or config name.
// A name is searched as name.yaml and name.yml in the current directory,
// then in the user config directory under mvpbuild/.
// Values missing from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeFile(configPath, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		p := name + ext
		if fileutil.FileExists(p) {
			return p, nil
		}
		tried = append(tried, p)
	}

	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			p := filepath.Join(dir, appDir, name+ext)
			if fileutil.FileExists(p) {
				return p, nil
			}
			tried = append(tried, p)
		}
	}

	return "", &NotFoundError{Tried: tried}
}

// NotFoundError lists the locations searched for a named config.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: tried %s", ErrConfigNotFound, strings.Join(e.Tried, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrConfigNotFound }
