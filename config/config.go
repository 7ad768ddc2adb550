// Package config handles loading and managing application configuration
// from YAML files, an optional .env file and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/openclaw/qrdesigner/designer"
)

// Config holds all application configuration values.
type Config struct {
	Port          int      `yaml:"port"`
	LogLevel      string   `yaml:"log_level"`
	MaxLogoBytes  int64    `yaml:"max_logo_bytes"`
	JPEGQuality   int      `yaml:"jpeg_quality"`
	DefaultColor  string   `yaml:"default_color"`
	DefaultFormat string   `yaml:"default_format"`
	ReadTimeout   Duration `yaml:"read_timeout"`
	WriteTimeout  Duration `yaml:"write_timeout"`
}

// Duration is a wrapper around time.Duration that supports YAML unmarshalling
// from human-readable strings like "30s", "5m", "1h".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Defaults returns a Config populated with sensible default values.
func Defaults() *Config {
	return &Config{
		Port:          8556,
		LogLevel:      "info",
		MaxLogoBytes:  10 << 20,
		JPEGQuality:   designer.DefaultJPEGQuality,
		DefaultColor:  "#000000",
		DefaultFormat: string(designer.FormatPNG),
		ReadTimeout:   Duration{30 * time.Second},
		WriteTimeout:  Duration{60 * time.Second},
	}
}

// Load reads configuration from the YAML file at path, falling back to
// defaults if the file does not exist. Variables from a .env file in the
// working directory are exported first, then QRD_ prefixed environment
// variables override any file or default values.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// File doesn't exist, proceed with defaults.
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies QRD_* environment variable overrides to cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("QRD_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("QRD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("QRD_MAX_LOGO_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MaxLogoBytes = n
		}
	}
	if v := os.Getenv("QRD_JPEG_QUALITY"); v != "" {
		if q, err := strconv.Atoi(v); err == nil {
			cfg.JPEGQuality = q
		}
	}
	if v := os.Getenv("QRD_DEFAULT_COLOR"); v != "" {
		cfg.DefaultColor = v
	}
	if v := os.Getenv("QRD_DEFAULT_FORMAT"); v != "" {
		cfg.DefaultFormat = v
	}
	if v := os.Getenv("QRD_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ReadTimeout = Duration{d}
		}
	}
	if v := os.Getenv("QRD_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.WriteTimeout = Duration{d}
		}
	}
}

// Validate checks values that would otherwise fail later at request time.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.MaxLogoBytes <= 0 {
		return fmt.Errorf("max_logo_bytes must be positive, got %d", c.MaxLogoBytes)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be within 1..100, got %d", c.JPEGQuality)
	}
	if _, err := designer.ParseColor(c.DefaultColor); err != nil {
		return fmt.Errorf("default_color: %w", err)
	}
	if _, err := designer.ParseFormat(c.DefaultFormat); err != nil {
		return fmt.Errorf("default_format: %w", err)
	}
	return nil
}
