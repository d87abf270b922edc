// Package config loads dashboard settings from file and environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/ukaji3/procdash-go/internal/logger"
	"github.com/ukaji3/procdash-go/pkg/procdash/models"
)

// Source kinds.
const (
	SourceFile = "file"
	SourceHTTP = "http"
)

// EnvPrefix prefixes environment overrides, e.g. PROCDASH_SOURCE_PATH.
const EnvPrefix = "PROCDASH"

// Config is the full application configuration.
type Config struct {
	Source SourceConfig     `mapstructure:"source"`
	Server ServerConfig     `mapstructure:"server"`
	Log    LogConfig        `mapstructure:"log"`
	Theme  models.ThemeSpec `mapstructure:"theme"`
}

// SourceConfig selects where the dataset workbook comes from.
type SourceConfig struct {
	Kind         string        `mapstructure:"kind"`
	Path         string        `mapstructure:"path"`
	URL          string        `mapstructure:"url"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Retry        RetryConfig   `mapstructure:"retry"`
}

// RetryConfig bounds fetch retries.
type RetryConfig struct {
	Attempts int           `mapstructure:"attempts"`
	Backoff  time.Duration `mapstructure:"backoff"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	theme := models.DefaultThemeSpec()
	v.SetDefault("source.kind", SourceFile)
	v.SetDefault("source.path", "data.xlsx")
	v.SetDefault("source.url", "")
	v.SetDefault("source.poll_interval", "60s")
	v.SetDefault("source.timeout", "30s")
	v.SetDefault("source.retry.attempts", 3)
	v.SetDefault("source.retry.backoff", "500ms")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("theme.palette", theme.Palette)
	v.SetDefault("theme.background", theme.Background)
	v.SetDefault("theme.axis", theme.Axis)
	v.SetDefault("theme.text", theme.Text)
	v.SetDefault("theme.grid", theme.Grid)
	v.SetDefault("theme.tooltip", theme.Tooltip)
}

// Load reads path (yaml, toml or json by extension) over the defaults and
// applies PROCDASH_* environment overrides. An empty path uses defaults
// and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file failed (%s): %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Source.Kind = strings.ToLower(strings.TrimSpace(c.Source.Kind))
	c.Source.Path = strings.TrimSpace(c.Source.Path)
	c.Source.URL = strings.TrimSpace(c.Source.URL)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceFile:
		if c.Source.Path == "" {
			return fmt.Errorf("source.path is required for file sources")
		}
	case SourceHTTP:
		if c.Source.URL == "" {
			return fmt.Errorf("source.url is required for http sources")
		}
		if !strings.HasPrefix(c.Source.URL, "http://") && !strings.HasPrefix(c.Source.URL, "https://") {
			return fmt.Errorf("source.url must be an http(s) URL, got %q", c.Source.URL)
		}
	default:
		return fmt.Errorf("unknown source.kind %q (must be file or http)", c.Source.Kind)
	}
	if c.Source.PollInterval <= 0 {
		return fmt.Errorf("source.poll_interval must be positive")
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("source.timeout must be positive")
	}
	if c.Source.Retry.Attempts < 1 {
		return fmt.Errorf("source.retry.attempts must be at least 1")
	}
	if c.Source.Retry.Backoff < 0 {
		return fmt.Errorf("source.retry.backoff must not be negative")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level %q: %w", c.Log.Level, err)
	}
	if _, err := models.NewTheme(c.Theme); err != nil {
		return fmt.Errorf("invalid theme: %w", err)
	}
	return nil
}

// BuildTheme returns the configured Theme.
func (c *Config) BuildTheme() (*models.Theme, error) {
	return models.NewTheme(c.Theme)
}
