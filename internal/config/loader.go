package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/robfig/cron/v3"
)

// Environment variables read by Load.
const (
	EnvPrefix = "LIVEUPDATES_"
	EnvConfig = EnvPrefix + "CONFIG"
)

var (
	knownSurfaces = map[string]bool{"tray": true, "desktop": true, "ntfy": true}
	knownLevels   = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	knownFormats  = map[string]bool{"text": true, "json": true}
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if LIVEUPDATES_CONFIG is set
//  3. env (prefix LIVEUPDATES_)
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(EnvConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// LIVEUPDATES_NTFY_URL -> ntfy_url. Keys are flat so underscores stay.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.NtfyURL = strings.TrimSpace(c.NtfyURL)
	c.DemoCron = strings.TrimSpace(c.DemoCron)

	surfaces := make([]string, 0, len(c.Surfaces))
	for _, s := range c.Surfaces {
		for _, part := range strings.Split(s, ",") {
			if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
				surfaces = append(surfaces, part)
			}
		}
	}
	if len(surfaces) == 0 {
		surfaces = []string{"tray"}
	}
	c.Surfaces = surfaces
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if !knownLevels[c.LogLevel] {
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if !knownFormats[c.LogFormat] {
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.EventQueueSize <= 0 {
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	}
	if c.DedupeSize < 0 {
		return fmt.Errorf("%w: dedupe_size must not be negative", ErrInvalidConfig)
	}
	for _, s := range c.Surfaces {
		if !knownSurfaces[s] {
			return fmt.Errorf("%w: unknown surface %q", ErrInvalidConfig, s)
		}
	}
	if c.HasSurface("ntfy") && c.NtfyURL == "" {
		return fmt.Errorf("%w: ntfy_url is required when the ntfy surface is enabled", ErrInvalidConfig)
	}
	if c.NtfyTimeoutSec <= 0 {
		return fmt.Errorf("%w: ntfy_timeout_sec must be positive", ErrInvalidConfig)
	}
	if c.DemoCron != "" {
		if _, err := cron.ParseStandard(c.DemoCron); err != nil {
			return fmt.Errorf("%w: demo_cron: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}
