// Package config defines service configuration and how it is loaded.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// EventQueueSize bounds the in-memory event queue.
	EventQueueSize int `koanf:"queue_size"`

	// DedupeSize sets how many recent push message ids are remembered.
	// Zero keeps every id.
	DedupeSize int `koanf:"dedupe_size"`

	// Surfaces lists where notifications are displayed: tray, desktop, ntfy.
	Surfaces []string `koanf:"surfaces"`

	// NtfyURL is the full topic URL notifications are published to.
	NtfyURL string `koanf:"ntfy_url"`

	// NtfyTimeoutSec bounds each ntfy publish.
	NtfyTimeoutSec int `koanf:"ntfy_timeout_sec"`

	// DesktopIcon is an optional icon path for desktop popups.
	DesktopIcon string `koanf:"desktop_icon"`

	// DemoCron schedules replay of the sample feed. Empty disables it.
	DemoCron string `koanf:"demo_cron"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		EventQueueSize: 1024,
		DedupeSize:     4096,
		NtfyTimeoutSec: 10,
	}
}

// NtfyTimeout returns NtfyTimeoutSec as a duration.
func (c *Config) NtfyTimeout() time.Duration {
	return time.Duration(c.NtfyTimeoutSec) * time.Second
}

// HasSurface reports whether name is among the configured surfaces.
func (c *Config) HasSurface(name string) bool {
	for _, s := range c.Surfaces {
		if s == name {
			return true
		}
	}
	return false
}
