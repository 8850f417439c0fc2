// Package config loads the claudeq configuration from
// ~/.config/claudeq/config.yaml. Loading never fails: a missing or
// malformed file falls back to defaults with a warning.
package config

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"claudeq/internal/utils"
)

// Config is the claudeq configuration.
type Config struct {
	// QueuePath is the queue document location. Supports ~ expansion.
	QueuePath string `yaml:"queue_path"`

	Popup  PopupConfig  `yaml:"popup"`
	System SystemConfig `yaml:"system"`
	Ntfy   NtfyConfig   `yaml:"ntfy"`
}

// PopupConfig controls the tmux notification popup.
type PopupConfig struct {
	// Enabled toggles popups entirely; the queue append still happens.
	Enabled *bool `yaml:"enabled"`
	// TimeoutSeconds is the auto-expiry. Defaults to 10.
	TimeoutSeconds *int `yaml:"timeout_seconds"`
}

// SystemConfig controls the desktop notification fallback used when no
// tmux client is attached.
type SystemConfig struct {
	Enabled bool `yaml:"enabled"`
}

// NtfyConfig controls push notifications on stop events.
type NtfyConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Topic   string `yaml:"topic"`
}

func defaultConfig() *Config {
	return &Config{
		QueuePath: "~/.local/share/claudeq/tasks.org",
		System:    SystemConfig{Enabled: true},
		Ntfy:      NtfyConfig{URL: "https://ntfy.sh"},
	}
}

func configPath() string {
	if p := os.Getenv("CLAUDEQ_CONFIG"); p != "" {
		return p
	}
	return utils.ExpandPath("~/.config/claudeq/config.yaml")
}

// Load reads the configuration, falling back to defaults on any failure.
func Load() *Config {
	cfg := defaultConfig()

	data, err := os.ReadFile(configPath())
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).Warn("failed to read config, using defaults")
		}
		return cfg
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		logrus.WithError(err).Warn("failed to parse config, using defaults")
		return defaultConfig()
	}
	if cfg.QueuePath == "" {
		cfg.QueuePath = defaultConfig().QueuePath
	}
	return cfg
}

// ExpandedQueuePath resolves the queue document path, honoring the
// CLAUDEQ_QUEUE_PATH override.
func (c *Config) ExpandedQueuePath() string {
	if p := os.Getenv("CLAUDEQ_QUEUE_PATH"); p != "" {
		return p
	}
	return utils.ExpandPath(c.QueuePath)
}

// PopupEnabled reports whether popups should be shown at all.
func (c *Config) PopupEnabled() bool {
	if c.Popup.Enabled == nil {
		return true
	}
	return *c.Popup.Enabled
}

// PopupTimeout is the auto-expiry duration for a showing popup.
func (c *Config) PopupTimeout() time.Duration {
	if c.Popup.TimeoutSeconds == nil || *c.Popup.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(*c.Popup.TimeoutSeconds) * time.Second
}
