package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// Prediction service
	Server ServerConfig `koanf:"server"`

	// Playback tuning
	Playback PlaybackConfig `koanf:"playback"`

	Notifications *bool  `koanf:"notifications"` // desktop notifications (default: true)
	LogFile       string `koanf:"log_file"`      // empty means $XDG_STATE_HOME/moodtune/moodtune.log
	Icons         string `koanf:"icons"`         // "nerd", "unicode", or "none" (default: "none")
}

// ServerConfig holds the prediction service settings.
type ServerConfig struct {
	URL            string `koanf:"url"`             // e.g., "http://localhost:8000"
	Model          string `koanf:"model"`           // "simple" or "advanced" (default: "simple")
	TimeoutSeconds int    `koanf:"timeout_seconds"` // per request (default: 30)
}

// PlaybackConfig holds playback coordinator and audio output settings.
type PlaybackConfig struct {
	ResolveTimeoutSeconds     int     `koanf:"resolve_timeout_seconds"`      // default: 20
	LoadTimeoutSeconds        int     `koanf:"load_timeout_seconds"`         // default: 30
	ShortClipThresholdSeconds int     `koanf:"short_clip_threshold_seconds"` // default: 35
	IntroSkipSeconds          int     `koanf:"intro_skip_seconds"`           // default: 3
	SkipStepSeconds           int     `koanf:"skip_step_seconds"`            // default: 10
	VolumeStep                float64 `koanf:"volume_step"`                  // 0.01-0.5 (default: 0.05)
	MaxSourceMB               int     `koanf:"max_source_mb"`                // default: 64
	ProgressIntervalMS        int     `koanf:"progress_interval_ms"`         // 50-5000 (default: 250)
}

// Load reads the config files in priority order. An explicit path, when
// given, is loaded last and must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}
	if explicit != "" {
		if err := k.Load(file.Provider(expandPath(explicit)), toml.Parser()); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Normalize server URL (remove trailing slash)
	cfg.Server.URL = strings.TrimSuffix(strings.TrimSpace(cfg.Server.URL), "/")

	if cfg.LogFile != "" {
		cfg.LogFile = expandPath(cfg.LogFile)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/moodtune/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "moodtune", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// NotificationsEnabled returns true unless notifications are turned off.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// GetServerConfig returns the server configuration with defaults applied.
func (c *Config) GetServerConfig() ServerConfig {
	cfg := c.Server

	if cfg.URL == "" {
		cfg.URL = "http://localhost:8000"
	}
	if cfg.Model != "simple" && cfg.Model != "advanced" {
		cfg.Model = "simple"
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 30
	}

	return cfg
}

// Timeout returns the per-request timeout.
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback

	if cfg.ResolveTimeoutSeconds <= 0 {
		cfg.ResolveTimeoutSeconds = 20
	}
	if cfg.LoadTimeoutSeconds <= 0 {
		cfg.LoadTimeoutSeconds = 30
	}
	if cfg.ShortClipThresholdSeconds <= 0 {
		cfg.ShortClipThresholdSeconds = 35
	}
	if cfg.IntroSkipSeconds <= 0 {
		cfg.IntroSkipSeconds = 3
	}
	if cfg.SkipStepSeconds <= 0 {
		cfg.SkipStepSeconds = 10
	}
	if cfg.VolumeStep <= 0 || cfg.VolumeStep > 0.5 {
		cfg.VolumeStep = 0.05
	}
	if cfg.MaxSourceMB <= 0 {
		cfg.MaxSourceMB = 64
	}
	if cfg.ProgressIntervalMS < 50 || cfg.ProgressIntervalMS > 5000 {
		cfg.ProgressIntervalMS = 250
	}

	return cfg
}

func (p PlaybackConfig) ResolveTimeout() time.Duration {
	return time.Duration(p.ResolveTimeoutSeconds) * time.Second
}

func (p PlaybackConfig) LoadTimeout() time.Duration {
	return time.Duration(p.LoadTimeoutSeconds) * time.Second
}

func (p PlaybackConfig) ShortClipThreshold() time.Duration {
	return time.Duration(p.ShortClipThresholdSeconds) * time.Second
}

func (p PlaybackConfig) IntroSkip() time.Duration {
	return time.Duration(p.IntroSkipSeconds) * time.Second
}

func (p PlaybackConfig) SkipStep() time.Duration {
	return time.Duration(p.SkipStepSeconds) * time.Second
}

// MaxSourceBytes returns the in-memory limit for one audio source.
func (p PlaybackConfig) MaxSourceBytes() int64 {
	return int64(p.MaxSourceMB) << 20
}

func (p PlaybackConfig) ProgressInterval() time.Duration {
	return time.Duration(p.ProgressIntervalMS) * time.Millisecond
}
