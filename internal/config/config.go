package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

// Config holds the dashboard settings.
type Config struct {
	APIBind         string
	StatsPoll       time.Duration
	RefreshInterval time.Duration
	Tick            time.Duration
	FPS             int
	LogFile         string
	LogLevel        logrus.Level
	Theme           string // empty keeps the saved preference
}

const (
	defaultConfigPath      = "~/.config/minerdash/config.toml"
	defaultAPIBind         = "127.0.0.1:3413"
	defaultStatsPoll       = 2 * time.Second
	defaultRefreshInterval = time.Second
	defaultTick            = 100 * time.Millisecond
	defaultFPS             = 4
	defaultLogFile         = "~/.local/state/minerdash/minerdash.log"
	defaultLogLevel        = logrus.InfoLevel
	maxFPS                 = 60
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBind:         defaultAPIBind,
		StatsPoll:       defaultStatsPoll,
		RefreshInterval: defaultRefreshInterval,
		Tick:            defaultTick,
		FPS:             defaultFPS,
		LogFile:         mustExpand(defaultLogFile),
		LogLevel:        defaultLogLevel,
	}
}

type rawConfig struct {
	APIBind         string `toml:"api_bind"`
	StatsPoll       string `toml:"stats_poll"`
	RefreshInterval string `toml:"refresh_interval"`
	Tick            string `toml:"tick"`
	FPS             int    `toml:"fps"`
	LogFile         string `toml:"log_file"`
	LogLevel        string `toml:"log_level"`
	Theme           string `toml:"theme"`
}

// Load locates and parses the config file, falling back to defaults when it
// is missing. Empty values keep their defaults; malformed values are errors.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBind); v != "" {
		cfg.APIBind = v
	}
	for _, d := range []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"stats_poll", raw.StatsPoll, &cfg.StatsPoll},
		{"refresh_interval", raw.RefreshInterval, &cfg.RefreshInterval},
		{"tick", raw.Tick, &cfg.Tick},
	} {
		if err := parseDuration(d.key, d.raw, d.dst); err != nil {
			return Config{}, err
		}
	}
	if raw.FPS != 0 {
		cfg.FPS = raw.FPS
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse log_level: %w", err)
		}
		cfg.LogLevel = level
	}
	cfg.Theme = strings.TrimSpace(raw.Theme)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings the dashboard cannot run with.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.APIBind) == "":
		return errors.New("api_bind is empty")
	case c.StatsPoll <= 0:
		return fmt.Errorf("stats_poll must be positive, got %v", c.StatsPoll)
	case c.RefreshInterval <= 0:
		return fmt.Errorf("refresh_interval must be positive, got %v", c.RefreshInterval)
	case c.Tick <= 0:
		return fmt.Errorf("tick must be positive, got %v", c.Tick)
	case c.Tick > c.RefreshInterval:
		return fmt.Errorf("tick (%v) must not exceed refresh_interval (%v)", c.Tick, c.RefreshInterval)
	case c.FPS <= 0 || c.FPS > maxFPS:
		return fmt.Errorf("fps must be between 1 and %d, got %d", maxFPS, c.FPS)
	}
	return nil
}

func parseDuration(key, raw string, dst *time.Duration) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = d
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
