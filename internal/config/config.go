// Package config loads runtime settings from defaults, an optional YAML file
// and AGENCYD_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "AGENCYD"

type RemindersConfig struct {
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
	ToastTTL time.Duration `mapstructure:"toast_ttl" yaml:"toast_ttl"`
	Buffer   int           `mapstructure:"buffer" yaml:"buffer"`
}

type SeedConfig struct {
	// Path to a YAML seed file; empty uses the built-in fixtures.
	Path string `mapstructure:"path" yaml:"path"`
}

type JournalConfig struct {
	// Path to the SQLite journal; empty disables journaling.
	Path string `mapstructure:"path" yaml:"path"`
}

type LogConfig struct {
	Path  string `mapstructure:"path" yaml:"path"`
	Level string `mapstructure:"level" yaml:"level"`
}

type NotificationsConfig struct {
	Desktop bool `mapstructure:"desktop" yaml:"desktop"`
}

type RuntimeConfig struct {
	Reminders     RemindersConfig     `mapstructure:"reminders" yaml:"reminders"`
	Seed          SeedConfig          `mapstructure:"seed" yaml:"seed"`
	Journal       JournalConfig       `mapstructure:"journal" yaml:"journal"`
	Log           LogConfig           `mapstructure:"log" yaml:"log"`
	Notifications NotificationsConfig `mapstructure:"notifications" yaml:"notifications"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Reminders: RemindersConfig{
			Interval: 30 * time.Second,
			ToastTTL: 5 * time.Second,
			Buffer:   64,
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath is ~/.config/agencyd/config.yaml, or ./config.yaml when the
// home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "agencyd", "config.yaml")
}

// Load reads path if it exists. A missing file is not an error.
func Load(path string) (RuntimeConfig, error) {
	def := DefaultRuntimeConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("reminders.interval", def.Reminders.Interval)
	v.SetDefault("reminders.toast_ttl", def.Reminders.ToastTTL)
	v.SetDefault("reminders.buffer", def.Reminders.Buffer)
	v.SetDefault("seed.path", def.Seed.Path)
	v.SetDefault("journal.path", def.Journal.Path)
	v.SetDefault("log.path", def.Log.Path)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("notifications.desktop", def.Notifications.Desktop)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return RuntimeConfig{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var cfg RuntimeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return RuntimeConfig{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}

func (c RuntimeConfig) Validate() error {
	if c.Reminders.Interval <= 0 {
		return fmt.Errorf("config: reminders.interval must be positive, got %s", c.Reminders.Interval)
	}
	if c.Reminders.ToastTTL <= 0 {
		return fmt.Errorf("config: reminders.toast_ttl must be positive, got %s", c.Reminders.ToastTTL)
	}
	if c.Reminders.Buffer <= 0 {
		return fmt.Errorf("config: reminders.buffer must be positive, got %d", c.Reminders.Buffer)
	}
	return nil
}

// SlogLevel parses log.level, falling back to info.
func (c RuntimeConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
