// Package config loads daybook settings from defaults, an optional YAML file
// and DAYBOOK_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sandeepkv93/daybook/internal/model"
)

const EnvPrefix = "DAYBOOK"

type Config struct {
	DBPath    string          `mapstructure:"db_path"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Log       LogConfig       `mapstructure:"log"`
	Reminders RemindersConfig `mapstructure:"reminders"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File is used by the dashboard, which cannot share the terminal.
	File string `mapstructure:"file"`
}

type RemindersConfig struct {
	CloseThreshold int `mapstructure:"close_threshold"`
	PreviewCount   int `mapstructure:"preview_count"`
}

type DashboardConfig struct {
	Refresh time.Duration `mapstructure:"refresh"`
}

func Default() Config {
	return Config{
		DBPath: "daybook.db",
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			File:   "daybook.log",
		},
		Reminders: RemindersConfig{
			CloseThreshold: 2,
			PreviewCount:   5,
		},
		Dashboard: DashboardConfig{
			Refresh: time.Minute,
		},
	}
}

// Load reads path when given; otherwise daybook.yaml is looked up in the
// working directory and $HOME/.daybook, and a missing file is not an error.
func Load(path string) (Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		v.SetConfigName("daybook")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.daybook")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config: read: %w", err)
			}
		}
	}
	return Decode(v)
}

// NewViper returns a viper instance with defaults and env bindings but no file.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("http.addr", d.HTTP.Addr)
	v.SetDefault("http.shutdown_timeout", d.HTTP.ShutdownTimeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("reminders.close_threshold", d.Reminders.CloseThreshold)
	v.SetDefault("reminders.preview_count", d.Reminders.PreviewCount)
	v.SetDefault("dashboard.refresh", d.Dashboard.Refresh)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("config: db_path is required")
	}
	if c.Reminders.CloseThreshold < 0 {
		return fmt.Errorf("config: reminders.close_threshold must be >= 0, got %d", c.Reminders.CloseThreshold)
	}
	if c.Reminders.PreviewCount <= 0 || c.Reminders.PreviewCount > model.MaxPreviewCount {
		return fmt.Errorf("config: reminders.preview_count must be in 1..%d, got %d", model.MaxPreviewCount, c.Reminders.PreviewCount)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("config: unknown log.format %q", c.Log.Format)
	}
	if c.Dashboard.Refresh < time.Second {
		return fmt.Errorf("config: dashboard.refresh must be at least 1s, got %s", c.Dashboard.Refresh)
	}
	return nil
}
