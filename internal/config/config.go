// Package config resolves runtime configuration from defaults, an optional prompter.yaml, and
// PROMPTER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jwulff/prompter/internal/db"
)

// Config stores runtime configuration.
type Config struct {
	DataDir      string             `mapstructure:"data_dir" validate:"required"`
	DBPath       string             `mapstructure:"db_path" validate:"required"`
	MediaDir     string             `mapstructure:"media_dir" validate:"required"`
	Log          LogConfig          `mapstructure:"log"`
	Teleprompter TeleprompterConfig `mapstructure:"teleprompter"`
}

type LogConfig struct {
	Path       string `mapstructure:"path" validate:"required"`
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"min=1"`
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"min=0"`
}

// TeleprompterConfig holds the starting scroll speed and font size of a new session.
type TeleprompterConfig struct {
	ScrollSpeed float64 `mapstructure:"scroll_speed" validate:"gte=0.5,lte=5"`
	FontSize    int     `mapstructure:"font_size" validate:"gte=16,lte=40"`
}

// Load resolves configuration for the current user.
func Load() (Config, error) {
	dataDir, err := db.DefaultDataDir()
	if err != nil {
		return Config{}, err
	}
	v := viper.New()
	SetDefaults(v, dataDir)
	if err := readConfigFile(v, strings.TrimSpace(os.Getenv("PROMPTER_CONFIG"))); err != nil {
		return Config{}, err
	}
	return FromViper(v)
}

// readConfigFile reads an explicit config file, which must exist, or else looks for an optional
// prompter.yaml in the data directory and the working directory.
func readConfigFile(v *viper.Viper, explicit string) error {
	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", explicit, err)
		}
		return nil
	}

	v.SetConfigName("prompter")
	v.SetConfigType("yaml")
	v.AddConfigPath(v.GetString("data_dir"))
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// SetDefaults registers defaults and environment binding on v.
func SetDefaults(v *viper.Viper, dataDir string) {
	v.SetEnvPrefix("PROMPTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_dir", dataDir)
	v.SetDefault("db_path", "")
	v.SetDefault("media_dir", "")
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("teleprompter.scroll_speed", 2.0)
	v.SetDefault("teleprompter.font_size", 24)
}

// FromViper unmarshals, fills derived paths, and validates.
func FromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DBPath == "" && cfg.DataDir != "" {
		cfg.DBPath = db.PathIn(cfg.DataDir)
	}
	if cfg.MediaDir == "" && cfg.DataDir != "" {
		cfg.MediaDir = filepath.Join(cfg.DataDir, "media")
	}
	if cfg.Log.Path == "" && cfg.DataDir != "" {
		cfg.Log.Path = filepath.Join(cfg.DataDir, "prompter.log")
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	if err := validator.New().Struct(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
