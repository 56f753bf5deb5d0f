// Package config loads settings for the counter CLI from defaults, an
// optional config file, and DEDUX_ environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// StorageConfig selects the key-value backend the counter is mirrored to.
type StorageConfig struct {
	Backend   string `mapstructure:"backend" validate:"required,oneof=memory sqlite redis file"`
	DSN       string `mapstructure:"dsn" validate:"required_if=Backend sqlite"`
	RedisAddr string `mapstructure:"redis_addr" validate:"required_if=Backend redis"`
	Dir       string `mapstructure:"dir" validate:"required_if=Backend file"`
	Codec     string `mapstructure:"codec" validate:"required,oneof=json yaml"`
	Key       string `mapstructure:"key" validate:"required"`
	// Tiered keeps an in-memory copy in front of the backend.
	Tiered bool `mapstructure:"tiered"`
}

// EnvPrefix is the prefix for environment overrides, e.g. DEDUX_STORAGE_BACKEND.
const EnvPrefix = "DEDUX"

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.dsn", "dedux.db")
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.dir", ".dedux")
	v.SetDefault("storage.codec", "json")
	v.SetDefault("storage.key", "count")
	v.SetDefault("storage.tiered", false)
}

// New returns a viper instance with defaults and environment bindings set.
// Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file at path into v, then unmarshals and
// validates the result. An empty path searches for dedux.yaml in the working
// directory; a missing file there is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("dedux")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
