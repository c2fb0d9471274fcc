package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Port             string `mapstructure:"PORT"`
	ServiceName      string `mapstructure:"SERVICE_NAME"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
	MetricsEnabled   bool   `mapstructure:"METRICS_ENABLED"`
	MetricsToken     string `mapstructure:"METRICS_TOKEN"`
	WriteLimitPerMin int    `mapstructure:"WRITE_LIMIT_PER_MIN"`
	// TrustForwardedFor should only be set behind a proxy that rewrites
	// X-Forwarded-For.
	TrustForwardedFor bool `mapstructure:"TRUST_FORWARDED_FOR"`
	SeedData          bool `mapstructure:"SEED_DATA"`
}

// Read loads configuration from an optional .env file in the working
// directory, overridden by environment variables.
func Read() (*AppConfig, error) {
	return ReadFile(".env")
}

func ReadFile(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil && !missingConfig(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	v.AutomaticEnv()

	bindEnvVariables(v)
	setDefaults(v)

	var appConfig AppConfig
	if err := v.Unmarshal(&appConfig); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if appConfig.WriteLimitPerMin < 0 {
		return nil, fmt.Errorf("WRITE_LIMIT_PER_MIN must not be negative, got %d", appConfig.WriteLimitPerMin)
	}

	return &appConfig, nil
}

// missingConfig reports whether err only means the .env file is absent.
func missingConfig(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

func bindEnvVariables(v *viper.Viper) {
	_ = v.BindEnv("PORT")
	_ = v.BindEnv("SERVICE_NAME")
	_ = v.BindEnv("LOG_LEVEL")
	_ = v.BindEnv("METRICS_ENABLED")
	_ = v.BindEnv("METRICS_TOKEN")
	_ = v.BindEnv("WRITE_LIMIT_PER_MIN")
	_ = v.BindEnv("TRUST_FORWARDED_FOR")
	_ = v.BindEnv("SEED_DATA")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("SERVICE_NAME", "inventory")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("WRITE_LIMIT_PER_MIN", 0)
	v.SetDefault("TRUST_FORWARDED_FOR", false)
	v.SetDefault("SEED_DATA", true)
}
