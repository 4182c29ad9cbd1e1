// Package config loads service configuration from file and environment.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds all configuration for the pipeline service.
// The mapstructure tags are used by Viper to unmarshal the data.
type Config struct {
	ListenAddr    string        `mapstructure:"listen_addr" validate:"required"`
	ExecTimeout   time.Duration `mapstructure:"exec_timeout" validate:"gt=0"`
	CheckSchedule string        `mapstructure:"check_schedule" validate:"omitempty,cron_expr"`
	RepoPath      string        `mapstructure:"repo_path"`
	LogLevel      string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	// Set default values
	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("exec_timeout", "5m")
	viper.SetDefault("check_schedule", "")
	viper.SetDefault("repo_path", "")
	viper.SetDefault("log_level", "info")

	// Set config file details
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Read environment variables
	viper.SetEnvPrefix("pipelines")
	viper.AutomaticEnv()

	// Read the config file; defaults and env vars suffice without one
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	validate := validator.New()

	_ = validate.RegisterValidation("cron_expr", func(fl validator.FieldLevel) bool {
		_, err := cron.ParseStandard(fl.Field().String())
		return err == nil
	})

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
