// Package config assembles runtime configuration from tag defaults, an
// optional TOML file and TASKMIND_* environment variables, in that order of
// increasing precedence.
package config

import (
	"fmt"

	"github.com/rezkam/taskmind/internal/env"
)

// Config holds the application configuration.
type Config struct {
	Env string `env:"TASKMIND_ENV" default:"dev"` // dev, prod

	Storage       StorageConfig
	Store         StoreConfig
	Reminder      ReminderConfig
	Observability ObservabilityConfig
}

// fileLocator finds the optional config file.
type fileLocator struct {
	Path string `env:"TASKMIND_CONFIG_FILE"`
}

// Load builds a validated Config. When TASKMIND_CONFIG_FILE is set the file
// is read (and created with defaults if missing) before the environment is
// applied on top.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.ApplyDefaults(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}

	var loc fileLocator
	if err := env.Load(&loc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if loc.Path != "" {
		if err := loadOrCreateFile(loc.Path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", loc.Path, err)
		}
	}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
