package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/rezkam/taskmind/internal/domain"
)

var (
	ErrNonPositiveInterval       = errors.New("TASKMIND_REMINDER_INTERVAL must be positive")
	ErrNonPositivePersistTimeout = errors.New("TASKMIND_PERSIST_TIMEOUT must be positive")
)

// StoreConfig configures the task store.
type StoreConfig struct {
	PersistTimeout time.Duration `env:"TASKMIND_PERSIST_TIMEOUT" default:"5s"`
	// DefaultFilter is the filter a session starts with; filters are never persisted.
	DefaultFilter string `env:"TASKMIND_DEFAULT_FILTER" default:"all"`
}

// Validate checks timeout and filter values.
func (c *StoreConfig) Validate() error {
	if c.PersistTimeout <= 0 {
		return ErrNonPositivePersistTimeout
	}
	if _, err := domain.NewFilter(c.DefaultFilter); err != nil {
		return fmt.Errorf("TASKMIND_DEFAULT_FILTER: %w", err)
	}
	return nil
}

// Filter returns the validated default filter.
func (c *StoreConfig) Filter() domain.Filter {
	f, err := domain.NewFilter(c.DefaultFilter)
	if err != nil {
		return domain.DefaultFilter
	}
	return f
}

// ReminderConfig configures the reminder monitor.
type ReminderConfig struct {
	Interval time.Duration `env:"TASKMIND_REMINDER_INTERVAL" default:"1m"`
	// Console prints alerts to stdout in addition to logging them.
	Console bool `env:"TASKMIND_REMINDER_CONSOLE" default:"true"`
}

// Validate checks the scan interval.
func (c *ReminderConfig) Validate() error {
	if c.Interval <= 0 {
		return ErrNonPositiveInterval
	}
	return nil
}
