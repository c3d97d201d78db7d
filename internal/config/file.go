package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// fileConfig is the on-disk shape. Durations are Go duration strings.
type fileConfig struct {
	Env           string            `toml:"env"`
	Storage       fileStorage       `toml:"storage"`
	Store         fileStore         `toml:"store"`
	Reminder      fileReminder      `toml:"reminder"`
	Observability fileObservability `toml:"observability"`
}

type fileStorage struct {
	Type                 string `toml:"type"`
	FSDir                string `toml:"fs_dir"`
	GCSBucket            string `toml:"gcs_bucket"`
	GCSPrefix            string `toml:"gcs_prefix"`
	SQLitePath           string `toml:"sqlite_path"`
	PostgresDSN          string `toml:"postgres_dsn"`
	PostgresMaxOpenConns int    `toml:"postgres_max_open_conns"`
}

type fileStore struct {
	PersistTimeout string `toml:"persist_timeout"`
	DefaultFilter  string `toml:"default_filter"`
}

type fileReminder struct {
	Interval string `toml:"interval"`
	Console  *bool  `toml:"console"`
}

type fileObservability struct {
	OTelEnabled *bool  `toml:"otel_enabled"`
	ServiceName string `toml:"service_name"`
}

// loadOrCreateFile overlays the file at path onto cfg. A missing file is
// created from cfg so users have a template to edit.
func loadOrCreateFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return writeFile(path, cfg)
	}
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to decode TOML: %w", err)
	}
	return fc.apply(cfg)
}

func writeFile(path string, cfg *Config) error {
	data, err := toml.Marshal(toFile(cfg))
	if err != nil {
		return fmt.Errorf("failed to encode TOML: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func toFile(cfg *Config) fileConfig {
	return fileConfig{
		Env: cfg.Env,
		Storage: fileStorage{
			Type:                 cfg.Storage.Type,
			FSDir:                cfg.Storage.FSDir,
			GCSBucket:            cfg.Storage.GCSBucket,
			GCSPrefix:            cfg.Storage.GCSPrefix,
			SQLitePath:           cfg.Storage.SQLitePath,
			PostgresDSN:          cfg.Storage.PostgresDSN,
			PostgresMaxOpenConns: cfg.Storage.PostgresMaxOpenConns,
		},
		Store: fileStore{
			PersistTimeout: cfg.Store.PersistTimeout.String(),
			DefaultFilter:  cfg.Store.DefaultFilter,
		},
		Reminder: fileReminder{
			Interval: cfg.Reminder.Interval.String(),
			Console:  &cfg.Reminder.Console,
		},
		Observability: fileObservability{
			OTelEnabled: &cfg.Observability.OTelEnabled,
			ServiceName: cfg.Observability.ServiceName,
		},
	}
}

// apply copies every value present in the file onto cfg.
func (fc fileConfig) apply(cfg *Config) error {
	setString(&cfg.Env, fc.Env)

	setString(&cfg.Storage.Type, fc.Storage.Type)
	setString(&cfg.Storage.FSDir, fc.Storage.FSDir)
	setString(&cfg.Storage.GCSBucket, fc.Storage.GCSBucket)
	setString(&cfg.Storage.GCSPrefix, fc.Storage.GCSPrefix)
	setString(&cfg.Storage.SQLitePath, fc.Storage.SQLitePath)
	setString(&cfg.Storage.PostgresDSN, fc.Storage.PostgresDSN)
	if fc.Storage.PostgresMaxOpenConns != 0 {
		cfg.Storage.PostgresMaxOpenConns = fc.Storage.PostgresMaxOpenConns
	}

	if err := setDuration(&cfg.Store.PersistTimeout, "store.persist_timeout", fc.Store.PersistTimeout); err != nil {
		return err
	}
	setString(&cfg.Store.DefaultFilter, fc.Store.DefaultFilter)

	if err := setDuration(&cfg.Reminder.Interval, "reminder.interval", fc.Reminder.Interval); err != nil {
		return err
	}
	if fc.Reminder.Console != nil {
		cfg.Reminder.Console = *fc.Reminder.Console
	}

	if fc.Observability.OTelEnabled != nil {
		cfg.Observability.OTelEnabled = *fc.Observability.OTelEnabled
	}
	setString(&cfg.Observability.ServiceName, fc.Observability.ServiceName)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}
