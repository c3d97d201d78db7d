package main

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rezkam/taskmind/internal/config"
	"github.com/rezkam/taskmind/internal/core"
	"github.com/rezkam/taskmind/internal/storage/fs"
	"github.com/rezkam/taskmind/internal/storage/gcs"
	"github.com/rezkam/taskmind/internal/storage/memory"
	"github.com/rezkam/taskmind/internal/storage/postgres"
	"github.com/rezkam/taskmind/internal/storage/sqlite"
)

func nopClose() error { return nil }

// openSink builds the configured key-value backend and its release function.
func openSink(ctx context.Context, cfg config.StorageConfig) (core.KeyValueStore, func() error, error) {
	switch cfg.Type {
	case config.StorageMemory:
		return memory.NewStore(), nopClose, nil
	case config.StorageFS:
		s, err := fs.NewStore(cfg.FSDir)
		if err != nil {
			return nil, nil, err
		}
		return s, nopClose, nil
	case config.StorageGCS:
		s, err := gcs.NewStore(ctx, cfg.GCSBucket, cfg.GCSPrefix)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.StorageSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.StoragePostgres:
		s, err := postgres.NewStore(ctx, postgres.DBConfig{
			DSN:          cfg.PostgresDSN,
			MaxOpenConns: cfg.PostgresMaxOpenConns,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageType, cfg.Type)
	}
}

// describeSink names the storage location for logs without leaking secrets.
func describeSink(cfg config.StorageConfig) string {
	switch cfg.Type {
	case config.StorageFS:
		return cfg.FSDir
	case config.StorageGCS:
		return "gs://" + cfg.GCSBucket + "/" + cfg.GCSPrefix
	case config.StorageSQLite:
		return cfg.SQLitePath
	case config.StoragePostgres:
		return maskPassword(cfg.PostgresDSN)
	default:
		return cfg.Type
	}
}

// maskPassword masks the password in a connection string for logging.
func maskPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil {
		// Unparseable strings may still carry secrets.
		return "[REDACTED]"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "xxxxxx")
		}
	}
	return u.String()
}
