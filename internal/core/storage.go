package core

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KeyValueStore.Get when nothing is stored under the key.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the persistence sink for store snapshots: opaque string
// values under fixed keys. Implementations can be file-based, cloud-storage
// based, SQL backed, etc.
type KeyValueStore interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}
