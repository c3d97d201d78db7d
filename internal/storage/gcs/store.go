package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"github.com/rezkam/taskmind/internal/core"
	"google.golang.org/api/option"
)

// Store is a GCS-based implementation of core.KeyValueStore.
// Each key is one object named <prefix>/<key>.json.
type Store struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewStore creates a new GCS store.
// It assumes the client is authenticated (e.g. via GOOGLE_APPLICATION_CREDENTIALS)
// unless opts say otherwise, e.g. option.WithEndpoint plus
// option.WithoutAuthentication for a local emulator.
func NewStore(ctx context.Context, bucketName, prefix string, opts ...option.ClientOption) (*Store, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &Store{
		client: client,
		bucket: bucketName,
		prefix: prefix,
	}, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) objectName(key string) string {
	return path.Join(s.prefix, key+".json")
}

// Get reads the object stored for key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	obj := s.client.Bucket(s.bucket).Object(s.objectName(key))

	r, err := obj.NewReader(ctx)
	if err != nil {
		// Use errors.Is to handle wrapped errors from GCS client
		if errors.Is(err, storage.ErrObjectNotExist) {
			return "", fmt.Errorf("%w: %s", core.ErrKeyNotFound, key)
		}
		return "", fmt.Errorf("failed to read object: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read object body: %w", err)
	}
	return string(data), nil
}

// Set overwrites the object for key. GCS object writes are atomic: readers
// see either the old or the new value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	obj := s.client.Bucket(s.bucket).Object(s.objectName(key))

	w := obj.NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := io.WriteString(w, value); err != nil {
		w.Close()
		return fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize object: %w", err)
	}
	return nil
}
