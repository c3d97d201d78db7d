package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rezkam/taskmind/internal/core"
	"github.com/rezkam/taskmind/internal/storage/compliance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_Compliance(t *testing.T) {
	compliance.RunKeyValueComplianceTest(t, func() (core.KeyValueStore, func()) {
		store, err := Open(context.Background(), filepath.Join(t.TempDir(), "taskmind.db"))
		require.NoError(t, err)
		return store, func() { store.Close() }
	})
}

func TestSQLiteStore_ReopenKeepsValues(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "taskmind.db")

	store, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "ai-todo-view", "calendar"))
	require.NoError(t, store.Close())

	// Migrations must be idempotent across opens.
	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "ai-todo-view")
	require.NoError(t, err)
	assert.Equal(t, "calendar", got)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:memdb?mode=memory", sqliteDSN("file:memdb?mode=memory"))

	dsn := sqliteDSN("/var/lib/taskmind/tasks.db")
	assert.Contains(t, dsn, "file:///var/lib/taskmind/tasks.db?")
	assert.Contains(t, dsn, "mode=rwc")
	assert.Contains(t, dsn, "_pragma=busy_timeout%285000%29")
}
