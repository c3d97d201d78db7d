package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rezkam/taskmind/internal/core"
	"github.com/rezkam/taskmind/internal/storage/compliance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStore_Compliance(t *testing.T) {
	compliance.RunKeyValueComplianceTest(t, func() (core.KeyValueStore, func()) {
		tmpDir, err := os.MkdirTemp("", "fs-store-test-*")
		require.NoError(t, err)

		store, err := NewStore(tmpDir)
		require.NoError(t, err)

		cleanup := func() {
			os.RemoveAll(tmpDir)
		}

		return store, cleanup
	})
}

func TestFSStore_RejectsPathKeys(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "../escape", "nested/key", ".hidden"} {
		t.Run(key, func(t *testing.T) {
			assert.ErrorIs(t, store.Set(ctx, key, "v"), ErrInvalidKey)
			_, err := store.Get(ctx, key)
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestFSStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set(context.Background(), "ai-todo-tasks", "[]"))
	require.NoError(t, store.Set(context.Background(), "ai-todo-tasks", "[{}]"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ai-todo-tasks.json", entries[0].Name())

	data, err := os.ReadFile(filepath.Join(dir, "ai-todo-tasks.json"))
	require.NoError(t, err)
	assert.Equal(t, "[{}]", string(data))
}
