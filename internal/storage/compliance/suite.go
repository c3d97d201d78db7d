package compliance

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rezkam/taskmind/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunKeyValueComplianceTest runs a standard set of tests against a KeyValueStore implementation.
// setup is a function that returns a fresh (clean) store instance for the test.
// cleanup is called after the test to clean up resources (if any).
func RunKeyValueComplianceTest(t *testing.T, setup func() (core.KeyValueStore, func())) {
	t.Run("GetMissingKey", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()

		_, err := store.Get(context.Background(), "ai-todo-missing")
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrKeyNotFound), "expected ErrKeyNotFound, got %v", err)
	})

	t.Run("SetAndGet", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "ai-todo-theme", "dark"))

		got, err := store.Get(ctx, "ai-todo-theme")
		require.NoError(t, err)
		assert.Equal(t, "dark", got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "ai-todo-view", "dashboard"))
		require.NoError(t, store.Set(ctx, "ai-todo-view", "calendar"))

		got, err := store.Get(ctx, "ai-todo-view")
		require.NoError(t, err)
		assert.Equal(t, "calendar", got)
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "ai-todo-theme", "light"))
		require.NoError(t, store.Set(ctx, "ai-todo-view", "list"))

		theme, err := store.Get(ctx, "ai-todo-theme")
		require.NoError(t, err)
		view, err := store.Get(ctx, "ai-todo-view")
		require.NoError(t, err)

		assert.Equal(t, "light", theme)
		assert.Equal(t, "list", view)
	})

	t.Run("EmptyAndLargeValues", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, "ai-todo-empty", ""))
		got, err := store.Get(ctx, "ai-todo-empty")
		require.NoError(t, err)
		assert.Equal(t, "", got)

		large := `[` + strings.Repeat(`{"id":"x","title":"ünïcode ✓"},`, 2000) + `{}]`
		require.NoError(t, store.Set(ctx, "ai-todo-tasks", large))
		got, err = store.Get(ctx, "ai-todo-tasks")
		require.NoError(t, err)
		assert.Equal(t, large, got)
	})

	t.Run("ConcurrentWriters", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		var wg sync.WaitGroup
		for _, v := range []string{"a", "b", "c", "d"} {
			wg.Add(1)
			go func(value string) {
				defer wg.Done()
				assert.NoError(t, store.Set(ctx, "ai-todo-race", value))
			}(v)
		}
		wg.Wait()

		got, err := store.Get(ctx, "ai-todo-race")
		require.NoError(t, err)
		assert.Contains(t, []string{"a", "b", "c", "d"}, got)
	})
}
