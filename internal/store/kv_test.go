package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tasktracker/internal/store"
	"github.com/nhle/tasktracker/tests/testutil"
)

// exerciseKV runs the shared KV contract against a backend.
func exerciseKV(t *testing.T, kv store.KV) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		v, ok, err := kv.Get(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "k", `[{"id":"t_1"}]`))
		v, ok, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":"t_1"}]`, v)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "k", "first"))
		require.NoError(t, kv.Set(ctx, "k", "second"))
		v, _, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "second", v)
	})

	t.Run("empty value is present", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "blank", ""))
		_, ok, err := kv.Get(ctx, "blank")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "gone", "x"))
		require.NoError(t, kv.Remove(ctx, "gone"))
		_, ok, err := kv.Get(ctx, "gone")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, kv.Remove(ctx, "gone"), "removing twice is fine")
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "a", "1"))
		require.NoError(t, kv.Set(ctx, "b", "2"))
		require.NoError(t, kv.Clear(ctx))
		for _, k := range []string{"a", "b", "k"} {
			_, ok, err := kv.Get(ctx, k)
			require.NoError(t, err)
			assert.False(t, ok, "key %s survived Clear", k)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	exerciseKV(t, store.NewMemoryStore())
}

func TestMemoryStoreClosed(t *testing.T) {
	m := store.NewMemoryStore()
	require.NoError(t, m.Close())

	_, _, err := m.Get(context.Background(), "k")
	assert.ErrorIs(t, err, store.ErrClosed)
	assert.ErrorIs(t, m.Set(context.Background(), "k", "v"), store.ErrClosed)
}

func TestSQLiteStore(t *testing.T) {
	exerciseKV(t, testutil.NewTestStore(t))
}

func TestSQLiteStoreMigrations(t *testing.T) {
	s := testutil.NewTestStore(t)

	v, err := s.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestSQLiteStoreKeys(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	require.NoError(t, s.Set(ctx, "b", "2"))
	require.NoError(t, s.Set(ctx, "a", "1"))
	require.NoError(t, s.Set(ctx, "a", "3"))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestSQLiteStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/tasks.db"

	s, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "todo_tasks_v1", "[]"))
	require.NoError(t, s.Close())

	s, err = store.NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(ctx, "todo_tasks_v1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	version, err := s.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, version, "migrations are not re-applied")
}
