package kvstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nested", "loopview.db")
	store, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, path
}

func exerciseStore(t *testing.T, store Store) {
	t.Helper()

	_, ok, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("theme", "light"))
	require.NoError(t, store.Set("theme", "high_contrast"))

	value, ok, err := store.Get("theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "high_contrast", value)

	require.NoError(t, store.Delete("theme"))
	_, ok, err = store.Get("theme")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete("theme"))

	require.NoError(t, store.Set("theme", "light"))
	require.NoError(t, store.Set("loopview:nodePositions", "{}"))
	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"loopview:nodePositions", "theme"}, keys)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemoryClosed(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Close())

	assert.ErrorIs(t, m.Set("k", "v"), ErrClosed)
	_, _, err := m.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = m.Keys()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSQLite(t *testing.T) {
	store, _ := newTestSQLite(t)
	exerciseStore(t, store)
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	store, path := newTestSQLite(t)
	require.NoError(t, store.Set("loopview:nodePositions", `{"a":{"x":1,"y":2}}`))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get("loopview:nodePositions")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":{"x":1,"y":2}}`, value)
}

func TestSQLiteKeys(t *testing.T) {
	store, _ := newTestSQLite(t)
	require.NoError(t, store.Set("theme", "light"))
	require.NoError(t, store.Set("loopview:nodePositions", "{}"))

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"loopview:nodePositions", "theme"}, keys)
}
