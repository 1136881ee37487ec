package iokv

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/huangsam/casemap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStoreSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "store_test.db")
	store, err := NewKVStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Absent key reports found=false without error
	_, found, err := store.Load("missing")
	assert.NoError(t, err)
	assert.False(t, found)

	// Save then load round-trips the value
	err = store.Save("folder:one", []byte(`{"name":"Discovery"}`))
	require.NoError(t, err)
	value, found, err := store.Load("folder:one")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"name":"Discovery"}`, string(value))

	// Save replaces a previous value
	err = store.Save("folder:one", []byte(`{"name":"Renamed"}`))
	require.NoError(t, err)
	value, found, err = store.Load("folder:one")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"name":"Renamed"}`, string(value))

	// Status counts the persisted keys
	err = store.Save("folder:two", []byte(`{}`))
	require.NoError(t, err)
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.Equal(t, 2, status.Keys)
	assert.Greater(t, status.SizeKB, 0.0)

	// Clear removes everything
	err = store.Clear()
	require.NoError(t, err)
	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 0, status.Keys)
}

func TestKVStoreNoneBackend(t *testing.T) {
	store, err := NewKVStore(schema.NoneBackend, "")
	require.NoError(t, err)

	// Save is a no-op and Load never finds anything
	err = store.Save("key", []byte("value"))
	assert.NoError(t, err)
	_, found, err := store.Load("key")
	assert.NoError(t, err)
	assert.False(t, found)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, 0, status.Keys)

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Close())
}

func TestKVStoreUnsupportedBackend(t *testing.T) {
	_, err := NewKVStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store backend")
}

func TestStoreManagerLifecycle(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "manager_test.db")

	err := InitStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer CloseStore()

	manager := GetManager()
	require.NotNil(t, manager)
	require.NotNil(t, manager.GetStore())

	err = manager.GetStore().Save("ping", []byte("pong"))
	require.NoError(t, err)

	// Re-initialization replaces the previous store cleanly
	err = InitStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)

	value, found, err := GetManager().GetStore().Load("ping")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "pong", string(value))

	// Double close is safe
	CloseStore()
	CloseStore()
}

func TestMockStore(t *testing.T) {
	store := NewMockStore()

	err := store.Save("case:a", []byte("payload"))
	require.NoError(t, err)
	value, found, err := store.Load("case:a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "payload", string(value))

	// Loaded values are copies, mutating them leaves the store intact
	value[0] = 'X'
	fresh, _, err := store.Load("case:a")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(fresh))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.Keys)

	require.NoError(t, store.Clear())
	_, found, err = store.Load("case:a")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMockStoreFailureInjection(t *testing.T) {
	store := NewMockStore()
	boom := errors.New("boom")

	store.FailSave = boom
	assert.ErrorIs(t, store.Save("k", nil), boom)

	store.FailLoad = boom
	_, _, err := store.Load("k")
	assert.ErrorIs(t, err, boom)
}
