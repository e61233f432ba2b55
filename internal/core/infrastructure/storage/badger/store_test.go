package badger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	badgerconfig "github.com/dgc-network/smart/internal/config/storage/badger"
	logimpl "github.com/dgc-network/smart/internal/core/infrastructure/log"
)

func newTestStore(t *testing.T, cache bool) *Store {
	t.Helper()
	store, err := New(&badgerconfig.BadgerOptions{
		InMemory:        true,
		CacheEnabled:    cache,
		CacheLifeWindow: time.Minute,
		CacheMaxSizeMB:  8,
	}, logimpl.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreSetGetDelete(t *testing.T) {
	for _, cache := range []bool{false, true} {
		store := newTestStore(t, cache)

		written, err := store.SetState(map[string][]byte{"a": []byte("1"), "b": []byte("2")})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, written)

		values, err := store.GetState([]string{"a", "b", "c"})
		require.NoError(t, err)
		assert.Equal(t, map[string][]byte{"a": []byte("1"), "b": []byte("2")}, values)

		deleted, err := store.DeleteState([]string{"a", "c"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, deleted)

		values, err = store.GetState([]string{"a"})
		require.NoError(t, err)
		assert.Empty(t, values, "cache=%v", cache)
	}
}

func TestTransactionCommitAndDiscard(t *testing.T) {
	store := newTestStore(t, true)
	_, err := store.SetState(map[string][]byte{"k": []byte("committed")})
	require.NoError(t, err)

	// warm the cache
	_, err = store.GetState([]string{"k"})
	require.NoError(t, err)

	txn, err := store.Begin()
	require.NoError(t, err)
	_, err = txn.SetState(map[string][]byte{"k": []byte("pending")})
	require.NoError(t, err)

	values, err := txn.GetState([]string{"k"})
	require.NoError(t, err)
	assert.Equal(t, []byte("pending"), values["k"], "transaction reads its own write, not the cache")

	txn.Discard()
	values, err = store.GetState([]string{"k"})
	require.NoError(t, err)
	assert.Equal(t, []byte("committed"), values["k"])

	txn, err = store.Begin()
	require.NoError(t, err)
	_, err = txn.SetState(map[string][]byte{"k": []byte("new")})
	require.NoError(t, err)
	require.NoError(t, txn.Commit())
	assert.True(t, txn.IsCommitted())

	values, err = store.GetState([]string{"k"})
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), values["k"], "commit invalidates the cached value")

	_, err = txn.GetState([]string{"k"})
	assert.ErrorIs(t, err, ErrTxnClosed)
}

func TestKeysByPrefix(t *testing.T) {
	store := newTestStore(t, false)
	_, err := store.SetState(map[string][]byte{"00ec01b": {1}, "00ec01a": {1}, "00ec02a": {1}})
	require.NoError(t, err)

	keys, err := store.Keys("00ec01")
	require.NoError(t, err)
	assert.Equal(t, []string{"00ec01a", "00ec01b"}, keys)
}

func TestClosedStore(t *testing.T) {
	store := newTestStore(t, false)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, err := store.Begin()
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestOverlappingTransactionDoesNotCacheStaleValue(t *testing.T) {
	store := newTestStore(t, true)
	_, err := store.SetState(map[string][]byte{"k": []byte("old")})
	require.NoError(t, err)

	older, err := store.Begin()
	require.NoError(t, err)
	defer older.Discard()

	newer, err := store.Begin()
	require.NoError(t, err)
	_, err = newer.SetState(map[string][]byte{"k": []byte("new")})
	require.NoError(t, err)
	require.NoError(t, newer.Commit())

	values, err := older.GetState([]string{"k"})
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), values["k"], "snapshot isolation")
	older.Discard()

	values, err = store.GetState([]string{"k"})
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), values["k"])

	// a fresh read fills the cache with the committed value
	values, err = store.GetState([]string{"k"})
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), values["k"])
}
