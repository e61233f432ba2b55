package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreBasicOperations(t *testing.T) {
	store := New()

	written, err := store.SetState(map[string][]byte{"b": []byte("2"), "a": []byte("1")})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, written)

	values, err := store.GetState([]string{"a", "missing"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a": []byte("1")}, values)

	deleted, err := store.DeleteState([]string{"a", "missing"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, deleted)
	assert.Equal(t, []string{"b"}, store.Keys())
}

func TestStoreCopiesValues(t *testing.T) {
	store := New()
	value := []byte("abc")
	_, err := store.SetState(map[string][]byte{"k": value})
	require.NoError(t, err)
	value[0] = 'x'

	values, err := store.GetState([]string{"k"})
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), values["k"])
}

func TestTxnCommit(t *testing.T) {
	store := New()
	_, err := store.SetState(map[string][]byte{"old": []byte("1")})
	require.NoError(t, err)

	txn := store.Begin()
	_, err = txn.SetState(map[string][]byte{"new": []byte("2")})
	require.NoError(t, err)
	deleted, err := txn.DeleteState([]string{"old"})
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, deleted)

	values, err := txn.GetState([]string{"old", "new"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"new": []byte("2")}, values, "txn sees its own changes")
	assert.Equal(t, []string{"old"}, store.Keys(), "store is untouched before commit")

	require.NoError(t, txn.Commit())
	assert.Equal(t, []string{"new"}, store.Keys())

	_, err = txn.GetState([]string{"new"})
	assert.ErrorIs(t, err, ErrTxnClosed)
}

func TestTxnDiscard(t *testing.T) {
	store := New()
	txn := store.Begin()
	_, err := txn.SetState(map[string][]byte{"k": []byte("v")})
	require.NoError(t, err)
	txn.Discard()

	assert.Empty(t, store.Keys())
	assert.ErrorIs(t, txn.Commit(), ErrTxnClosed)
}

func TestTxnDeleteThenSet(t *testing.T) {
	store := New()
	_, err := store.SetState(map[string][]byte{"k": []byte("1")})
	require.NoError(t, err)

	txn := store.Begin()
	_, err = txn.DeleteState([]string{"k"})
	require.NoError(t, err)
	_, err = txn.SetState(map[string][]byte{"k": []byte("2")})
	require.NoError(t, err)
	require.NoError(t, txn.Commit())

	values, err := store.GetState([]string{"k"})
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), values["k"])
}

func TestTxnDeleteMissing(t *testing.T) {
	txn := New().Begin()
	deleted, err := txn.DeleteState([]string{"nothing"})
	require.NoError(t, err)
	assert.Empty(t, deleted)
}
