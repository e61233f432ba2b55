package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgc-network/smart/internal/core/payload"
	"github.com/dgc-network/smart/pkg/types"
)

func TestEncodeActionFileReadsContractFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "intkey.wasm"), []byte("\x00asm"), 0644))

	encoded, err := encodeActionFile([]byte(`{
		"action": "CREATE_CONTRACT",
		"name": "intkey",
		"version": "1.0",
		"inputs": ["1cf126"],
		"outputs": ["1cf126"],
		"contract_file": "intkey.wasm"
	}`), dir)
	require.NoError(t, err)

	action, err := payload.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, &types.CreateContractAction{
		Name: "intkey", Version: "1.0",
		Inputs: []string{"1cf126"}, Outputs: []string{"1cf126"},
		Contract: []byte("\x00asm"),
	}, action)
}

func TestEncodeActionFileValidates(t *testing.T) {
	_, err := encodeActionFile([]byte(`{"action": "CREATE_CONTRACT_REGISTRY", "name": "intkey"}`), ".")
	assert.EqualError(t, err, "Contract Registry owners cannot be an empty")

	_, err = encodeActionFile([]byte(`{"action": "FLY"}`), ".")
	assert.EqualError(t, err, `unknown action "FLY"`)

	_, err = encodeActionFile([]byte(`{"action": "CREATE_SMART_PERMISSION", "name": "p", "org_id": "o", "function_file": "missing.wasm"}`), t.TempDir())
	assert.ErrorContains(t, err, "missing.wasm")
}

func TestUpdateAccountKeepsActiveAbsence(t *testing.T) {
	var f actionFile
	f.Action = "UPDATE_ACCOUNT"
	f.OrgID, f.PublicKey = "org1", "02alice"

	action, err := f.toAction(".")
	require.NoError(t, err)
	assert.Nil(t, action.(*types.UpdateAccountAction).Active)

	f.Active = types.BoolPtr(false)
	action, err = f.toAction(".")
	require.NoError(t, err)
	require.NotNil(t, action.(*types.UpdateAccountAction).Active)
	assert.False(t, *action.(*types.UpdateAccountAction).Active)
}

func TestDescribeActionInvertsToAction(t *testing.T) {
	actions := []types.Action{
		&types.ExecuteContractAction{Name: "intkey", Version: "1.0", Inputs: []string{"1cf126"}, Outputs: []string{"1cf126"}, Payload: []byte("inc")},
		&types.CreateNamespaceRegistryPermissionAction{Namespace: "1cf126", ContractName: "intkey", Read: true},
		&types.CreateAccountAction{OrgID: "org1", PublicKey: "02bob", Active: true, Roles: []string{"admin"}},
		&types.UpdateOrganizationAction{ID: "org1", Metadata: []types.KeyValueEntry{{Key: "k", Value: "v"}}},
		&types.DeleteSmartPermissionAction{Name: "p", OrgID: "org1"},
	}
	for _, want := range actions {
		description := describeAction(want)
		got, err := description.toAction(".")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestLookupKind(t *testing.T) {
	kind, keys, err := lookupKind([]string{"contract", "intkey", "1.0"})
	require.NoError(t, err)
	address, err := kind.address(keys)
	require.NoError(t, err)
	assert.Len(t, address, 70)
	assert.Equal(t, "00ec02", address[:6])

	_, _, err = lookupKind([]string{"contract", "intkey"})
	assert.EqualError(t, err, "contract takes 2 key(s): name version")

	_, _, err = lookupKind([]string{"block"})
	assert.ErrorContains(t, err, `unknown kind "block"`)

	kind, keys, err = lookupKind([]string{"namespace-registry", "abc"})
	require.NoError(t, err)
	_, err = kind.address(keys)
	assert.Error(t, err)
}

func TestParseMetadata(t *testing.T) {
	entries, err := parseMetadata([]string{"b=2", "a=1=x"})
	require.NoError(t, err)
	assert.Equal(t, []types.KeyValueEntry{{Key: "b", Value: "2"}, {Key: "a", Value: "1=x"}}, entries)

	_, err = parseMetadata([]string{"novalue"})
	assert.Error(t, err)
}

func TestEmbeddedProfile(t *testing.T) {
	dev, err := embeddedProfile("")
	require.NoError(t, err)
	require.NotNil(t, dev.Log)
	assert.Equal(t, "debug", *dev.Log.Level)

	prod, err := embeddedProfile("production")
	require.NoError(t, err)
	require.NotNil(t, prod.Storage)
	assert.True(t, *prod.Storage.SyncWrites)

	_, err = embeddedProfile("staging")
	assert.Error(t, err)
}
