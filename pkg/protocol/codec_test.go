package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/dgc-network/smart/pkg/types"
)

func TestEncodeSettingWireBytes(t *testing.T) {
	b := EncodeSetting(&types.Setting{Entries: []types.SettingEntry{{Key: "a", Value: "b"}}})
	assert.Equal(t, []byte{0x0a, 0x06, 0x0a, 0x01, 'a', 0x12, 0x01, 'b'}, b)

	setting, err := DecodeSetting(b)
	require.NoError(t, err)
	value, ok := setting.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "b", value)
}

func TestEncodePayloadWireBytes(t *testing.T) {
	b, err := EncodePayload(&types.DeleteContractRegistryAction{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x08, 0x05, 0x32, 0x03, 0x0a, 0x01, 'x'}, b)
}

func TestPayloadRoundTrip(t *testing.T) {
	active := false
	actions := []types.Action{
		&types.CreateContractAction{
			Name: "intkey", Version: "1.0",
			Inputs: []string{"00ec01", "1cf126"}, Outputs: []string{"1cf126"},
			Contract: []byte{0x00, 0x61, 0x73, 0x6d},
		},
		&types.ExecuteContractAction{
			Name: "intkey", Version: "1.0",
			Inputs: []string{"1cf126"}, Outputs: []string{"1cf126"},
			Payload: []byte("set a 1"),
		},
		&types.CreateNamespaceRegistryPermissionAction{
			Namespace: "1cf126", ContractName: "intkey", Read: true, Write: false,
		},
		&types.UpdateAccountAction{
			OrgID: "org1", PublicKey: "02ab", Active: &active,
			Roles:    []string{"admin"},
			Metadata: []types.KeyValueEntry{{Key: "k", Value: "v"}},
		},
		&types.UpdateOrganizationAction{ID: "org1", Address: "Main St"},
	}

	for _, action := range actions {
		t.Run(action.Type().String(), func(t *testing.T) {
			b, err := EncodePayload(action)
			require.NoError(t, err)

			decoded, err := DecodePayload(b)
			require.NoError(t, err)
			assert.Equal(t, action, decoded)
		})
	}
}

func TestUpdateAccountActivePresence(t *testing.T) {
	b, err := EncodePayload(&types.UpdateAccountAction{OrgID: "org1", PublicKey: "02ab"})
	require.NoError(t, err)
	decoded, err := DecodePayload(b)
	require.NoError(t, err)
	assert.Nil(t, decoded.(*types.UpdateAccountAction).Active, "absent active stays absent")

	inactive := false
	b, err = EncodePayload(&types.UpdateAccountAction{OrgID: "org1", PublicKey: "02ab", Active: &inactive})
	require.NoError(t, err)
	decoded, err = DecodePayload(b)
	require.NoError(t, err)
	require.NotNil(t, decoded.(*types.UpdateAccountAction).Active)
	assert.False(t, *decoded.(*types.UpdateAccountAction).Active)
}

func TestUpdateAccountExplicitFalseOnWire(t *testing.T) {
	body := protowire.AppendTag(nil, 2, protowire.BytesType)
	body = protowire.AppendString(body, "02ab")

	action, err := decodeAction(types.ActionUpdateAccount, body)
	require.NoError(t, err)
	assert.Nil(t, action.(*types.UpdateAccountAction).Active)

	body = protowire.AppendTag(body, 3, protowire.VarintType)
	body = protowire.AppendVarint(body, 0)
	action, err = decodeAction(types.ActionUpdateAccount, body)
	require.NoError(t, err)
	require.NotNil(t, action.(*types.UpdateAccountAction).Active)
	assert.False(t, *action.(*types.UpdateAccountAction).Active)
}

func TestDecodePayloadMissingBodyIsEmptyAction(t *testing.T) {
	decoded, err := DecodePayload([]byte{0x08, byte(types.ActionDeleteContract)})
	require.NoError(t, err)
	assert.Equal(t, &types.DeleteContractAction{}, decoded)
}

func TestDecodePayloadErrors(t *testing.T) {
	t.Run("unset action", func(t *testing.T) {
		_, err := DecodePayload(nil)
		assert.ErrorIs(t, err, ErrUnknownAction)
	})

	t.Run("out of range action", func(t *testing.T) {
		_, err := DecodePayload([]byte{0x08, 0x7f})
		assert.ErrorIs(t, err, ErrUnknownAction)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := DecodePayload([]byte{0x08, 0x05, 0x32, 0x09, 0x0a})
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("wrong wire type in action body", func(t *testing.T) {
		// DeleteContractRegistry with name encoded as a varint
		_, err := DecodePayload([]byte{0x08, 0x05, 0x32, 0x02, 0x08, 0x01})
		assert.ErrorIs(t, err, ErrMalformed)
	})
}

func TestDecodeSkipsUnknownFields(t *testing.T) {
	var item []byte
	item = appendString(item, 1, "perm")
	item = appendString(item, 2, "org1")
	item = protowire.AppendTag(item, 99, protowire.VarintType)
	item = protowire.AppendVarint(item, 7)
	list := appendMessage(nil, 1, item)

	decoded, err := DecodeSmartPermissions(list)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, types.SmartPermission{Name: "perm", OrgID: "org1"}, decoded[0])
}

func TestStateListRoundTrip(t *testing.T) {
	registries := []types.ContractRegistry{{
		Name:     "intkey",
		Versions: []types.ContractVersion{{Version: "1.0", ContractSha512: "abc", Creator: "02ab"}},
		Owners:   []string{"02ab", "03cd"},
	}}
	decoded, err := DecodeContractRegistries(EncodeContractRegistries(registries))
	require.NoError(t, err)
	assert.Equal(t, registries, decoded)

	namespaces := []types.NamespaceRegistry{{
		Namespace:   "1cf126",
		Owners:      []string{"02ab"},
		Permissions: []types.NamespacePermission{{ContractName: "intkey", Read: true, Write: true}},
	}}
	decodedNamespaces, err := DecodeNamespaceRegistries(EncodeNamespaceRegistries(namespaces))
	require.NoError(t, err)
	assert.Equal(t, namespaces, decodedNamespaces)

	accounts := []types.Account{{OrgID: "org1", PublicKey: "02ab", Active: true, Roles: []string{"admin"}}}
	decodedAccounts, err := DecodeAccounts(EncodeAccounts(accounts))
	require.NoError(t, err)
	assert.Equal(t, accounts, decodedAccounts)
}

func TestDecodeEmptyList(t *testing.T) {
	list, err := DecodeContracts(nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDecodeMalformedList(t *testing.T) {
	_, err := DecodeOrganizations([]byte{0x0a, 0x05, 0x0a})
	assert.ErrorIs(t, err, ErrMalformed)
}
