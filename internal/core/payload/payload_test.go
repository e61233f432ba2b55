package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgc-network/smart/pkg/protocol"
	"github.com/dgc-network/smart/pkg/types"
)

func encode(t *testing.T, action types.Action) []byte {
	t.Helper()
	b, err := protocol.EncodePayload(action)
	require.NoError(t, err)
	return b
}

func TestDecodeValidPayload(t *testing.T) {
	action, err := Decode(encode(t, &types.ExecuteContractAction{
		Name: "intkey", Version: "1.0",
		Inputs: []string{"1cf126"}, Outputs: []string{"1cf126"},
		Payload: []byte{1},
	}))
	require.NoError(t, err)
	assert.Equal(t, types.ActionExecuteContract, action.Type())
}

func TestDecodeGarbage(t *testing.T) {
	for _, b := range [][]byte{nil, {0xff, 0xff}, {0x08, 0x63}} {
		_, err := Decode(b)
		require.Error(t, err)
		assert.True(t, types.IsInvalidTransaction(err))
		assert.Equal(t, "Cannot deserialize payload", err.Error())
	}
}

func TestValidateRequiredFields(t *testing.T) {
	wasm := []byte{0x00, 0x61, 0x73, 0x6d}
	ins := []string{"1cf126"}

	cases := []struct {
		name    string
		action  types.Action
		message string
	}{
		{"create contract name", &types.CreateContractAction{Version: "1", Inputs: ins, Outputs: ins, Contract: wasm}, "Contract name cannot be an empty string"},
		{"create contract version", &types.CreateContractAction{Name: "c", Inputs: ins, Outputs: ins, Contract: wasm}, "Contract version cannot be an empty string"},
		{"create contract inputs", &types.CreateContractAction{Name: "c", Version: "1", Outputs: ins, Contract: wasm}, "Contract inputs cannot be an empty"},
		{"create contract outputs", &types.CreateContractAction{Name: "c", Version: "1", Inputs: ins, Contract: wasm}, "Contract outputs cannot be an empty"},
		{"create contract bytes", &types.CreateContractAction{Name: "c", Version: "1", Inputs: ins, Outputs: ins}, "Contract bytes cannot be an empty"},
		{"delete contract version", &types.DeleteContractAction{Name: "c"}, "Contract version cannot be an empty string"},
		{"execute contract payload", &types.ExecuteContractAction{Name: "c", Version: "1", Inputs: ins, Outputs: ins}, "Contract payload cannot be an empty"},
		{"execute contract outputs", &types.ExecuteContractAction{Name: "c", Version: "1", Inputs: ins, Payload: []byte{1}}, "Contract outputs cannot be an empty"},
		{"create registry owners", &types.CreateContractRegistryAction{Name: "c"}, "Contract Registry owners cannot be an empty"},
		{"delete registry name", &types.DeleteContractRegistryAction{}, "Contract Registry name cannot be an empty string"},
		{"update registry name", &types.UpdateContractRegistryOwnersAction{Owners: []string{"o"}}, "Contract Registry name cannot be an empty string"},
		{"create namespace", &types.CreateNamespaceRegistryAction{Owners: []string{"o"}}, "Namespace Registry namespace cannot be an empty string"},
		{"create namespace owners", &types.CreateNamespaceRegistryAction{Namespace: "abcdef"}, "Namespace owners cannot be an empty"},
		{"delete namespace", &types.DeleteNamespaceRegistryAction{}, "Namespace Registry namespace cannot be an empty string"},
		{"update namespace owners", &types.UpdateNamespaceRegistryOwnersAction{Namespace: "abcdef"}, "Namespace owners cannot be an empty"},
		{"create permission contract", &types.CreateNamespaceRegistryPermissionAction{Namespace: "abcdef"}, "Contract name cannot be an empty string"},
		{"delete permission namespace", &types.DeleteNamespaceRegistryPermissionAction{ContractName: "c"}, "Namespace Registry namespace cannot be an empty string"},
		{"create smart permission org", &types.CreateSmartPermissionAction{Name: "p", Function: wasm}, "Organization ID required"},
		{"create smart permission name", &types.CreateSmartPermissionAction{OrgID: "o", Function: wasm}, "Smart permission name required"},
		{"update smart permission function", &types.UpdateSmartPermissionAction{OrgID: "o", Name: "p"}, "Function body required"},
		{"delete smart permission name", &types.DeleteSmartPermissionAction{OrgID: "o"}, "Smart permission name required"},
		{"create account key", &types.CreateAccountAction{OrgID: "o"}, "Account public_key required"},
		{"update account org", &types.UpdateAccountAction{PublicKey: "k"}, "Organization ID required"},
		{"create organization id", &types.CreateOrganizationAction{Name: "n", Address: "a"}, "Unique organization ID required"},
		{"create organization name", &types.CreateOrganizationAction{ID: "o", Address: "a"}, "Organization name required"},
		{"create organization address", &types.CreateOrganizationAction{ID: "o", Name: "n"}, "Organization address required"},
		{"update organization id", &types.UpdateOrganizationAction{Name: "n"}, "Unique organization ID required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.action)
			require.Error(t, err)
			assert.True(t, types.IsInvalidTransaction(err))
			assert.ErrorIs(t, err, ErrMissingField)
			assert.Equal(t, tc.message, err.Error())

			// the same failure surfaces through Decode
			_, err = Decode(encode(t, tc.action))
			require.Error(t, err)
			assert.Equal(t, tc.message, err.Error())
		})
	}
}

func TestValidateAcceptsPartialUpdates(t *testing.T) {
	assert.NoError(t, Validate(&types.UpdateOrganizationAction{ID: "org1"}))
	assert.NoError(t, Validate(&types.UpdateAccountAction{OrgID: "org1", PublicKey: "k"}))
	assert.NoError(t, Validate(&types.DeleteSmartPermissionAction{OrgID: "org1", Name: "p"}))
}
