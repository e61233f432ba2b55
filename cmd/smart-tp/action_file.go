package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgc-network/smart/pkg/types"
)

// actionFile is the JSON description of one payload action. Byte fields are
// base64; contract_file and function_file name a wasm file relative to the
// description instead.
type actionFile struct {
	Action string `json:"action"`

	Name    string   `json:"name,omitempty"`
	Version string   `json:"version,omitempty"`
	Inputs  []string `json:"inputs,omitempty"`
	Outputs []string `json:"outputs,omitempty"`
	Owners  []string `json:"owners,omitempty"`

	Contract     []byte `json:"contract,omitempty"`
	ContractFile string `json:"contract_file,omitempty"`
	Payload      []byte `json:"payload,omitempty"`

	Namespace    string `json:"namespace,omitempty"`
	ContractName string `json:"contract_name,omitempty"`
	Read         bool   `json:"read,omitempty"`
	Write        bool   `json:"write,omitempty"`

	OrgID        string `json:"org_id,omitempty"`
	Function     []byte `json:"function,omitempty"`
	FunctionFile string `json:"function_file,omitempty"`

	PublicKey string                `json:"public_key,omitempty"`
	Active    *bool                 `json:"active,omitempty"`
	Roles     []string              `json:"roles,omitempty"`
	ID        string                `json:"id,omitempty"`
	Address   string                `json:"address,omitempty"`
	Metadata  []types.KeyValueEntry `json:"metadata,omitempty"`
}

func readRelative(baseDir, path string) ([]byte, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// toAction builds the typed action; file references resolve against baseDir.
func (f *actionFile) toAction(baseDir string) (types.Action, error) {
	actionType, ok := types.ParseActionType(f.Action)
	if !ok {
		return nil, fmt.Errorf("unknown action %q", f.Action)
	}

	contract := f.Contract
	if f.ContractFile != "" {
		data, err := readRelative(baseDir, f.ContractFile)
		if err != nil {
			return nil, err
		}
		contract = data
	}
	function := f.Function
	if f.FunctionFile != "" {
		data, err := readRelative(baseDir, f.FunctionFile)
		if err != nil {
			return nil, err
		}
		function = data
	}

	switch actionType {
	case types.ActionCreateContract:
		return &types.CreateContractAction{Name: f.Name, Version: f.Version, Inputs: f.Inputs, Outputs: f.Outputs, Contract: contract}, nil
	case types.ActionDeleteContract:
		return &types.DeleteContractAction{Name: f.Name, Version: f.Version}, nil
	case types.ActionExecuteContract:
		return &types.ExecuteContractAction{Name: f.Name, Version: f.Version, Inputs: f.Inputs, Outputs: f.Outputs, Payload: f.Payload}, nil
	case types.ActionCreateContractRegistry:
		return &types.CreateContractRegistryAction{Name: f.Name, Owners: f.Owners}, nil
	case types.ActionDeleteContractRegistry:
		return &types.DeleteContractRegistryAction{Name: f.Name}, nil
	case types.ActionUpdateContractRegistryOwners:
		return &types.UpdateContractRegistryOwnersAction{Name: f.Name, Owners: f.Owners}, nil
	case types.ActionCreateNamespaceRegistry:
		return &types.CreateNamespaceRegistryAction{Namespace: f.Namespace, Owners: f.Owners}, nil
	case types.ActionDeleteNamespaceRegistry:
		return &types.DeleteNamespaceRegistryAction{Namespace: f.Namespace}, nil
	case types.ActionUpdateNamespaceRegistryOwners:
		return &types.UpdateNamespaceRegistryOwnersAction{Namespace: f.Namespace, Owners: f.Owners}, nil
	case types.ActionCreateNamespaceRegistryPermission:
		return &types.CreateNamespaceRegistryPermissionAction{Namespace: f.Namespace, ContractName: f.ContractName, Read: f.Read, Write: f.Write}, nil
	case types.ActionDeleteNamespaceRegistryPermission:
		return &types.DeleteNamespaceRegistryPermissionAction{Namespace: f.Namespace, ContractName: f.ContractName}, nil
	case types.ActionCreateSmartPermission:
		return &types.CreateSmartPermissionAction{Name: f.Name, OrgID: f.OrgID, Function: function}, nil
	case types.ActionUpdateSmartPermission:
		return &types.UpdateSmartPermissionAction{Name: f.Name, OrgID: f.OrgID, Function: function}, nil
	case types.ActionDeleteSmartPermission:
		return &types.DeleteSmartPermissionAction{Name: f.Name, OrgID: f.OrgID}, nil
	case types.ActionCreateAccount:
		return &types.CreateAccountAction{OrgID: f.OrgID, PublicKey: f.PublicKey, Active: f.Active != nil && *f.Active, Roles: f.Roles, Metadata: f.Metadata}, nil
	case types.ActionUpdateAccount:
		return &types.UpdateAccountAction{OrgID: f.OrgID, PublicKey: f.PublicKey, Active: f.Active, Roles: f.Roles, Metadata: f.Metadata}, nil
	case types.ActionCreateOrganization:
		return &types.CreateOrganizationAction{ID: f.ID, Name: f.Name, Address: f.Address, Metadata: f.Metadata}, nil
	case types.ActionUpdateOrganization:
		return &types.UpdateOrganizationAction{ID: f.ID, Name: f.Name, Address: f.Address, Metadata: f.Metadata}, nil
	}
	return nil, fmt.Errorf("action %q cannot be encoded", f.Action)
}

// describeAction is the inverse of toAction, with byte fields inline.
func describeAction(action types.Action) actionFile {
	f := actionFile{Action: action.Type().String()}
	switch a := action.(type) {
	case *types.CreateContractAction:
		f.Name, f.Version, f.Inputs, f.Outputs, f.Contract = a.Name, a.Version, a.Inputs, a.Outputs, a.Contract
	case *types.DeleteContractAction:
		f.Name, f.Version = a.Name, a.Version
	case *types.ExecuteContractAction:
		f.Name, f.Version, f.Inputs, f.Outputs, f.Payload = a.Name, a.Version, a.Inputs, a.Outputs, a.Payload
	case *types.CreateContractRegistryAction:
		f.Name, f.Owners = a.Name, a.Owners
	case *types.DeleteContractRegistryAction:
		f.Name = a.Name
	case *types.UpdateContractRegistryOwnersAction:
		f.Name, f.Owners = a.Name, a.Owners
	case *types.CreateNamespaceRegistryAction:
		f.Namespace, f.Owners = a.Namespace, a.Owners
	case *types.DeleteNamespaceRegistryAction:
		f.Namespace = a.Namespace
	case *types.UpdateNamespaceRegistryOwnersAction:
		f.Namespace, f.Owners = a.Namespace, a.Owners
	case *types.CreateNamespaceRegistryPermissionAction:
		f.Namespace, f.ContractName, f.Read, f.Write = a.Namespace, a.ContractName, a.Read, a.Write
	case *types.DeleteNamespaceRegistryPermissionAction:
		f.Namespace, f.ContractName = a.Namespace, a.ContractName
	case *types.CreateSmartPermissionAction:
		f.Name, f.OrgID, f.Function = a.Name, a.OrgID, a.Function
	case *types.UpdateSmartPermissionAction:
		f.Name, f.OrgID, f.Function = a.Name, a.OrgID, a.Function
	case *types.DeleteSmartPermissionAction:
		f.Name, f.OrgID = a.Name, a.OrgID
	case *types.CreateAccountAction:
		f.OrgID, f.PublicKey, f.Active, f.Roles, f.Metadata = a.OrgID, a.PublicKey, types.BoolPtr(a.Active), a.Roles, a.Metadata
	case *types.UpdateAccountAction:
		f.OrgID, f.PublicKey, f.Active, f.Roles, f.Metadata = a.OrgID, a.PublicKey, a.Active, a.Roles, a.Metadata
	case *types.CreateOrganizationAction:
		f.ID, f.Name, f.Address, f.Metadata = a.ID, a.Name, a.Address, a.Metadata
	case *types.UpdateOrganizationAction:
		f.ID, f.Name, f.Address, f.Metadata = a.ID, a.Name, a.Address, a.Metadata
	}
	return f
}
