// Package payload decodes transaction payloads and checks that each action
// carries the fields it needs. It never reads state.
package payload

import (
	"github.com/dgc-network/smart/pkg/protocol"
	"github.com/dgc-network/smart/pkg/types"
)

// Decode parses payload bytes into an action and validates its fields.
func Decode(payload []byte) (types.Action, error) {
	action, err := protocol.DecodePayload(payload)
	if err != nil {
		return nil, types.WrapInvalidTransaction(err, "Cannot deserialize payload")
	}
	if err := Validate(action); err != nil {
		return nil, err
	}
	return action, nil
}

func missing(format string, args ...interface{}) error {
	return types.WrapInvalidTransaction(ErrMissingField, format, args...)
}

// Validate enforces the per-action field presence rules.
func Validate(action types.Action) error {
	switch a := action.(type) {
	case *types.CreateContractAction:
		return validateContract(a.Name, a.Version, a.Inputs, a.Outputs, len(a.Contract), "Contract bytes cannot be an empty")
	case *types.DeleteContractAction:
		return validateNameVersion(a.Name, a.Version)
	case *types.ExecuteContractAction:
		return validateContract(a.Name, a.Version, a.Inputs, a.Outputs, len(a.Payload), "Contract payload cannot be an empty")

	case *types.CreateContractRegistryAction:
		return validateRegistry(a.Name, a.Owners)
	case *types.DeleteContractRegistryAction:
		if a.Name == "" {
			return missing("Contract Registry name cannot be an empty string")
		}
	case *types.UpdateContractRegistryOwnersAction:
		return validateRegistry(a.Name, a.Owners)

	case *types.CreateNamespaceRegistryAction:
		return validateNamespace(a.Namespace, a.Owners)
	case *types.DeleteNamespaceRegistryAction:
		if a.Namespace == "" {
			return missing("Namespace Registry namespace cannot be an empty string")
		}
	case *types.UpdateNamespaceRegistryOwnersAction:
		return validateNamespace(a.Namespace, a.Owners)
	case *types.CreateNamespaceRegistryPermissionAction:
		return validatePermission(a.Namespace, a.ContractName)
	case *types.DeleteNamespaceRegistryPermissionAction:
		return validatePermission(a.Namespace, a.ContractName)

	case *types.CreateSmartPermissionAction:
		return validateSmartPermission(a.OrgID, a.Name, a.Function, true)
	case *types.UpdateSmartPermissionAction:
		return validateSmartPermission(a.OrgID, a.Name, a.Function, true)
	case *types.DeleteSmartPermissionAction:
		return validateSmartPermission(a.OrgID, a.Name, nil, false)

	case *types.CreateAccountAction:
		return validateAccount(a.OrgID, a.PublicKey)
	case *types.UpdateAccountAction:
		return validateAccount(a.OrgID, a.PublicKey)

	case *types.CreateOrganizationAction:
		switch {
		case a.ID == "":
			return missing("Unique organization ID required")
		case a.Name == "":
			return missing("Organization name required")
		case a.Address == "":
			return missing("Organization address required")
		}
	case *types.UpdateOrganizationAction:
		if a.ID == "" {
			return missing("Unique organization ID required")
		}

	default:
		return types.NewInvalidTransaction("Cannot deserialize payload")
	}
	return nil
}

func validateNameVersion(name, version string) error {
	if name == "" {
		return missing("Contract name cannot be an empty string")
	}
	if version == "" {
		return missing("Contract version cannot be an empty string")
	}
	return nil
}

func validateContract(name, version string, inputs, outputs []string, body int, emptyBody string) error {
	if err := validateNameVersion(name, version); err != nil {
		return err
	}
	if len(inputs) == 0 {
		return missing("Contract inputs cannot be an empty")
	}
	if len(outputs) == 0 {
		return missing("Contract outputs cannot be an empty")
	}
	if body == 0 {
		return missing("%s", emptyBody)
	}
	return nil
}

func validateRegistry(name string, owners []string) error {
	if name == "" {
		return missing("Contract Registry name cannot be an empty string")
	}
	if len(owners) == 0 {
		return missing("Contract Registry owners cannot be an empty")
	}
	return nil
}

func validateNamespace(namespace string, owners []string) error {
	if namespace == "" {
		return missing("Namespace Registry namespace cannot be an empty string")
	}
	if len(owners) == 0 {
		return missing("Namespace owners cannot be an empty")
	}
	return nil
}

func validatePermission(namespace, contractName string) error {
	if namespace == "" {
		return missing("Namespace Registry namespace cannot be an empty string")
	}
	if contractName == "" {
		return missing("Contract name cannot be an empty string")
	}
	return nil
}

func validateSmartPermission(orgID, name string, function []byte, needFunction bool) error {
	if orgID == "" {
		return missing("Organization ID required")
	}
	if name == "" {
		return missing("Smart permission name required")
	}
	if needFunction && len(function) == 0 {
		return missing("Function body required")
	}
	return nil
}

func validateAccount(orgID, publicKey string) error {
	if orgID == "" {
		return missing("Organization ID required")
	}
	if publicKey == "" {
		return missing("Account public_key required")
	}
	return nil
}
