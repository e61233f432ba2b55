package handler

import (
	"github.com/dgc-network/smart/internal/core/state"
	"github.com/dgc-network/smart/pkg/types"
)

const (
	contractRegistryOwnersMessage  = "Only owners or admins can update or delete a contract registry: %s"
	namespaceRegistryOwnersMessage = "Only owners or admins can update or delete a namespace registry: %s"
)

func createContractRegistry(a *types.CreateContractRegistryAction, signer string, st *state.Accessor) error {
	existing, err := st.GetContractRegistry(a.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return types.WrapInvalidTransaction(ErrAlreadyExists, "Contract Registry already exists: %s", a.Name)
	}
	if err := requireAdministrator(signer, st, "Only admins can create a contract registry: %s"); err != nil {
		return err
	}
	return st.SetContractRegistry(a.Name, types.ContractRegistry{
		Name:   a.Name,
		Owners: a.Owners,
	})
}

func loadContractRegistry(name string, st *state.Accessor) (*types.ContractRegistry, error) {
	registry, err := st.GetContractRegistry(name)
	if err != nil {
		return nil, err
	}
	if registry == nil {
		return nil, types.WrapInvalidTransaction(ErrNotFound, "Contract Registry does not exist: %s", name)
	}
	return registry, nil
}

func deleteContractRegistry(a *types.DeleteContractRegistryAction, signer string, st *state.Accessor) error {
	registry, err := loadContractRegistry(a.Name, st)
	if err != nil {
		return err
	}
	if len(registry.Versions) > 0 {
		return types.WrapInvalidTransaction(ErrNotEmpty, "Contract Registry can only be deleted if there are no versions: %s", a.Name)
	}
	if err := requireOwnerOrAdministrator(registry.HasOwner(signer), signer, st, contractRegistryOwnersMessage); err != nil {
		return err
	}
	return st.DeleteContractRegistry(a.Name)
}

func updateContractRegistryOwners(a *types.UpdateContractRegistryOwnersAction, signer string, st *state.Accessor) error {
	registry, err := loadContractRegistry(a.Name, st)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdministrator(registry.HasOwner(signer), signer, st, contractRegistryOwnersMessage); err != nil {
		return err
	}
	registry.Owners = a.Owners
	return st.SetContractRegistry(a.Name, *registry)
}

func createNamespaceRegistry(a *types.CreateNamespaceRegistryAction, signer string, st *state.Accessor) error {
	if len(a.Namespace) < namespaceLength {
		return types.NewInvalidTransaction("Namespace must be at least 6 characters: %s", a.Namespace)
	}
	existing, err := st.GetNamespaceRegistry(a.Namespace)
	if err != nil {
		return err
	}
	if existing != nil {
		return types.WrapInvalidTransaction(ErrAlreadyExists, "Namespace Registry already exists: %s", a.Namespace)
	}
	if err := requireAdministrator(signer, st, "Only admins can create a namespace registry: %s"); err != nil {
		return err
	}
	return st.SetNamespaceRegistry(a.Namespace, types.NamespaceRegistry{
		Namespace: a.Namespace,
		Owners:    a.Owners,
	})
}

// loadNamespaceRegistry fetches the registry and applies the owner-or-admin
// check shared by every mutation of an existing namespace registry.
func loadNamespaceRegistry(namespace, signer string, st *state.Accessor) (*types.NamespaceRegistry, error) {
	registry, err := st.GetNamespaceRegistry(namespace)
	if err != nil {
		return nil, err
	}
	if registry == nil {
		return nil, types.WrapInvalidTransaction(ErrNotFound, "Namespace Registry does not exist: %s", namespace)
	}
	if err := requireOwnerOrAdministrator(registry.HasOwner(signer), signer, st, namespaceRegistryOwnersMessage); err != nil {
		return nil, err
	}
	return registry, nil
}

func deleteNamespaceRegistry(a *types.DeleteNamespaceRegistryAction, signer string, st *state.Accessor) error {
	registry, err := loadNamespaceRegistry(a.Namespace, signer, st)
	if err != nil {
		return err
	}
	if len(registry.Permissions) > 0 {
		return types.WrapInvalidTransaction(ErrNotEmpty, "Namespace Registry can only be deleted if there are no permissions: %s", a.Namespace)
	}
	return st.DeleteNamespaceRegistry(a.Namespace)
}

func updateNamespaceRegistryOwners(a *types.UpdateNamespaceRegistryOwnersAction, signer string, st *state.Accessor) error {
	registry, err := loadNamespaceRegistry(a.Namespace, signer, st)
	if err != nil {
		return err
	}
	registry.Owners = a.Owners
	return st.SetNamespaceRegistry(a.Namespace, *registry)
}

// createNamespaceRegistryPermission replaces any permission already held by
// the contract.
func createNamespaceRegistryPermission(a *types.CreateNamespaceRegistryPermissionAction, signer string, st *state.Accessor) error {
	registry, err := loadNamespaceRegistry(a.Namespace, signer, st)
	if err != nil {
		return err
	}
	registry.Permissions, _ = withoutPermission(registry.Permissions, a.ContractName)
	registry.Permissions = append(registry.Permissions, types.NamespacePermission{
		ContractName: a.ContractName,
		Read:         a.Read,
		Write:        a.Write,
	})
	return st.SetNamespaceRegistry(a.Namespace, *registry)
}

func deleteNamespaceRegistryPermission(a *types.DeleteNamespaceRegistryPermissionAction, signer string, st *state.Accessor) error {
	registry, err := loadNamespaceRegistry(a.Namespace, signer, st)
	if err != nil {
		return err
	}
	var removed bool
	registry.Permissions, removed = withoutPermission(registry.Permissions, a.ContractName)
	if !removed {
		return types.WrapInvalidTransaction(ErrNotFound, "Namespace Registry does not have a permission for : %s", a.ContractName)
	}
	return st.SetNamespaceRegistry(a.Namespace, *registry)
}

func withoutPermission(permissions []types.NamespacePermission, contractName string) ([]types.NamespacePermission, bool) {
	for i := range permissions {
		if permissions[i].ContractName == contractName {
			return append(permissions[:i:i], permissions[i+1:]...), true
		}
	}
	return permissions, false
}
