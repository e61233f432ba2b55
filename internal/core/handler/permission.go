package handler

import (
	"github.com/dgc-network/smart/internal/core/state"
	"github.com/dgc-network/smart/pkg/types"
)

func createSmartPermission(a *types.CreateSmartPermissionAction, signer string, st *state.Accessor) error {
	if err := isAdmin(signer, a.OrgID, st); err != nil {
		return err
	}

	existing, err := st.GetSmartPermission(a.OrgID, a.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return types.WrapInvalidTransaction(ErrAlreadyExists, "Smart Permission already exists: %s", a.Name)
	}
	if err := requireOrganization(a.OrgID, st); err != nil {
		return err
	}

	return st.SetSmartPermission(a.OrgID, a.Name, types.SmartPermission{
		Name:     a.Name,
		OrgID:    a.OrgID,
		Function: a.Function,
	})
}

func loadSmartPermission(orgID, name string, st *state.Accessor) (*types.SmartPermission, error) {
	permission, err := st.GetSmartPermission(orgID, name)
	if err != nil {
		return nil, err
	}
	if permission == nil {
		return nil, types.WrapInvalidTransaction(ErrNotFound, "Smart Permission does not exist: %s", name)
	}
	return permission, nil
}

// updateSmartPermission replaces only the function body.
func updateSmartPermission(a *types.UpdateSmartPermissionAction, signer string, st *state.Accessor) error {
	if err := isAdmin(signer, a.OrgID, st); err != nil {
		return err
	}
	permission, err := loadSmartPermission(a.OrgID, a.Name, st)
	if err != nil {
		return err
	}
	permission.Function = a.Function
	return st.SetSmartPermission(a.OrgID, a.Name, *permission)
}

func deleteSmartPermission(a *types.DeleteSmartPermissionAction, signer string, st *state.Accessor) error {
	if err := isAdmin(signer, a.OrgID, st); err != nil {
		return err
	}
	if _, err := loadSmartPermission(a.OrgID, a.Name, st); err != nil {
		return err
	}
	return st.DeleteSmartPermission(a.OrgID, a.Name)
}
