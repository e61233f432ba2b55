package handler

import (
	"github.com/dgc-network/smart/internal/core/state"
	"github.com/dgc-network/smart/pkg/types"
)

func requireOrganization(orgID string, st *state.Accessor) error {
	organization, err := st.GetOrganization(orgID)
	if err != nil {
		return err
	}
	if organization == nil {
		return types.WrapInvalidTransaction(ErrNotFound, "Organization does not exist: %s", orgID)
	}
	return nil
}

// createAccount checks the organization before the duplicate so that a
// missing organization is always reported first.
func createAccount(a *types.CreateAccountAction, signer string, st *state.Accessor) error {
	if err := isAdmin(signer, a.OrgID, st); err != nil {
		return err
	}
	if err := requireOrganization(a.OrgID, st); err != nil {
		return err
	}

	existing, err := st.GetAccount(a.PublicKey)
	if err != nil {
		return err
	}
	if existing != nil {
		return types.WrapInvalidTransaction(ErrAlreadyExists, "Account already exists: %s", a.PublicKey)
	}

	return st.SetAccount(a.PublicKey, types.Account{
		OrgID:     a.OrgID,
		PublicKey: a.PublicKey,
		Active:    a.Active,
		Roles:     a.Roles,
		Metadata:  a.Metadata,
	})
}

// updateAccount merges the non-empty fields of the payload. Active changes
// only when the payload carries it, and never for the signer's own account.
func updateAccount(a *types.UpdateAccountAction, signer string, st *state.Accessor) error {
	if err := isAdmin(signer, a.OrgID, st); err != nil {
		return err
	}

	account, err := st.GetAccount(a.PublicKey)
	if err != nil {
		return err
	}
	if account == nil {
		return types.WrapInvalidTransaction(ErrNotFound, "Account does not exists: %s", a.PublicKey)
	}

	if len(a.Roles) > 0 {
		account.Roles = a.Roles
	}
	if len(a.Metadata) > 0 {
		account.Metadata = a.Metadata
	}
	if a.Active != nil && *a.Active != account.Active {
		if signer == a.PublicKey {
			return denied("Admin may not deactivate themselves: %s", signer)
		}
		account.Active = *a.Active
	}
	return st.SetAccount(a.PublicKey, *account)
}

func createOrganization(a *types.CreateOrganizationAction, signer string, st *state.Accessor) error {
	if err := isAdmin(signer, a.ID, st); err != nil {
		return err
	}

	existing, err := st.GetOrganization(a.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return types.WrapInvalidTransaction(ErrAlreadyExists, "Organization already exists: %s", a.ID)
	}

	return st.SetOrganization(a.ID, types.Organization{
		OrgID:    a.ID,
		Name:     a.Name,
		Address:  a.Address,
		Metadata: a.Metadata,
	})
}

func updateOrganization(a *types.UpdateOrganizationAction, signer string, st *state.Accessor) error {
	if err := isAdmin(signer, a.ID, st); err != nil {
		return err
	}

	organization, err := st.GetOrganization(a.ID)
	if err != nil {
		return err
	}
	if organization == nil {
		return types.WrapInvalidTransaction(ErrNotFound, "Organization does not exist: %s", a.ID)
	}

	if a.Name != "" {
		organization.Name = a.Name
	}
	if a.Address != "" {
		organization.Address = a.Address
	}
	if len(a.Metadata) > 0 {
		organization.Metadata = a.Metadata
	}
	return st.SetOrganization(a.ID, *organization)
}
