package handler

import (
	"github.com/dgc-network/smart/internal/core/state"
	"github.com/dgc-network/smart/pkg/types"
)

const adminRole = "admin"

func denied(format string, args ...interface{}) error {
	return types.WrapInvalidTransaction(ErrUnauthorized, format, args...)
}

// isAdmin requires signer to be an active account of orgID holding the admin
// role.
func isAdmin(signer, orgID string, st *state.Accessor) error {
	account, err := st.GetAccount(signer)
	if err != nil {
		return err
	}
	if account == nil {
		return denied("Signer is not an agent: %s", signer)
	}
	if account.OrgID != orgID {
		return denied("Signer is not associated with the organization: %s", signer)
	}
	if !account.HasRole(adminRole) {
		return denied("Signer is not an admin: %s", signer)
	}
	if !account.Active {
		return denied("Admin is not currently an active agent: %s", signer)
	}
	return nil
}

// isAdministrator reports whether signer is listed in the administrators
// setting. A missing setting or entry lists nobody.
func isAdministrator(signer string, st *state.Accessor) (bool, error) {
	keys, ok, err := st.Administrators()
	if err != nil || !ok {
		return false, err
	}
	for _, key := range keys {
		if key == signer {
			return true, nil
		}
	}
	return false, nil
}

// requireAdministrator rejects with message unless signer is an
// administrator.
func requireAdministrator(signer string, st *state.Accessor, message string) error {
	admin, err := isAdministrator(signer, st)
	if err != nil {
		return err
	}
	if !admin {
		return denied(message, signer)
	}
	return nil
}

// requireOwnerOrAdministrator lets owners through and falls back to the
// administrators setting for everyone else.
func requireOwnerOrAdministrator(owner bool, signer string, st *state.Accessor, message string) error {
	if owner {
		return nil
	}
	return requireAdministrator(signer, st, message)
}
