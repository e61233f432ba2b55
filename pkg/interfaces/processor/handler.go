// Package processor defines the contract between the validator and a
// transaction family handler.
package processor

import (
	"context"

	"github.com/dgc-network/smart/pkg/interfaces/state"
	"github.com/dgc-network/smart/pkg/types"
)

// TransactionHandler applies transactions of one family.
type TransactionHandler interface {
	FamilyName() string
	FamilyVersions() []string
	// Namespaces are the address prefixes the handler claims for routing.
	Namespaces() []string

	// Apply validates and executes request against ctx. A returned error is a
	// *types.ApplyError of kind types.ErrInvalidTransaction or types.ErrInternal.
	Apply(ctx context.Context, request *types.ProcessRequest, stateCtx state.TransactionContext) error
}
