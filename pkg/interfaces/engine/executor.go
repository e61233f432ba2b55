// Package engine defines the boundary between the transaction handler and
// the sandbox that runs contract bytecode.
package engine

import (
	"context"

	"github.com/dgc-network/smart/pkg/interfaces/state"
)

// Invocation is one call of a contract's entrypoint.
type Invocation struct {
	Name      string
	Version   string
	Code      []byte
	Payload   []byte
	Signer    string
	Signature string
}

// Result is what the entrypoint returned. HasResult is false when the
// function produced no value.
type Result struct {
	Code      int32
	HasResult bool
}

// ContractExecutor runs contract bytecode against a transaction context.
// Any returned error is a host side fault, not a contract decision.
type ContractExecutor interface {
	Execute(ctx context.Context, invocation *Invocation, stateCtx state.TransactionContext) (Result, error)
}
