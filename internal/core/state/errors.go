package state

import "errors"

var (
	// ErrStateAccess wraps failures reported by the transaction context.
	ErrStateAccess = errors.New("state access failed")
	// ErrStateCorrupt wraps undecodable state entries.
	ErrStateCorrupt = errors.New("state entry cannot be decoded")
)
