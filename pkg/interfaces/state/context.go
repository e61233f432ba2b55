// Package state defines the key/value context a transaction is applied
// against.
package state

// TransactionContext is the validator supplied view of global state for one
// transaction. Writes become visible to later reads in the same context and
// are discarded if the transaction fails.
type TransactionContext interface {
	// GetState returns the values of the addresses that exist; missing
	// addresses are absent from the map.
	GetState(addresses []string) (map[string][]byte, error)

	// SetState writes every entry and returns the addresses written.
	SetState(entries map[string][]byte) ([]string, error)

	// DeleteState removes the addresses and returns those that were deleted.
	DeleteState(addresses []string) ([]string, error)
}
