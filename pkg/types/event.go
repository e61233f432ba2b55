package types

import "time"

// Event topics, relative to the configured topic prefix.
const (
	TopicTransactionApplied  = "transaction.applied"
	TopicTransactionRejected = "transaction.rejected"
	TopicContractExecuted    = "contract.executed"
)

// TransactionEvent describes the outcome of one apply.
type TransactionEvent struct {
	ID        string
	Action    ActionType
	Signer    string
	Signature string
	Error     string
	Internal  bool
	Duration  time.Duration
}

// ContractExecutionEvent is published after a contract entrypoint returns.
type ContractExecutionEvent struct {
	Name       string
	Version    string
	Signer     string
	ReturnCode int32
	HasResult  bool
	Duration   time.Duration
}
