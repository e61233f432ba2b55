package wasm

import "errors"

var (
	// ErrExternals marks a fatal host call failure. Every error below wraps
	// it, so errors.Is(err, ErrExternals) identifies any host side abort.
	ErrExternals = errors.New("externals error")

	ErrArenaExhausted    = wrapExternals("arena exhausted")
	ErrOutOfBounds       = wrapExternals("memory access out of bounds")
	ErrUnknownPointer    = wrapExternals("unknown pointer")
	ErrUnknownCollection = wrapExternals("unknown collection")
	ErrOddStateList      = wrapExternals("set_state needs address/data pairs")
	ErrStateAccess       = wrapExternals("state access failed")
	ErrCallDepth         = wrapExternals("smart permission call depth exceeded")
	ErrNoResult          = wrapExternals("smart permission returned no result")
	ErrNoExecution       = wrapExternals("host function called outside an execution")

	ErrCompile      = errors.New("wasm module failed to compile")
	ErrInstantiate  = errors.New("wasm module failed to instantiate")
	ErrNoMemory     = errors.New("wasm module does not export memory")
	ErrNoEntrypoint = errors.New("wasm module does not export entrypoint")
	ErrTrap         = errors.New("wasm execution trapped")
	ErrTimeout      = errors.New("wasm execution timed out")
	ErrClosed       = errors.New("wasm engine closed")
)

type externalsError struct {
	msg string
}

func (e *externalsError) Error() string { return e.msg }

func (e *externalsError) Unwrap() error { return ErrExternals }

func wrapExternals(msg string) error {
	return &externalsError{msg: msg}
}
