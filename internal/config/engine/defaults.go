package engine

import "time"

const (
	// defaultArenaPages is the scratch space (64 KiB pages) the host appends
	// to a contract's memory for marshalled arguments and state values.
	defaultArenaPages uint32 = 16

	// defaultMaxMemoryPages caps guest memory at 64 MiB.
	defaultMaxMemoryPages uint32 = 1024

	defaultExecutionTimeout = 10 * time.Second

	// defaultCompiledCacheSize bounds the number of compiled modules kept.
	defaultCompiledCacheSize = 64

	// defaultMaxCallDepth bounds nested smart permission invocations.
	defaultMaxCallDepth = 4
)
