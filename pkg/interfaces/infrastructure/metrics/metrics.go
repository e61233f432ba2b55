// Package metrics defines the recorder components report into.
//
// The Prometheus implementation lives in internal/core/infrastructure/metrics.
package metrics

import "time"

// Outcome labels.
const (
	OutcomeApplied  = "applied"
	OutcomeInvalid  = "invalid"
	OutcomeInternal = "internal"
)

// Recorder receives processing measurements.
type Recorder interface {
	// ObserveTransaction records one Apply call.
	ObserveTransaction(action string, outcome string, elapsed time.Duration)

	// ObserveContract records one entrypoint call. code is the stringified
	// return value, or "none".
	ObserveContract(name string, code string, elapsed time.Duration)

	// SetCompiledModules reports the size of the compiled module cache.
	SetCompiledModules(n int)
}
