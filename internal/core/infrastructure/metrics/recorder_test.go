package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	metricsconfig "github.com/dgc-network/smart/internal/config/metrics"
)

func TestRecorderCounts(t *testing.T) {
	r := New(&metricsconfig.MetricsOptions{Enabled: true, Namespace: "test"})

	r.ObserveTransaction("CreateContract", "applied", time.Millisecond)
	r.ObserveTransaction("CreateContract", "applied", time.Millisecond)
	r.ObserveTransaction("ExecuteContract", "invalid", time.Millisecond)
	r.ObserveContract("intkey", "1", 2*time.Millisecond)
	r.SetCompiledModules(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.transactions.WithLabelValues("CreateContract", "applied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.transactions.WithLabelValues("ExecuteContract", "invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.contracts.WithLabelValues("intkey", "1")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.compiledModules))

	families, err := r.Registry().Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.Contains(t, names, "test_handler_transactions_total")
	assert.Contains(t, names, "test_wasm_execution_duration_seconds")
	assert.Contains(t, names, "test_wasm_compiled_modules")
}

func TestRecordersAreIndependent(t *testing.T) {
	first := New(nil)
	second := New(nil)

	first.ObserveContract("intkey", "1", time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(second.contracts.WithLabelValues("intkey", "1")))
}

func TestNopRecorder(t *testing.T) {
	var r Nop
	assert.NotPanics(t, func() {
		r.ObserveTransaction("a", "b", 0)
		r.ObserveContract("a", "b", 0)
		r.SetCompiledModules(1)
	})
}
