// Package metrics records processing measurements in Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	metricsconfig "github.com/dgc-network/smart/internal/config/metrics"
	"github.com/dgc-network/smart/pkg/interfaces/infrastructure/metrics"
)

// Recorder is the Prometheus backed metrics.Recorder.
type Recorder struct {
	registry *prometheus.Registry

	transactions        *prometheus.CounterVec
	transactionDuration *prometheus.HistogramVec
	contracts           *prometheus.CounterVec
	contractDuration    *prometheus.HistogramVec
	compiledModules     prometheus.Gauge
}

var _ metrics.Recorder = (*Recorder)(nil)

// New registers the collectors on a private registry.
func New(options *metricsconfig.MetricsOptions) *Recorder {
	namespace := "smart"
	if options != nil && options.Namespace != "" {
		namespace = options.Namespace
	}

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		transactions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "handler",
				Name:      "transactions_total",
				Help:      "Transactions applied, by action and outcome",
			},
			[]string{"action", "outcome"},
		),
		transactionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "handler",
				Name:      "apply_duration_seconds",
				Help:      "Time spent in Apply",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"action"},
		),
		contracts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "wasm",
				Name:      "executions_total",
				Help:      "Contract entrypoint calls, by contract and return code",
			},
			[]string{"contract", "code"},
		),
		contractDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "wasm",
				Name:      "execution_duration_seconds",
				Help:      "Contract execution time",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"contract"},
		),
		compiledModules: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "wasm",
			Name:      "compiled_modules",
			Help:      "Compiled modules held in the cache",
		}),
	}
}

func (r *Recorder) ObserveTransaction(action, outcome string, elapsed time.Duration) {
	r.transactions.WithLabelValues(action, outcome).Inc()
	r.transactionDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveContract(name, code string, elapsed time.Duration) {
	r.contracts.WithLabelValues(name, code).Inc()
	r.contractDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}

func (r *Recorder) SetCompiledModules(n int) {
	r.compiledModules.Set(float64(n))
}

// Registry exposes the collectors for scraping or inspection.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) ObserveTransaction(string, string, time.Duration) {}
func (Nop) ObserveContract(string, string, time.Duration)    {}
func (Nop) SetCompiledModules(int)                           {}
