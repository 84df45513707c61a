package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RPCProcedureCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rpc_procedure_calls_total",
			Help: "Total number of procedure calls by outcome",
		},
		[]string{"path", "kind", "outcome"},
	)

	RPCProcedureDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rpc_procedure_duration_seconds",
			Help:    "Duration of procedure calls in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"path", "kind"},
	)

	RPCValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rpc_validation_failures_total",
			Help: "Total number of procedure inputs rejected before execution",
		},
		[]string{"path"},
	)

	WebMutationsSettledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "web_mutations_settled_total",
			Help: "Total number of settled mutations issued by presentation views",
		},
		[]string{"procedure", "outcome"},
	)
)
