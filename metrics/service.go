package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome of a single execution request
type Outcome string

const (
	// OutcomeClientError is a request rejected because of malformed input
	OutcomeClientError Outcome = "client_error"

	// OutcomeInternalError is a request that failed in the gateway or
	// in the node
	OutcomeInternalError Outcome = "internal_error"

	// OutcomeExecuted is a transaction that the node executed and
	// reported without errors
	OutcomeExecuted Outcome = "executed"

	// OutcomeFailed is a transaction for which the node reported errors
	OutcomeFailed Outcome = "failed"
)

var (
	// Labels to use for partitioning requests.
	outcomeLabels = []string{"outcome"}

	// Labels to use for partitioning pipeline latencies.
	stageLabels = []string{"stage"}
)

// ExecutionMetrics are the metrics of the transaction execution pipeline.
type ExecutionMetrics struct {
	// Counts of execution requests partitioned by outcome.
	Requests *prometheus.CounterVec

	// Latencies of each stage of the pipeline.
	StageLatencies *prometheus.SummaryVec
}

// NewExecutionMetrics creates the execution metrics and registers them
// with registerer. Passing prometheus.DefaultRegisterer exposes them
// through the pull and push services.
func NewExecutionMetrics(serviceName string, registerer prometheus.Registerer) *ExecutionMetrics {
	metrics := &ExecutionMetrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: fmt.Sprintf("%s_execute_requests", serviceName),
				Help: "How many execution requests were made, partitioned by outcome.",
			},
			outcomeLabels,
		),
		StageLatencies: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: fmt.Sprintf("%s_execute_stage_durations", serviceName),
				Help: "How long each stage of an execution takes, partitioned by stage.",
			},
			stageLabels,
		),
	}
	registerer.MustRegister(metrics.Requests)
	registerer.MustRegister(metrics.StageLatencies)
	return metrics
}

// Observe records the outcome of a request
func (m *ExecutionMetrics) Observe(outcome Outcome) {
	m.Requests.WithLabelValues(string(outcome)).Inc()
}

// StageTimer creates a new latency timer for the provided stage.
func (m *ExecutionMetrics) StageTimer(stage string) *prometheus.Timer {
	return prometheus.NewTimer(m.StageLatencies.WithLabelValues(stage))
}

// ObserveStage records the latency of a stage
func (m *ExecutionMetrics) ObserveStage(stage string, d time.Duration) {
	m.StageLatencies.WithLabelValues(stage).Observe(d.Seconds())
}
