package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkpointOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "checkpoint",
		Name:      "operations_total",
		Help:      "Count of checkpoint store operations.",
	}, []string{"operation", "status"})

	checkpointOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "checkpoint",
		Name:      "operation_duration_seconds",
		Help:      "Duration of checkpoint store operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

// Checkpoint tracks metrics for checkpoint store calls.
type Checkpoint struct{}

// NewCheckpoint constructs a metrics collector for the checkpoint store.
func NewCheckpoint() *Checkpoint {
	return &Checkpoint{}
}

// Observe records a single store call outcome and duration.
func (Checkpoint) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	checkpointOperationsTotal.WithLabelValues(operation, status).Inc()
	checkpointOperationDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
