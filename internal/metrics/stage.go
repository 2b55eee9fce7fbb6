// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dustinsight"

var (
	stageFilesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "stage",
		Name:      "files_total",
		Help:      "Count of dataset files handled by a stage.",
	}, []string{"stage", "network", "status"})

	stageFileDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "stage",
		Name:      "file_duration_seconds",
		Help:      "Duration of processing a single dataset file.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage", "network", "status"})

	stageRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "stage",
		Name:      "records_total",
		Help:      "Count of transaction records processed by a stage.",
	}, []string{"stage", "network"})

	stageRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "stage",
		Name:      "run_duration_seconds",
		Help:      "Duration of a whole stage run.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14), // 1s..~2h
	}, []string{"stage", "network", "status"})
)

// Stage tracks metrics for one processing stage over a dataset.
type Stage struct {
	stage   string
	network string
}

// NewStage constructs a Stage with sane defaults.
func NewStage(stage, network string) *Stage {
	if stage == "" {
		stage = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &Stage{stage: stage, network: network}
}

// ObserveFile records the outcome and duration of processing one file.
func (m Stage) ObserveFile(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	stageFilesTotal.WithLabelValues(m.stage, m.network, status).Inc()
	stageFileDuration.WithLabelValues(m.stage, m.network, status).Observe(time.Since(started).Seconds())
}

// ObserveSkipped records a file skipped because its checkpoint is current.
func (m Stage) ObserveSkipped() {
	stageFilesTotal.WithLabelValues(m.stage, m.network, "skipped").Inc()
}

// ObserveRecords adds n processed records.
func (m Stage) ObserveRecords(n int) {
	if n <= 0 {
		return
	}
	stageRecordsTotal.WithLabelValues(m.stage, m.network).Add(float64(n))
}

// ObserveRun records the outcome and duration of a full run.
func (m Stage) ObserveRun(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	stageRunDuration.WithLabelValues(m.stage, m.network, status).Observe(time.Since(started).Seconds())
}
