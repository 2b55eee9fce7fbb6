package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chartsRenderedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "charts",
		Name:      "rendered_total",
		Help:      "Count of chart render attempts.",
	}, []string{"chart", "status"})

	chartsRenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "charts",
		Name:      "render_duration_seconds",
		Help:      "Duration of rendering a chart.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"chart", "status"})
)

// Charts tracks chart rendering.
type Charts struct{}

// NewCharts constructs a Charts collector.
func NewCharts() *Charts {
	return &Charts{}
}

// ObserveRender records a render outcome; skipped charts had no data.
func (Charts) ObserveRender(chart string, err error, skipped bool, started time.Time) {
	status := "success"
	switch {
	case err != nil:
		status = "error"
	case skipped:
		status = "skipped"
	}
	chartsRenderedTotal.WithLabelValues(chart, status).Inc()
	chartsRenderDuration.WithLabelValues(chart, status).Observe(time.Since(started).Seconds())
}
