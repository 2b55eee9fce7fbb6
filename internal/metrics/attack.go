package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	attackEffect = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "attack_metrics",
		Name:      "attack_effect_percent",
		Help:      "Distribution of attack_effect (victim cost over attack cost, percent).",
		Buckets:   prometheus.ExponentialBuckets(1, 10, 8), // 1%..10^7%
	})

	attackCostBTC = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "attack_metrics",
		Name:      "cost_btc_total",
		Help:      "Sum of computed victim and attack costs in BTC.",
	}, []string{"side"})
)

// AttackMetrics tracks the cost and ROI computation.
type AttackMetrics struct{}

// NewAttackMetrics constructs an AttackMetrics collector.
func NewAttackMetrics() *AttackMetrics {
	return &AttackMetrics{}
}

// ObserveRecord records one record's totals and attack effect.
func (AttackMetrics) ObserveRecord(victimBTC, attackBTC, effect float64) {
	attackCostBTC.WithLabelValues("victim").Add(victimBTC)
	attackCostBTC.WithLabelValues("attack").Add(attackBTC)
	attackEffect.Observe(effect)
}
