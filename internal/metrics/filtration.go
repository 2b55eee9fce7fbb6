package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	filtrationFeeRatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "filtration",
		Name:      "fee_rates_total",
		Help:      "Count of sub-transaction fee rates collected for the outlier threshold.",
	})

	filtrationThreshold = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "filtration",
		Name:      "fee_rate_threshold",
		Help:      "Quartiles and upper fence of the sub-transaction fee rate distribution (sat/vB).",
	}, []string{"bound"})

	filtrationVerdictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "filtration",
		Name:      "verdicts_total",
		Help:      "Count of records by dust_attacker verdict.",
	}, []string{"dust_attacker"})
)

// Filtration tracks the fee rate outlier filtration.
type Filtration struct{}

// NewFiltration constructs a Filtration collector.
func NewFiltration() *Filtration {
	return &Filtration{}
}

// ObserveFeeRates adds n collected fee rates.
func (Filtration) ObserveFeeRates(n int) {
	filtrationFeeRatesTotal.Add(float64(n))
}

// ObserveThreshold publishes the computed quartiles and fence.
func (Filtration) ObserveThreshold(q1, q3, upper float64) {
	filtrationThreshold.WithLabelValues("q1").Set(q1)
	filtrationThreshold.WithLabelValues("q3").Set(q3)
	filtrationThreshold.WithLabelValues("upper").Set(upper)
}

// ObserveVerdict counts one record verdict ("1" or "0").
func (Filtration) ObserveVerdict(verdict string) {
	filtrationVerdictsTotal.WithLabelValues(verdict).Inc()
}
