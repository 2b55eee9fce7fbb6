package metrics

import (
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var classifiedEntriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "classifier",
	Name:      "entries_total",
	Help:      "Count of classified inputs and outputs by script type.",
}, []string{"network", "collection", "script_type"})

// Classifier tracks script type classification counts.
type Classifier struct {
	network model.Network
}

// NewClassifier constructs a metrics collector for classification results.
func NewClassifier(network model.Network) *Classifier {
	if network == "" {
		network = "unknown"
	}
	return &Classifier{network: network}
}

// ObserveEntry counts one classified entry of the named collection.
func (m Classifier) ObserveEntry(collection string, scriptType model.ScriptType) {
	classifiedEntriesTotal.WithLabelValues(string(m.network), collection, string(scriptType)).Inc()
}
