package pipeline

import "github.com/goodnatureofminers/dustinsight7000/internal/dust/checkpoint"

const (
	defaultWorkerCount = 8

	// DefaultIQRMultiplier is the Tukey fence multiplier applied to sub-transaction fee rates.
	DefaultIQRMultiplier = 1.5

	// minFeeRate is the floor, in sat/vB, applied before pricing an entry.
	minFeeRate = 1.0

	StageAnnotate      checkpoint.Stage = "annotate"
	StageFiltration    checkpoint.Stage = "filtration"
	StageAttackMetrics checkpoint.Stage = "attack-metrics"
)

// Options tune a file stage.
type Options struct {
	// Workers is the number of files processed concurrently.
	Workers int
	// Force reprocesses files whose checkpoint is current.
	Force bool
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return defaultWorkerCount
	}
	return o.Workers
}
