package pipeline

import (
	"context"
	"time"

	"github.com/goodnatureofminers/dustinsight7000/internal/dust/checkpoint"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/model"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/source"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	FileSource interface {
		List(ctx context.Context) ([]source.File, error)
		Read(ctx context.Context, f source.File) ([]byte, error)
		Write(ctx context.Context, f source.File, data []byte) error
	}
	CheckpointStore interface {
		Seen(stage checkpoint.Stage, key string, content []byte) (bool, error)
		Mark(stage checkpoint.Stage, key string, input, output []byte) error
	}
	ScriptClassifier interface {
		Classify(d model.OutputDescriptor) model.ScriptType
		ScriptLength(d model.OutputDescriptor) int
	}

	StageMetrics interface {
		ObserveFile(err error, started time.Time)
		ObserveSkipped()
		ObserveRecords(n int)
		ObserveRun(err error, started time.Time)
	}
	ClassifierMetrics interface {
		ObserveEntry(collection string, scriptType model.ScriptType)
	}
	FiltrationMetrics interface {
		ObserveFeeRates(n int)
		ObserveThreshold(q1, q3, upper float64)
		ObserveVerdict(verdict string)
	}
	AttackMetrics interface {
		ObserveRecord(victimBTC, attackBTC, effect float64)
	}
)
