package charts

import (
	"context"
	"time"

	"github.com/goodnatureofminers/dustinsight7000/internal/dust/source"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	FileSource interface {
		List(ctx context.Context) ([]source.File, error)
		Read(ctx context.Context, f source.File) ([]byte, error)
	}
	Metrics interface {
		ObserveRender(chart string, err error, skipped bool, started time.Time)
	}
)
