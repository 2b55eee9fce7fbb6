package checkpoint

import (
	"time"
)

type (
	Store interface {
		Seen(stage Stage, key string, content []byte) (bool, error)
		Mark(stage Stage, key string, input, output []byte) error
		Close() error
	}

	StoreMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

var (
	_ Store = (*BoltStore)(nil)
	_ Store = Nop{}
	_ Store = (*ObservedStore)(nil)
)

type ObservedStore struct {
	store   Store
	metrics StoreMetrics
}

func NewObservedStore(store Store, metrics StoreMetrics) *ObservedStore {
	return &ObservedStore{
		store:   store,
		metrics: metrics,
	}
}

func (s *ObservedStore) Seen(stage Stage, key string, content []byte) (seen bool, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("seen", err, started)
	}()
	return s.store.Seen(stage, key, content)
}

func (s *ObservedStore) Mark(stage Stage, key string, input, output []byte) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("mark", err, started)
	}()
	return s.store.Mark(stage, key, input, output)
}

func (s *ObservedStore) Close() error {
	return s.store.Close()
}
