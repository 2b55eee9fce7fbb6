package checkpoint

import (
	"context"

	"github.com/goodnatureofminers/dustinsight7000/pkg/batcher"
	"go.uber.org/zap"
)

var _ Store = (*BatchedStore)(nil)

// BatchedStore queues marks and commits them to a BoltStore in batches, so a run over
// many small files does not pay one fsync per file. Seen only observes committed marks.
type BatchedStore struct {
	store   *BoltStore
	batcher *batcher.Batcher[Checkpoint]
}

// NewBatchedStore starts the background committer. Close must be called to flush it.
func NewBatchedStore(store *BoltStore, cfg batcher.Config, logger *zap.Logger) *BatchedStore {
	s := &BatchedStore{store: store}
	s.batcher = batcher.New(logger, func(_ context.Context, checkpoints []Checkpoint) error {
		return store.MarkBatch(checkpoints)
	}, cfg)
	s.batcher.Start(context.Background())
	return s
}

func (s *BatchedStore) Seen(stage Stage, key string, content []byte) (bool, error) {
	return s.store.Seen(stage, key, content)
}

func (s *BatchedStore) Mark(stage Stage, key string, input, output []byte) error {
	if stage == "" {
		return ErrEmptyStage
	}
	if err := s.batcher.Add(context.Background(), NewCheckpoint(stage, key, input, output)); err != nil {
		return ErrClosed
	}
	return nil
}

// Close commits the queued marks and closes the database.
func (s *BatchedStore) Close() error {
	s.batcher.Stop()
	return s.store.Close()
}
