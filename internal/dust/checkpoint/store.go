// Package checkpoint remembers which dataset files a stage has already processed.
package checkpoint

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.etcd.io/bbolt"
)

var (
	// ErrClosed is returned by a store used after Close.
	ErrClosed = errors.New("checkpoint: store closed")
	// ErrEmptyStage is returned when a stage name is empty.
	ErrEmptyStage = errors.New("checkpoint: empty stage")
)

// Stage names a processing stage; each stage keeps its own bucket.
type Stage string

const digestSize = sha256.Size

// BoltStore persists per-file checkpoints in a bbolt database. Each value holds the
// SHA-256 of the content a file was read with followed by the SHA-256 of the content
// written for it.
type BoltStore struct {
	mu     sync.RWMutex
	db     *bbolt.DB
	closed bool
}

// OpenBoltStore opens or creates the database at dbPath, creating the parent directory.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("checkpoint: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: open bolt db: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Seen reports whether key was processed by stage and content is either the content
// it was read with or the content written for it.
func (s *BoltStore) Seen(stage Stage, key string, content []byte) (bool, error) {
	if stage == "" {
		return false, ErrEmptyStage
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false, ErrClosed
	}

	digest := sha256.Sum256(content)
	var seen bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(stage))
		if b == nil {
			return nil
		}
		v := b.Get([]byte(key))
		if len(v) != 2*digestSize {
			return nil
		}
		seen = bytes.Equal(v[:digestSize], digest[:]) || bytes.Equal(v[digestSize:], digest[:])
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("checkpoint: read %s/%s: %w", stage, key, err)
	}
	return seen, nil
}

// Checkpoint is the digest pair recorded for one file of a stage.
type Checkpoint struct {
	Stage  Stage
	Key    string
	Input  [digestSize]byte
	Output [digestSize]byte
}

// NewCheckpoint hashes the content a file was read with and the content written for it.
func NewCheckpoint(stage Stage, key string, input, output []byte) Checkpoint {
	return Checkpoint{Stage: stage, Key: key, Input: sha256.Sum256(input), Output: sha256.Sum256(output)}
}

func (c Checkpoint) value() []byte {
	v := make([]byte, 0, 2*digestSize)
	v = append(v, c.Input[:]...)
	return append(v, c.Output[:]...)
}

// Mark records that stage turned input into output for key.
func (s *BoltStore) Mark(stage Stage, key string, input, output []byte) error {
	if stage == "" {
		return ErrEmptyStage
	}
	if err := s.MarkBatch([]Checkpoint{NewCheckpoint(stage, key, input, output)}); err != nil {
		return fmt.Errorf("checkpoint: write %s/%s: %w", stage, key, err)
	}
	return nil
}

// MarkBatch records several checkpoints in one transaction.
func (s *BoltStore) MarkBatch(checkpoints []Checkpoint) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, c := range checkpoints {
			if c.Stage == "" {
				return ErrEmptyStage
			}
			b, err := tx.CreateBucketIfNotExists([]byte(c.Stage))
			if err != nil {
				return fmt.Errorf("create bucket %q: %w", c.Stage, err)
			}
			if err := b.Put([]byte(c.Key), c.value()); err != nil {
				return fmt.Errorf("put %s/%s: %w", c.Stage, c.Key, err)
			}
		}
		return nil
	})
}

// Reset drops every checkpoint of stage.
func (s *BoltStore) Reset(stage Stage) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(stage)) == nil {
			return nil
		}
		return tx.DeleteBucket([]byte(stage))
	})
	if err != nil {
		return fmt.Errorf("checkpoint: reset %s: %w", stage, err)
	}
	return nil
}

// Count returns the number of files checkpointed for stage.
func (s *BoltStore) Count(stage Stage) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		if b := tx.Bucket([]byte(stage)); b != nil {
			n = b.Stats().KeyN
		}
		return nil
	})
	return n, err
}

// Nop never remembers anything; it is used when no checkpoint database is configured.
type Nop struct{}

// Seen always reports false.
func (Nop) Seen(Stage, string, []byte) (bool, error) { return false, nil }

// Mark does nothing.
func (Nop) Mark(Stage, string, []byte, []byte) error { return nil }

// Close does nothing.
func (Nop) Close() error { return nil }
