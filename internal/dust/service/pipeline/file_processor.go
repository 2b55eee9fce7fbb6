package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/dustinsight7000/internal/dust/checkpoint"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/record"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/source"
	"github.com/goodnatureofminers/dustinsight7000/pkg/workerpool"
	"go.uber.org/zap"
)

// RunSummary counts what a file stage did.
type RunSummary struct {
	Files        int
	Written      int
	Skipped      int
	Failed       int
	Records      int
	RecordErrors int
}

func (s *RunSummary) add(r fileResult, err error) {
	switch {
	case err != nil:
		s.Failed++
	case r.skipped:
		s.Skipped++
	default:
		s.Written++
	}
	s.Records += r.records
	s.RecordErrors += r.recordErrors
}

type fileResult struct {
	skipped      bool
	records      int
	recordErrors int
}

// recordTransform rewrites one record in place.
type recordTransform func(r record.Record) error

// fileProcessor applies a recordTransform to every file of a source, skipping files
// whose checkpoint is current.
type fileProcessor struct {
	stage       checkpoint.Stage
	source      FileSource
	checkpoints CheckpointStore
	metrics     StageMetrics
	workerCount int
	force       bool
	logger      *zap.Logger
}

func (p *fileProcessor) Process(ctx context.Context, transform recordTransform) (RunSummary, error) {
	files, err := p.source.List(ctx)
	if err != nil {
		return RunSummary{}, fmt.Errorf("list files: %w", err)
	}

	summary := RunSummary{Files: len(files)}
	var mu sync.Mutex
	_ = workerpool.Process(ctx, p.workerCount, files, func(ctx context.Context, f source.File) error {
		res, err := p.processFile(ctx, f, transform)
		mu.Lock()
		summary.add(res, err)
		mu.Unlock()
		return err
	}, func(f source.File, err error) {
		p.logger.Warn("file failed", zap.String("file", f.Rel), zap.Error(err))
	})

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

func (p *fileProcessor) processFile(ctx context.Context, f source.File, transform recordTransform) (res fileResult, err error) {
	started := time.Now()
	defer func() {
		if !res.skipped {
			p.metrics.ObserveFile(err, started)
		}
	}()

	data, err := p.source.Read(ctx, f)
	if err != nil {
		return res, fmt.Errorf("read: %w", err)
	}

	if !p.force {
		seen, err := p.checkpoints.Seen(p.stage, f.Rel, data)
		if err != nil {
			p.logger.Warn("checkpoint lookup failed", zap.String("file", f.Rel), zap.Error(err))
		} else if seen {
			p.metrics.ObserveSkipped()
			p.logger.Debug("file unchanged since last run", zap.String("file", f.Rel))
			res.skipped = true
			return res, nil
		}
	}

	doc, err := record.Decode(data)
	if err != nil {
		return res, err
	}

	for i, r := range doc.Records() {
		if err := transform(r); err != nil {
			res.recordErrors++
			hash, _ := r.String(record.FieldTxnHash)
			p.logger.Warn("record failed",
				zap.String("file", f.Rel),
				zap.Int("index", i),
				zap.String("txn_hash", hash),
				zap.Error(err),
			)
			continue
		}
		res.records++
	}
	p.metrics.ObserveRecords(res.records)

	out, err := doc.Encode()
	if err != nil {
		return res, err
	}
	if err := p.source.Write(ctx, f, out); err != nil {
		return res, fmt.Errorf("write: %w", err)
	}
	if err := p.checkpoints.Mark(p.stage, f.Rel, data, out); err != nil {
		p.logger.Warn("checkpoint update failed", zap.String("file", f.Rel), zap.Error(err))
	}
	return res, nil
}
