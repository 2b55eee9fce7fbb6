package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/dustinsight7000/internal/dust/checkpoint"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/record"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/source"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/stats"
	"github.com/goodnatureofminers/dustinsight7000/pkg/workerpool"
	"go.uber.org/zap"
)

// FiltrationSummary is the outcome of a filtration run.
type FiltrationSummary struct {
	RunSummary
	FeeRates    int
	Fence       stats.Fence
	FilteredOut int
	// NoFeeRates is set when no sub-transaction fee rate was found and nothing was rewritten.
	NoFeeRates bool
}

type FiltrationService struct {
	logger     *zap.Logger
	source     FileSource
	metrics    StageMetrics
	verdicts   FiltrationMetrics
	multiplier float64
	workers    int
	processor  *fileProcessor
}

func NewFiltrationService(
	src FileSource,
	metrics StageMetrics,
	verdicts FiltrationMetrics,
	multiplier float64,
	opts Options,
	logger *zap.Logger,
) (*FiltrationService, error) {
	if metrics == nil {
		return nil, errors.New("filtration stage metrics is required")
	}
	if verdicts == nil {
		return nil, errors.New("filtration metrics is required")
	}
	if multiplier <= 0 {
		multiplier = DefaultIQRMultiplier
	}
	logger = logger.With(zap.String("stage", string(StageFiltration)))

	return &FiltrationService{
		logger:     logger,
		source:     src,
		metrics:    metrics,
		verdicts:   verdicts,
		multiplier: multiplier,
		workers:    opts.workers(),
		processor: &fileProcessor{
			stage:       StageFiltration,
			source:      src,
			checkpoints: checkpoint.Nop{},
			metrics:     metrics,
			workerCount: opts.workers(),
			force:       true,
			logger:      logger.Named("fileProcessor"),
		},
	}, nil
}

// Run collects every sub-transaction fee rate, derives the upper fence and flags each
// record with dust_attacker.
func (s *FiltrationService) Run(ctx context.Context) (summary FiltrationSummary, err error) {
	started := time.Now()
	defer func() { s.metrics.ObserveRun(err, started) }()

	rates, err := s.collectFeeRates(ctx)
	if err != nil {
		return summary, err
	}
	summary.FeeRates = len(rates)
	s.verdicts.ObserveFeeRates(len(rates))
	if len(rates) == 0 {
		summary.NoFeeRates = true
		s.logger.Warn("no fee rates collected, nothing to annotate")
		return summary, nil
	}

	fence, err := stats.UpperFence(rates, s.multiplier)
	if err != nil {
		return summary, fmt.Errorf("upper fence: %w", err)
	}
	summary.Fence = fence
	s.verdicts.ObserveThreshold(fence.Q1, fence.Q3, fence.Upper)
	s.logger.Info("fee rate threshold",
		zap.Int("fee_rates", len(rates)),
		zap.Float64("q1", fence.Q1),
		zap.Float64("q3", fence.Q3),
		zap.Float64("iqr", fence.IQR),
		zap.Float64("multiplier", s.multiplier),
		zap.Float64("upper", fence.Upper),
	)

	var (
		mu       sync.Mutex
		filtered int
	)
	run, err := s.processor.Process(ctx, func(r record.Record) error {
		verdict := Verdict(r, fence.Upper)
		r.Set(record.FieldDustAttacker, verdict)
		s.verdicts.ObserveVerdict(verdict)
		if verdict == record.DustAttackerNo {
			mu.Lock()
			filtered++
			mu.Unlock()
		}
		return nil
	})
	summary.RunSummary = run
	summary.FilteredOut = filtered
	if err != nil {
		return summary, err
	}

	s.logger.Info("filtration finished",
		zap.Int("files", run.Files),
		zap.Int("failed", run.Failed),
		zap.Int("processed", run.Records),
		zap.Int("filtered_out", filtered),
	)
	return summary, nil
}

func (s *FiltrationService) collectFeeRates(ctx context.Context) ([]float64, error) {
	files, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	var (
		mu    sync.Mutex
		rates []float64
	)
	_ = workerpool.Process(ctx, s.workers, files, func(ctx context.Context, f source.File) error {
		data, err := s.source.Read(ctx, f)
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		doc, err := record.Decode(data)
		if err != nil {
			return err
		}
		found := FeeRates(doc)
		mu.Lock()
		rates = append(rates, found...)
		mu.Unlock()
		return nil
	}, func(f source.File, err error) {
		s.logger.Warn("fee rate collection failed", zap.String("file", f.Rel), zap.Error(err))
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rates, nil
}

// FeeRates returns the fee rates of every sub-transaction in doc. A missing rate counts
// as zero and a value that is not a number is skipped.
func FeeRates(doc *record.Document) []float64 {
	var rates []float64
	for _, r := range doc.Records() {
		for _, sub := range r.SubTransactions() {
			if rate, ok := subFeeRate(sub); ok {
				rates = append(rates, rate)
			}
		}
	}
	return rates
}

// Verdict returns DustAttackerNo when any sub-transaction pays more than upper.
func Verdict(r record.Record, upper float64) string {
	for _, sub := range r.SubTransactions() {
		if rate, ok := subFeeRate(sub); ok && rate > upper {
			return record.DustAttackerNo
		}
	}
	return record.DustAttackerYes
}

func subFeeRate(sub record.Record) (float64, bool) {
	if !sub.Has(record.FieldFeeRate) {
		return 0, true
	}
	return sub.Float(record.FieldFeeRate)
}
