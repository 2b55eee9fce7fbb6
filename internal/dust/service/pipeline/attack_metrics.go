package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goodnatureofminers/dustinsight7000/internal/dust/bitcoin"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/record"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// AttackCosts are the totals computed for one record.
type AttackCosts struct {
	VictimBTC float64
	AttackBTC float64
	Effect    float64
}

type AttackMetricsService struct {
	logger    *zap.Logger
	metrics   StageMetrics
	recorder  AttackMetrics
	processor *fileProcessor
}

func NewAttackMetricsService(
	src FileSource,
	checkpoints CheckpointStore,
	metrics StageMetrics,
	recorder AttackMetrics,
	opts Options,
	logger *zap.Logger,
) (*AttackMetricsService, error) {
	if metrics == nil {
		return nil, errors.New("attack metrics stage metrics is required")
	}
	if recorder == nil {
		return nil, errors.New("attack metrics recorder is required")
	}
	logger = logger.With(zap.String("stage", string(StageAttackMetrics)))

	return &AttackMetricsService{
		logger:   logger,
		metrics:  metrics,
		recorder: recorder,
		processor: &fileProcessor{
			stage:       StageAttackMetrics,
			source:      src,
			checkpoints: checkpoints,
			metrics:     metrics,
			workerCount: opts.workers(),
			force:       opts.Force,
			logger:      logger.Named("fileProcessor"),
		},
	}, nil
}

// Run recomputes the attack metrics of every file.
func (s *AttackMetricsService) Run(ctx context.Context) (summary RunSummary, err error) {
	started := time.Now()
	defer func() { s.metrics.ObserveRun(err, started) }()

	summary, err = s.processor.Process(ctx, func(r record.Record) error {
		costs, err := ComputeAttackMetrics(r)
		if err != nil {
			return err
		}
		s.recorder.ObserveRecord(costs.VictimBTC, costs.AttackBTC, costs.Effect)
		return nil
	})
	if err != nil {
		return summary, err
	}

	s.logger.Info("attack metrics finished",
		zap.Int("files", summary.Files),
		zap.Int("written", summary.Written),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
		zap.Int("records", summary.Records),
	)
	return summary, nil
}

// ComputeAttackMetrics prices the victim's input UTXOs and the attacker's sent outputs
// of r and writes the per-entry costs, totals, attack_effect and per-input
// victim_attack_ratio. Values already present are overwritten.
func ComputeAttackMetrics(r record.Record) (AttackCosts, error) {
	var (
		costs AttackCosts
		errs  error
	)

	victimRate, victimRateOK := feeRate(r)
	inputs, hasInputs, err := r.Collection(record.FieldInputUTXODetails)
	errs = multierr.Append(errs, err)
	var priced []record.Entry
	var pricedCosts []float64
	if hasInputs && err == nil && victimRateOK {
		for _, e := range inputs.Entries() {
			cost, text := entryCost(e, victimRate)
			e.Set(record.FieldVictimCost, text)
			costs.VictimBTC += cost
			priced = append(priced, e)
			pricedCosts = append(pricedCosts, cost)
		}
	}

	for _, sub := range r.SubTransactions() {
		utxo, ok, err := sub.Collection(record.FieldOutputUTXODetails)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if !ok {
			continue
		}
		rate, rateOK := feeRate(sub)
		if !rateOK {
			continue
		}
		for _, e := range utxo.Entries() {
			cost, text := entryCost(e, rate)
			e.Set(record.FieldAttackCost, text)
			costs.AttackBTC += cost
		}
		errs = multierr.Append(errs, sub.SetCollection(record.FieldOutputUTXODetails, utxo))
	}

	for i, e := range priced {
		e.Set(record.FieldVictimAttackRatio, formatRatio(pricedCosts[i], costs.AttackBTC))
	}
	if inputs != nil {
		errs = multierr.Append(errs, r.SetCollection(record.FieldInputUTXODetails, inputs))
	}

	if costs.AttackBTC > 0 {
		costs.Effect = costs.VictimBTC / costs.AttackBTC * 100
	}
	r.Set(record.FieldTotalVictimCost, formatBTC(costs.VictimBTC))
	r.Set(record.FieldTotalAttackCost, formatBTC(costs.AttackBTC))
	r.Set(record.FieldAttackEffect, strconv.FormatFloat(costs.Effect, 'f', 2, 64))
	return costs, errs
}

// feeRate reads a record's fee rate floored at minFeeRate. A missing rate prices at the
// floor; a value that is not a number is reported as unusable.
func feeRate(r record.Record) (float64, bool) {
	v, ok := r.Get(record.FieldFeeRate)
	if !ok || v == nil {
		return minFeeRate, true
	}
	rate, ok := r.Float(record.FieldFeeRate)
	if !ok {
		if s, isString := v.(string); isString && s == "" {
			return minFeeRate, true
		}
		return 0, false
	}
	if rate < minFeeRate {
		rate = minFeeRate
	}
	return rate, true
}

// entryCost prices an entry at rate and returns the cost rounded to whole satoshis
// along with its 8-decimal rendering.
func entryCost(e record.Entry, rate float64) (float64, string) {
	size, ok := e.Int(record.FieldVBytes)
	if !ok {
		size, _ = e.Int(record.FieldBytes)
	}
	text := formatBTC(bitcoin.CostBTC(size, rate))
	cost, _ := strconv.ParseFloat(text, 64)
	return cost, text
}

func formatBTC(v float64) string {
	return strconv.FormatFloat(v, 'f', 8, 64)
}

func formatRatio(victim, attack float64) string {
	if attack <= 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", victim/attack*100)
}
