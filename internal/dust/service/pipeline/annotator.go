package pipeline

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/goodnatureofminers/dustinsight7000/internal/dust/bitcoin"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/model"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/record"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type entryKind int

const (
	kindInput entryKind = iota
	kindOutput
)

// annotatedCollections are the victim record collections rewritten by the annotator.
var annotatedCollections = []struct {
	key   string
	label string
	kind  entryKind
}{
	{key: record.FieldInputUTXODetails, label: "input_utxo", kind: kindInput},
	{key: record.FieldInputDetails, label: "input", kind: kindInput},
	{key: record.FieldOutputDetails, label: "output", kind: kindOutput},
}

const sentOutputLabel = "sent_output"

// AnnotationSummary is the outcome of an annotation run.
type AnnotationSummary struct {
	RunSummary
	ScriptTypes map[model.ScriptType]int
}

type AnnotatorService struct {
	logger            *zap.Logger
	classifier        ScriptClassifier
	metrics           StageMetrics
	classifierMetrics ClassifierMetrics
	processor         *fileProcessor

	mu     sync.Mutex
	counts map[model.ScriptType]int
}

func NewAnnotatorService(
	src FileSource,
	checkpoints CheckpointStore,
	classifier ScriptClassifier,
	metrics StageMetrics,
	classifierMetrics ClassifierMetrics,
	opts Options,
	logger *zap.Logger,
) (*AnnotatorService, error) {
	if metrics == nil {
		return nil, errors.New("annotator stage metrics is required")
	}
	if classifierMetrics == nil {
		return nil, errors.New("annotator classifier metrics is required")
	}
	if classifier == nil {
		return nil, errors.New("annotator classifier is required")
	}
	logger = logger.With(zap.String("stage", string(StageAnnotate)))

	return &AnnotatorService{
		logger:            logger,
		classifier:        classifier,
		metrics:           metrics,
		classifierMetrics: classifierMetrics,
		processor: &fileProcessor{
			stage:       StageAnnotate,
			source:      src,
			checkpoints: checkpoints,
			metrics:     metrics,
			workerCount: opts.workers(),
			force:       opts.Force,
			logger:      logger.Named("fileProcessor"),
		},
		counts: make(map[model.ScriptType]int),
	}, nil
}

// Run annotates every file of the source.
func (s *AnnotatorService) Run(ctx context.Context) (summary AnnotationSummary, err error) {
	started := time.Now()
	defer func() { s.metrics.ObserveRun(err, started) }()

	s.mu.Lock()
	s.counts = make(map[model.ScriptType]int)
	s.mu.Unlock()

	run, err := s.processor.Process(ctx, s.AnnotateRecord)
	summary = AnnotationSummary{RunSummary: run, ScriptTypes: s.scriptTypeCounts()}
	if err != nil {
		return summary, err
	}

	fields := []zap.Field{
		zap.Int("files", run.Files),
		zap.Int("written", run.Written),
		zap.Int("skipped", run.Skipped),
		zap.Int("failed", run.Failed),
		zap.Int("records", run.Records),
		zap.Int("record_errors", run.RecordErrors),
	}
	for _, t := range model.ScriptTypes() {
		if n := summary.ScriptTypes[t]; n > 0 {
			fields = append(fields, zap.Int(string(t), n))
		}
	}
	s.logger.Info("annotation finished", fields...)
	return summary, nil
}

func (s *AnnotatorService) scriptTypeCounts() map[model.ScriptType]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[model.ScriptType]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}

// AnnotateRecord classifies every entry of r and its sub-transactions and attaches the
// matched sent UTXO to each sub-transaction.
func (s *AnnotatorService) AnnotateRecord(r record.Record) error {
	counts := make(map[model.ScriptType]int)
	defer s.merge(counts)

	var errs error
	for _, c := range annotatedCollections {
		errs = multierr.Append(errs, s.annotateCollection(r, c.key, c.label, c.kind, counts))
	}

	if !r.HasSubTransactions() {
		return errs
	}
	candidates, err := sentCandidates(r)
	errs = multierr.Append(errs, err)
	for _, sub := range r.SubTransactions() {
		errs = multierr.Append(errs, s.annotateSubTransaction(sub, candidates, counts))
	}
	return errs
}

func (s *AnnotatorService) merge(counts map[model.ScriptType]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range counts {
		s.counts[k] += v
	}
}

func (s *AnnotatorService) annotateCollection(r record.Record, key, label string, kind entryKind, counts map[model.ScriptType]int) error {
	c, ok, err := r.Collection(key)
	if err != nil || !ok {
		return err
	}
	for _, e := range c.Entries() {
		t := s.annotateEntry(e, entryKindOf(e, kind))
		counts[t]++
		s.classifierMetrics.ObserveEntry(label, t)
	}
	return r.SetCollection(key, c)
}

func (s *AnnotatorService) annotateSubTransaction(sub record.Record, candidates map[string][]uint64, counts map[model.ScriptType]int) error {
	outs, ok, err := sub.Collection(record.FieldOutputDetails)
	if err != nil || !ok {
		return err
	}
	for _, e := range outs.Entries() {
		t := s.annotateEntry(e, kindOutput)
		counts[t]++
		s.classifierMetrics.ObserveEntry(sentOutputLabel, t)
	}
	if err := sub.SetCollection(record.FieldOutputDetails, outs); err != nil {
		return err
	}

	txid, _ := sub.String(record.FieldTxnHash)
	matched := record.NewCollection(outs.Encoding(), true)
	if e, ok := matchSentOutput(outs.Entries(), candidates[txid]); ok {
		matched = record.NewCollection(outs.Encoding(), true, e.Clone())
	}
	v, err := matched.Value()
	if err != nil {
		return err
	}
	sub.InsertAfter(record.FieldOutputDetails, record.FieldOutputUTXODetails, v)
	return nil
}

// entryKindOf tells inputs from outputs in collections that mix both, falling back
// to the collection's kind.
func entryKindOf(e record.Entry, fallback entryKind) entryKind {
	switch {
	case e.IsInput():
		return kindInput
	case e.IsOutput():
		return kindOutput
	default:
		return fallback
	}
}

func (s *AnnotatorService) annotateEntry(e record.Entry, kind entryKind) model.ScriptType {
	spkHex, spkAsm := e.ScriptPubKey()
	d := model.OutputDescriptor{
		ScriptBytes: decodeHex(spkHex),
		ScriptAsm:   spkAsm,
		Address:     e.Address(),
	}

	var sigScript []byte
	if kind == kindInput {
		sigScript = scriptSigBytes(e)
		d.RedeemScript = bitcoin.RedeemScript(sigScript)
	}

	t := s.classifier.Classify(d)
	length := s.classifier.ScriptLength(d)
	e.Set(record.FieldScriptType, string(t))
	e.Set(record.FieldBytes, length)

	if kind == kindOutput {
		e.Set(record.FieldVBytes, bitcoin.OutputVirtualSize(length, t))
		return t
	}

	witness, err := e.Witness()
	if err != nil {
		s.logger.Debug("ignoring malformed witness", zap.String("address", d.Address), zap.Error(err))
		witness = nil
	}
	e.Set(record.FieldVBytes, bitcoin.InputVirtualSize(sigScript, witness))
	if t == model.P2TR {
		if path := bitcoin.TaprootSpendPath(witness); path != model.SpendPathNone {
			e.Set(record.FieldSpendPath, string(path))
		}
	}
	return t
}

func scriptSigBytes(e record.Entry) []byte {
	sigHex, sigAsm := e.ScriptSig()
	if b := decodeHex(sigHex); b != nil {
		return b
	}
	if strings.TrimSpace(sigAsm) == "" {
		return nil
	}
	b, err := bitcoin.ParseAsm(sigAsm)
	if err != nil {
		return nil
	}
	return b
}

func decodeHex(s string) []byte {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return b
}
