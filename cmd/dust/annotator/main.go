package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/dustinsight7000/internal/dust/bitcoin"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/checkpoint"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/model"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/service/pipeline"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/source"
	"github.com/goodnatureofminers/dustinsight7000/internal/metrics"
	"github.com/goodnatureofminers/dustinsight7000/pkg/batcher"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

const (
	checkpointFlushSize     = 256
	checkpointFlushInterval = 2 * time.Second
)

type config struct {
	InputDir         string        `long:"input-dir" env:"DUST_ANNOTATOR_INPUT_DIR" description:"directory with JSON transaction snapshots" required:"true"`
	OutputDir        string        `long:"output-dir" env:"DUST_ANNOTATOR_OUTPUT_DIR" description:"mirror output directory, files are rewritten in place when empty"`
	Network          model.Network `long:"network" env:"DUST_ANNOTATOR_NETWORK" description:"network used to decode addresses" default:"mainnet"`
	Workers          int           `long:"workers" env:"DUST_ANNOTATOR_WORKERS" description:"number of files processed concurrently" default:"8"`
	FilesPerSecond   int           `long:"files-per-second" env:"DUST_ANNOTATOR_FILES_PER_SECOND" description:"read throttle, 0 disables it" default:"0"`
	CheckpointDB     string        `long:"checkpoint-db" env:"DUST_ANNOTATOR_CHECKPOINT_DB" description:"bbolt database remembering processed files"`
	Force            bool          `long:"force" env:"DUST_ANNOTATOR_FORCE" description:"reprocess files even when the checkpoint is current"`
	ResetCheckpoints bool          `long:"reset-checkpoints" env:"DUST_ANNOTATOR_RESET_CHECKPOINTS" description:"drop this stage's checkpoints before running"`
	MetricsFile      string        `long:"metrics-file" env:"DUST_ANNOTATOR_METRICS_FILE" description:"write prometheus metrics to this textfile on exit"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("annotator failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) (err error) {
	if cfg.MetricsFile != "" {
		defer func() {
			if werr := metrics.WriteTextfile(cfg.MetricsFile); werr != nil {
				logger.Error("failed to write metrics", zap.Error(werr))
			}
		}()
	}

	classifier, err := bitcoin.NewClassifier(cfg.Network)
	if err != nil {
		return fmt.Errorf("init classifier: %w", err)
	}
	tree, err := source.New(cfg.InputDir, cfg.OutputDir, cfg.FilesPerSecond)
	if err != nil {
		return fmt.Errorf("init source: %w", err)
	}
	checkpoints, err := openCheckpoints(cfg.CheckpointDB, pipeline.StageAnnotate, cfg.ResetCheckpoints, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := checkpoints.Close(); cerr != nil {
			logger.Error("failed to close checkpoint store", zap.Error(cerr))
		}
	}()

	svc, err := pipeline.NewAnnotatorService(
		tree,
		checkpoints,
		classifier,
		metrics.NewStage(string(pipeline.StageAnnotate), string(cfg.Network)),
		metrics.NewClassifier(cfg.Network),
		pipeline.Options{Workers: cfg.Workers, Force: cfg.Force},
		logger,
	)
	if err != nil {
		return err
	}
	summary, err := svc.Run(ctx)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		logger.Warn("some files were not annotated", zap.Int("failed", summary.Failed))
	}
	return nil
}

func openCheckpoints(path string, stage checkpoint.Stage, reset bool, logger *zap.Logger) (checkpoint.Store, error) {
	if path == "" {
		if reset {
			logger.Warn("no checkpoint database configured, nothing to reset")
		}
		return checkpoint.Nop{}, nil
	}
	store, err := checkpoint.OpenBoltStore(path)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint store: %w", err)
	}
	if reset {
		if err := store.Reset(stage); err != nil {
			_ = store.Close()
			return nil, err
		}
		logger.Info("checkpoints reset", zap.String("stage", string(stage)))
	}
	n, err := store.Count(stage)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("count checkpoints: %w", err)
	}
	logger.Info("checkpoint store opened", zap.String("path", path), zap.Int("checkpoints", n))
	batched := checkpoint.NewBatchedStore(store, batcher.Config{
		FlushSize:     checkpointFlushSize,
		FlushInterval: checkpointFlushInterval,
	}, logger.Named("checkpoints"))
	return checkpoint.NewObservedStore(batched, metrics.NewCheckpoint()), nil
}
