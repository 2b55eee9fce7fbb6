package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goodnatureofminers/dustinsight7000/internal/dust/model"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/service/pipeline"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/source"
	"github.com/goodnatureofminers/dustinsight7000/internal/metrics"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	InputDir       string        `long:"input-dir" env:"DUST_FILTRATION_INPUT_DIR" description:"directory with JSON transaction snapshots" required:"true"`
	OutputDir      string        `long:"output-dir" env:"DUST_FILTRATION_OUTPUT_DIR" description:"mirror output directory, files are rewritten in place when empty"`
	Network        model.Network `long:"network" env:"DUST_FILTRATION_NETWORK" description:"network label attached to metrics" default:"mainnet"`
	Workers        int           `long:"workers" env:"DUST_FILTRATION_WORKERS" description:"number of files processed concurrently" default:"8"`
	FilesPerSecond int           `long:"files-per-second" env:"DUST_FILTRATION_FILES_PER_SECOND" description:"read throttle, 0 disables it" default:"0"`
	IQRMultiplier  float64       `long:"iqr-multiplier" env:"DUST_FILTRATION_IQR_MULTIPLIER" description:"upper fence is Q3 plus this multiple of the IQR" default:"1.5"`
	MetricsFile    string        `long:"metrics-file" env:"DUST_FILTRATION_METRICS_FILE" description:"write prometheus metrics to this textfile on exit"`
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
		logger.Fatal("filtration failed", zap.Error(err))
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

	tree, err := source.New(cfg.InputDir, cfg.OutputDir, cfg.FilesPerSecond)
	if err != nil {
		return fmt.Errorf("init source: %w", err)
	}
	svc, err := pipeline.NewFiltrationService(
		tree,
		metrics.NewStage(string(pipeline.StageFiltration), string(cfg.Network)),
		metrics.NewFiltration(),
		cfg.IQRMultiplier,
		pipeline.Options{Workers: cfg.Workers},
		logger,
	)
	if err != nil {
		return err
	}
	summary, err := svc.Run(ctx)
	if err != nil {
		return err
	}
	if summary.NoFeeRates {
		logger.Warn("no sub-transaction fee rates found, nothing was rewritten")
	}
	return nil
}
