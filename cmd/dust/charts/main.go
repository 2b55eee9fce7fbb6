package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goodnatureofminers/dustinsight7000/internal/dust/service/charts"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/source"
	"github.com/goodnatureofminers/dustinsight7000/internal/metrics"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	InputDir       string `long:"input-dir" env:"DUST_CHARTS_INPUT_DIR" description:"directory with annotated JSON transaction snapshots" required:"true"`
	OutputDir      string `long:"output-dir" env:"DUST_CHARTS_OUTPUT_DIR" description:"directory the PNG charts are written to" default:"charts"`
	CDFScriptType  string `long:"cdf-script-type" env:"DUST_CHARTS_CDF_SCRIPT_TYPE" description:"script type whose spent UTXOs feed the bytes CDF chart" default:"P2SH_P2WSH"`
	Workers        int    `long:"workers" env:"DUST_CHARTS_WORKERS" description:"number of files read concurrently" default:"8"`
	FilesPerSecond int    `long:"files-per-second" env:"DUST_CHARTS_FILES_PER_SECOND" description:"read throttle, 0 disables it" default:"0"`
	MetricsFile    string `long:"metrics-file" env:"DUST_CHARTS_METRICS_FILE" description:"write prometheus metrics to this textfile on exit"`
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
		logger.Fatal("charts failed", zap.Error(err))
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

	tree, err := source.New(cfg.InputDir, "", cfg.FilesPerSecond)
	if err != nil {
		return fmt.Errorf("init source: %w", err)
	}
	svc, err := charts.NewChartsService(
		tree,
		metrics.NewCharts(),
		cfg.OutputDir,
		charts.Options{Workers: cfg.Workers, CDFScriptType: cfg.CDFScriptType},
		logger,
	)
	if err != nil {
		return err
	}
	summary, err := svc.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("charts finished",
		zap.Strings("rendered", summary.Rendered),
		zap.Strings("skipped", summary.Skipped),
		zap.Strings("failed", summary.Failed),
	)
	if len(summary.Failed) > 0 {
		return fmt.Errorf("%d charts failed to render", len(summary.Failed))
	}
	return nil
}
