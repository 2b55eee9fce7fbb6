package charts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goodnatureofminers/dustinsight7000/internal/dust/model"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/record"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/source"
	"github.com/goodnatureofminers/dustinsight7000/pkg/workerpool"
	"go.uber.org/zap"
)

// Chart file names, without the .png extension.
const (
	ChartROI             = "attack_effect_roi"
	ChartBytes           = "attack_effect_bytes"
	ChartFeeRate         = "attack_effect_fee_rate"
	ChartSingleSig       = "single_sig_distribution"
	ChartScript          = "script_distribution"
	ChartSingleSigTrend  = "single_sig_trend"
	ChartScriptTrend     = "script_trend"
	ChartBytesCumulative = "bytes_cdf"
)

// RenderSummary reports what a chart run produced.
type RenderSummary struct {
	Files        int
	FailedFiles  int
	Transactions int
	UTXOs        int
	Rendered     []string
	Skipped      []string
	Failed       []string
}

type chart struct {
	name  string
	build func(ds *Dataset) (figure, error)
}

type ChartsService struct {
	source        FileSource
	metrics       Metrics
	outputDir     string
	cdfScriptType model.ScriptType
	workerCount   int
	logger        *zap.Logger
}

func NewChartsService(
	src FileSource,
	metrics Metrics,
	outputDir string,
	opts Options,
	logger *zap.Logger,
) (*ChartsService, error) {
	if src == nil {
		return nil, errors.New("charts file source is required")
	}
	if metrics == nil {
		return nil, errors.New("charts metrics is required")
	}
	if outputDir == "" {
		return nil, errors.New("charts output directory is required")
	}
	cdfType := model.P2SHP2WSH
	if opts.CDFScriptType != "" {
		cdfType = model.ParseScriptType(opts.CDFScriptType)
	}

	return &ChartsService{
		source:        src,
		metrics:       metrics,
		outputDir:     outputDir,
		cdfScriptType: cdfType,
		workerCount:   opts.workers(),
		logger:        logger.With(zap.String("stage", "charts")),
	}, nil
}

func (s *ChartsService) charts() []chart {
	return []chart{
		{name: ChartROI, build: roiChart},
		{name: ChartBytes, build: bytesChart},
		{name: ChartFeeRate, build: feeRateChart},
		{name: ChartSingleSig, build: func(ds *Dataset) (figure, error) {
			return distributionChart(ds, "Single-Sig Victim Input Ratio vs ROI", singleSigFacets)
		}},
		{name: ChartScript, build: func(ds *Dataset) (figure, error) {
			return distributionChart(ds, "Script Victim Input Ratio vs ROI", scriptFacets)
		}},
		{name: ChartSingleSigTrend, build: func(ds *Dataset) (figure, error) {
			return trendChart(ds, "Single-Sig Victim Input Ratio Trend", singleSigFacets)
		}},
		{name: ChartScriptTrend, build: func(ds *Dataset) (figure, error) {
			return trendChart(ds, "Script Victim Input Ratio Trend", scriptFacets)
		}},
		{name: ChartBytesCumulative, build: func(ds *Dataset) (figure, error) {
			return cdfChart(ds, s.cdfScriptType)
		}},
	}
}

// Run collects the dataset and renders every chart into the output directory. A chart
// without data is skipped and a chart that fails to render does not stop the others.
func (s *ChartsService) Run(ctx context.Context) (RenderSummary, error) {
	ds, summary, err := s.Collect(ctx)
	if err != nil {
		return summary, err
	}
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return summary, fmt.Errorf("create output directory: %w", err)
	}

	for _, c := range s.charts() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		path := filepath.Join(s.outputDir, c.name+".png")
		logger := s.logger.With(zap.String("chart", c.name))

		started := time.Now()
		skipped, err := s.render(c, ds, path)
		s.metrics.ObserveRender(c.name, err, skipped, started)
		switch {
		case err != nil:
			summary.Failed = append(summary.Failed, c.name)
			logger.Error("chart failed", zap.Error(err))
		case skipped:
			summary.Skipped = append(summary.Skipped, c.name)
			logger.Warn("not enough data for chart")
		default:
			summary.Rendered = append(summary.Rendered, c.name)
			logger.Info("chart saved", zap.String("path", path), zap.Duration("took", time.Since(started)))
		}
	}
	return summary, nil
}

func (s *ChartsService) render(c chart, ds *Dataset, path string) (skipped bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render %s: %v", c.name, r)
		}
	}()
	fig, err := c.build(ds)
	if errors.Is(err, errNoData) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, fig.Save(path)
}

// Collect reads every file of the source into a Dataset sorted by attack effect.
// Unreadable files are logged and left out.
func (s *ChartsService) Collect(ctx context.Context) (*Dataset, RenderSummary, error) {
	files, err := s.source.List(ctx)
	if err != nil {
		return nil, RenderSummary{}, fmt.Errorf("list files: %w", err)
	}

	var (
		mu      sync.Mutex
		ds      = &Dataset{}
		summary = RenderSummary{Files: len(files)}
	)
	_ = workerpool.Process(ctx, s.workerCount, files, func(ctx context.Context, f source.File) error {
		data, err := s.source.Read(ctx, f)
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		doc, err := record.Decode(data)
		if err != nil {
			return err
		}
		part := extractDocument(f.Rel, doc, s.cdfScriptType)
		mu.Lock()
		ds.merge(part)
		mu.Unlock()
		return nil
	}, func(f source.File, err error) {
		mu.Lock()
		summary.FailedFiles++
		mu.Unlock()
		s.logger.Warn("file failed", zap.String("file", f.Rel), zap.Error(err))
	})
	if err := ctx.Err(); err != nil {
		return nil, summary, err
	}

	ds.SortByEffect()
	summary.Transactions = len(ds.Transactions)
	summary.UTXOs = len(ds.UTXOs)
	s.logger.Info("dataset collected",
		zap.Int("files", summary.Files),
		zap.Int("failed_files", summary.FailedFiles),
		zap.Int("transactions", summary.Transactions),
		zap.Int("utxos", summary.UTXOs),
	)
	return ds, summary, nil
}
