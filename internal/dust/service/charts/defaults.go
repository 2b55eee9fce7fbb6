package charts

import (
	"errors"

	"gonum.org/v1/plot/vg"
)

const (
	defaultWorkerCount = 8

	bytesGroupSize   = 19_000
	feeRateGroupSize = 10_000

	// maxCurvePoints bounds the points drawn for a sorted ROI curve.
	maxCurvePoints = 5000
	maxTrendPoints = 2000

	emaSplitFraction = 0.00001
	emaAlphaMain     = 1e-6
	emaAlphaTail     = 0.1

	roiThreshold = 100.0

	facetRoiMin = 1.0
	facetRoiMax = 1e6
	trendRoiMax = 1e7

	cdfColumns = 3
	cdfYMax    = 250
	cdfYStep   = 100

	bytesYMax    = 600
	bytesYStep   = 100
	feeRateYMax  = 220
	feeRateYStep = 50
)

var (
	figureWidth  = 10 * vg.Inch
	figureHeight = 6 * vg.Inch
	facetWidth   = 12 * vg.Inch
	facetHeight  = 10 * vg.Inch
	cdfCellW     = 5.5 * vg.Inch
	cdfCellH     = 4.3 * vg.Inch
)

// errNoData marks a chart that has nothing to draw.
var errNoData = errors.New("charts: no data")

// Options tune a chart run.
type Options struct {
	Workers int
	// CDFScriptType is the script type whose spent UTXOs feed the bytes CDF chart.
	CDFScriptType string
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return defaultWorkerCount
	}
	return o.Workers
}
