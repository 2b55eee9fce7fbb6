package charts

import (
	"fmt"
	"image/color"
	"math"

	"github.com/goodnatureofminers/dustinsight7000/internal/dust/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

const facetColumns = 2

// series is one coloured group of victim input ratios within a facet.
type series struct {
	label  string
	color  color.Color
	points plotter.XYs
}

// facetSeries splits the inputs matching f into series. Facets without categories yield
// a single series; otherwise inputs are grouped by category in f.Categories order and
// inputs without an allowed category are dropped.
func facetSeries(txs []Transaction, f Facet) []series {
	if len(f.Categories) == 0 {
		s := series{label: f.Label, color: f.Color}
		for i, tx := range txs {
			for _, in := range tx.Inputs {
				if f.matches(in.ScriptType, in.SpendPath) {
					s.points = append(s.points, plotter.XY{X: float64(i + 1), Y: in.Ratio})
				}
			}
		}
		if len(s.points) == 0 {
			return nil
		}
		return []series{s}
	}

	byCategory := make(map[int]plotter.XYs, len(f.Categories))
	for i, tx := range txs {
		for _, in := range tx.Inputs {
			if !in.HasCategory || !f.matches(in.ScriptType, in.SpendPath) {
				continue
			}
			byCategory[in.Category] = append(byCategory[in.Category], plotter.XY{X: float64(i + 1), Y: in.Ratio})
		}
	}
	out := make([]series, 0, len(f.Categories))
	for _, c := range f.Categories {
		if c == CategoryCustom || c == CategoryUnknown || len(byCategory[c]) == 0 {
			continue
		}
		out = append(out, series{label: categoryName(c), color: categoryColors[c], points: byCategory[c]})
	}
	return out
}

// roiCurve is the ascending attack effect clamped into the visible log range.
func roiCurve(txs []Transaction, max float64) (xs, ys []float64) {
	values := effects(txs)
	for i := range values {
		values[i] = clamp(values[i], facetRoiMin, max)
	}
	return stats.Downsample(stats.Linspace(1, float64(len(values)), len(values)), values, maxCurvePoints)
}

// distributionChart plots every victim input's share of the attack cost against the
// sorted ROI curve, one panel per facet.
func distributionChart(ds *Dataset, title string, facets []Facet) (figure, error) {
	n := len(ds.Transactions)
	if n == 0 {
		return nil, errNoData
	}
	curveX, curveY := roiCurve(ds.Transactions, facetRoiMax)
	sorted := effects(ds.Transactions)

	var (
		plots [][]*plot.Plot
		row   []*plot.Plot
		drawn bool
	)
	for i, f := range facets {
		p := newPlot(f.Label, transactionsAxis, "Ratio / ROI (%)")
		if i == 0 {
			p.Title.Text = title + "\n" + f.Label
		}
		p.X.Min, p.X.Max = 0, float64(n+1)
		p.X.Tick.Marker = transactionTicks
		p.Y.Scale = plot.LogScale{}
		p.Y.Min, p.Y.Max = facetRoiMin, facetRoiMax
		p.Y.Tick.Marker = powerTicks(6, false)

		if err := addLine(p, xyPairs(curveX, curveY), curveColor, thickLine, nil, "ROI curve"); err != nil {
			return nil, err
		}
		for _, s := range facetSeries(ds.Transactions, f) {
			for j := range s.points {
				s.points[j].Y = clamp(s.points[j].Y, facetRoiMin, facetRoiMax)
			}
			if err := addScatter(p, s.points, s.color, fmt.Sprintf("%s (n=%d)", s.label, len(s.points))); err != nil {
				return nil, err
			}
			drawn = true
		}
		if err := addROIThreshold(p, sorted, p.Y.Min, p.Y.Max); err != nil {
			return nil, err
		}
		if err := addHorizontal(p, roiThreshold, p.X.Min, p.X.Max, roiLineColor, dashDot, "ROI = 100%"); err != nil {
			return nil, err
		}

		row = append(row, p)
		if len(row) == facetColumns {
			plots = append(plots, row)
			row = nil
		}
	}
	if !drawn {
		return nil, errNoData
	}
	if len(row) > 0 {
		for len(row) < facetColumns {
			row = append(row, blankPlot())
		}
		plots = append(plots, row)
	}
	return gridFigure{plots: plots, width: facetWidth, height: facetHeight}, nil
}

// trendChart smooths each facet's input ratios along the sorted transactions with a
// segmented EMA and draws them over the ROI curve.
func trendChart(ds *Dataset, title string, facets []Facet) (figure, error) {
	n := len(ds.Transactions)
	if n == 0 {
		return nil, errNoData
	}
	split := int(float64(n) * (1 - emaSplitFraction))
	xs := stats.Linspace(1, float64(n), n)

	p := newPlot(title, transactionsAxis, "Ratio / ROI (%)")
	p.X.Min, p.X.Max = 0, float64(n+1)
	p.X.Tick.Marker = transactionTicks
	p.Y.Scale = plot.LogScale{}
	p.Y.Min, p.Y.Max = facetRoiMin, trendRoiMax
	p.Y.Tick.Marker = powerTicks(7, true)

	curveX, curveY := roiCurve(ds.Transactions, trendRoiMax)
	if err := addLine(p, xyPairs(curveX, curveY), curveColor, thickLine, nil, "ROI curve"); err != nil {
		return nil, err
	}

	var drawn bool
	for _, f := range facets {
		values, ok := facetTrend(ds.Transactions, f)
		if !ok {
			continue
		}
		smoothed := stats.SegmentedEMA(stats.FillGaps(values), emaAlphaMain, emaAlphaTail, split)
		for i := range smoothed {
			smoothed[i] = clamp(smoothed[i], facetRoiMin, trendRoiMax)
		}
		tx, ty := stats.Downsample(xs, smoothed, maxTrendPoints)
		if err := addLine(p, xyPairs(tx, ty), f.Color, thickLine, nil, f.Label); err != nil {
			return nil, err
		}
		drawn = true
	}
	if !drawn {
		return nil, errNoData
	}

	if err := addROIThreshold(p, effects(ds.Transactions), p.Y.Min, p.Y.Max); err != nil {
		return nil, err
	}
	if err := addHorizontal(p, roiThreshold, p.X.Min, p.X.Max, roiLineColor, dashDot, "ROI = 100%"); err != nil {
		return nil, err
	}
	return singleFigure{plot: p, width: figureWidth, height: figureHeight}, nil
}

// facetTrend places the ratio of the last matching input of each transaction at its
// position, NaN where none matches.
func facetTrend(txs []Transaction, f Facet) ([]float64, bool) {
	values := make([]float64, len(txs))
	var found bool
	for i, tx := range txs {
		values[i] = math.NaN()
		for _, in := range tx.Inputs {
			if !f.matches(in.ScriptType, in.SpendPath) {
				continue
			}
			if len(f.Categories) > 0 && !allowedCategory(f, in) {
				continue
			}
			values[i] = in.Ratio
			found = true
		}
	}
	return values, found
}

func allowedCategory(f Facet, in InputRatio) bool {
	if !in.HasCategory || in.Category == CategoryCustom || in.Category == CategoryUnknown {
		return false
	}
	for _, c := range f.Categories {
		if c == in.Category {
			return true
		}
	}
	return false
}
