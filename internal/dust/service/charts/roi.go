package charts

import (
	"fmt"
	"image/color"
	"math"

	"github.com/goodnatureofminers/dustinsight7000/internal/dust/stats"
	"gonum.org/v1/plot"
)

const (
	transactionsAxis = "Dust Attack Transactions (sorted by ROI)"
	victimFeeRateMin = 0.01
)

// effects returns the attack effect of every transaction, in dataset order.
func effects(txs []Transaction) []float64 {
	out := make([]float64, len(txs))
	for i, tx := range txs {
		out[i] = tx.Effect
	}
	return out
}

// addROIThreshold marks the first transaction whose ROI reaches 100%. sorted must be
// ascending.
func addROIThreshold(p *plot.Plot, sorted []float64, yMin, yMax float64) error {
	idx := stats.FirstAtLeast(sorted, roiThreshold)
	if idx < 0 {
		return nil
	}
	label := thresholdLabel(len(sorted)-idx, len(sorted))
	return addVertical(p, float64(idx+1), yMin, yMax, thresholdColor, label)
}

func roiChart(ds *Dataset) (figure, error) {
	n := len(ds.Transactions)
	if n == 0 {
		return nil, errNoData
	}
	values := effects(ds.Transactions)
	for i := range values {
		values[i] = math.Max(values[i], 0)
	}

	scale, err := newROIScale()
	if err != nil {
		return nil, err
	}
	mapped := make([]float64, n)
	for i, v := range values {
		mapped[i] = scale.position(v)
	}
	xs, ys := stats.Downsample(stats.Linspace(1, float64(n), n), mapped, maxCurvePoints)

	p := newPlot("Attack Effect (ROI) of Dust Attacks", transactionsAxis, "Attack Effect (ROI %)")
	p.X.Min, p.X.Max = 0, float64(n+1)
	p.X.Tick.Marker = transactionTicks
	p.Y.Min, p.Y.Max = 0, float64(len(roiScaleTicks)-1)
	p.Y.Tick.Marker = scale.ticks()

	if err := addLine(p, xyPairs(xs, ys), curveColor, thickLine, nil, "ROI curve"); err != nil {
		return nil, err
	}
	if err := addROIThreshold(p, values, p.Y.Min, p.Y.Max); err != nil {
		return nil, err
	}
	if err := addHorizontal(p, scale.position(roiThreshold), p.X.Min, p.X.Max, roiLineColor, dashDot, "ROI = 100%"); err != nil {
		return nil, err
	}

	summary, err := stats.Summarize(values)
	if err != nil {
		return nil, err
	}
	if err := addNote(p, float64(n)*0.6, p.Y.Max*0.97, summaryNote("ROI", "%", summary)); err != nil {
		return nil, err
	}
	return singleFigure{plot: p, width: figureWidth, height: figureHeight}, nil
}

func bytesChart(ds *Dataset) (figure, error) {
	n := len(ds.Transactions)
	if n == 0 {
		return nil, errNoData
	}
	victim := make([]float64, n)
	attack := make([]float64, n)
	for i, tx := range ds.Transactions {
		victim[i] = tx.VictimVBytes
		attack[i] = tx.AttackVBytes
	}

	p := newPlot("Victim vs Attack Transaction Size", transactionsAxis, "Bytes (vbytes)")
	p.X.Min, p.X.Max = 0, float64(n+1)
	p.X.Tick.Marker = transactionTicks
	p.Y.Min, p.Y.Max = 0, bytesYMax
	p.Y.Tick.Marker = linearTicks(0, bytesYMax, bytesYStep)

	if err := addGroupedLine(p, victim, n, bytesGroupSize, victimColor, "Victim Txn Bytes"); err != nil {
		return nil, err
	}
	if err := addGroupedLine(p, attack, n, bytesGroupSize, attackColor, "Attack Txn Bytes"); err != nil {
		return nil, err
	}
	if err := addROIThreshold(p, effects(ds.Transactions), p.Y.Min, p.Y.Max); err != nil {
		return nil, err
	}
	if err := addSummaryNotes(p, float64(n), victim, attack, "bytes"); err != nil {
		return nil, err
	}
	return singleFigure{plot: p, width: figureWidth, height: figureHeight}, nil
}

func feeRateChart(ds *Dataset) (figure, error) {
	var (
		victim, attack []float64
		sortedEffects  []float64
	)
	for _, tx := range ds.Transactions {
		if !tx.HasVictimFeeRate {
			continue
		}
		victim = append(victim, math.Max(tx.VictimFeeRate, 0))
		attack = append(attack, tx.AttackFeeRates...)
		sortedEffects = append(sortedEffects, tx.Effect)
	}
	n := len(victim)
	if n == 0 {
		return nil, errNoData
	}

	p := newPlot("Victim vs Attack Fee Rate", transactionsAxis, "Fee Rate (sat/vB)")
	p.X.Min, p.X.Max = 0, float64(n+1)
	p.X.Tick.Marker = transactionTicks
	p.Y.Min, p.Y.Max = 0, feeRateYMax
	p.Y.Tick.Marker = linearTicks(0, feeRateYMax, feeRateYStep)

	if err := addGroupedLine(p, victim, n, feeRateGroupSize, victimColor, "Victim Fee Rate"); err != nil {
		return nil, err
	}
	if len(attack) > 0 {
		if err := addGroupedLine(p, attack, n, feeRateGroupSize, attackColor, "Attack Fee Rate"); err != nil {
			return nil, err
		}
	}
	if err := addROIThreshold(p, sortedEffects, p.Y.Min, p.Y.Max); err != nil {
		return nil, err
	}

	victimSummary, err := stats.Summarize(victim)
	if err != nil {
		return nil, err
	}
	victimSummary.Min = minAbove(victim, victimFeeRateMin)
	if err := addNote(p, float64(n)*0.35, p.Y.Max*0.97, summaryNote("Victim", " sat/vB", victimSummary)); err != nil {
		return nil, err
	}
	if attackSummary, err := stats.Summarize(attack); err == nil {
		if err := addNote(p, float64(n)*0.68, p.Y.Max*0.97, summaryNote("Attack", " sat/vB", attackSummary)); err != nil {
			return nil, err
		}
	}
	return singleFigure{plot: p, width: figureWidth, height: figureHeight}, nil
}

// addGroupedLine draws the means of consecutive groups of values stretched over 1..n.
func addGroupedLine(p *plot.Plot, values []float64, n, groupSize int, c color.Color, legend string) error {
	means := stats.GroupMeans(values, groupSize)
	xs := stats.Linspace(1, float64(n), len(means))
	return addLine(p, xyPairs(xs, means), c, thickLine, nil, legend)
}

func addSummaryNotes(p *plot.Plot, n float64, victim, attack []float64, unit string) error {
	for i, part := range []struct {
		title  string
		values []float64
	}{
		{title: "Victim", values: victim},
		{title: "Attack", values: attack},
	} {
		s, err := stats.Summarize(part.values)
		if err != nil {
			return err
		}
		x := n * (0.35 + 0.33*float64(i))
		if err := addNote(p, x, p.Y.Max*0.97, summaryNote(part.title, " "+unit, s)); err != nil {
			return fmt.Errorf("%s summary: %w", part.title, err)
		}
	}
	return nil
}

func minAbove(values []float64, floor float64) float64 {
	m := math.Inf(1)
	for _, v := range values {
		if v > floor && v < m {
			m = v
		}
	}
	if math.IsInf(m, 1) {
		return 0
	}
	return m
}
