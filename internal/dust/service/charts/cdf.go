package charts

import (
	"fmt"
	"sort"

	"github.com/goodnatureofminers/dustinsight7000/internal/dust/model"
	"github.com/goodnatureofminers/dustinsight7000/internal/dust/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// cdfChart draws the cumulative size distribution of dust and non-dust UTXOs of one
// script type, one panel per script category.
func cdfChart(ds *Dataset, scriptType model.ScriptType) (figure, error) {
	byCategory := make(map[int][]UTXO)
	for _, u := range ds.UTXOs {
		if u.Category == CategoryUnknown {
			continue
		}
		byCategory[u.Category] = append(byCategory[u.Category], u)
	}
	if len(byCategory) == 0 {
		return nil, errNoData
	}
	categories := make([]int, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Ints(categories)

	cols := len(categories)
	if cols > 2 {
		cols = cdfColumns
	}
	rows := (len(categories) + cols - 1) / cols

	plots := make([][]*plot.Plot, rows)
	for i := range plots {
		plots[i] = make([]*plot.Plot, cols)
	}
	for i, c := range categories {
		p, err := cdfPanel(c, byCategory[c])
		if err != nil {
			return nil, fmt.Errorf("category %d: %w", c, err)
		}
		if i == 0 {
			p.Title.Text = fmt.Sprintf("UTXO Byte Cumulative Distribution - %s\n%s", scriptType, p.Title.Text)
		}
		if i%cols == 0 {
			p.Y.Label.Text = "Bytes"
		}
		plots[i/cols][i%cols] = p
	}
	for i := len(categories); i < rows*cols; i++ {
		plots[i/cols][i%cols] = blankPlot()
	}
	return gridFigure{plots: plots, width: cdfCellW * vg.Length(cols), height: cdfCellH * vg.Length(rows)}, nil
}

func cdfPanel(category int, utxos []UTXO) (*plot.Plot, error) {
	var dust, nonDust []float64
	for _, u := range utxos {
		if u.Sats <= dustThresholdSats {
			dust = append(dust, u.VBytes)
		} else {
			nonDust = append(nonDust, u.VBytes)
		}
	}

	title := fmt.Sprintf("%s\n(Dust=%d, Non-Dust=%d)", categoryName(category), len(dust), len(nonDust))
	p := newPlot(title, "UTXOs % (Ascending)", "")
	p.X.Min, p.X.Max = 0, 100
	p.Y.Min, p.Y.Max = 0, cdfYMax
	p.Y.Tick.Marker = linearTicks(0, cdfYMax, cdfYStep)

	if len(nonDust) > 0 {
		x, y := stats.ECDF(nonDust)
		if err := addStepLine(p, x, y, nonDustColor, "Non-Dust UTXOs"); err != nil {
			return nil, err
		}
	}
	if len(dust) > 0 {
		x, y := stats.ECDF(dust)
		if err := addStepLine(p, x, y, dustColor, "Dust UTXOs"); err != nil {
			return nil, err
		}
	}
	if err := addHorizontal(p, lockedUTXOBytes, 0, 100, lockedColor, nil, fmt.Sprintf("Locked UTXO (%d bytes)", lockedUTXOBytes)); err != nil {
		return nil, err
	}
	if category == CategoryMultiSig {
		if err := addSignatureMedians(p, utxos); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// addSignatureMedians draws the median size of multi-sig spends per signature count.
func addSignatureMedians(p *plot.Plot, utxos []UTXO) error {
	bySigs := make(map[int][]float64)
	for _, u := range utxos {
		if u.Signatures >= minMultiSigMedianAt {
			bySigs[u.Signatures] = append(bySigs[u.Signatures], u.VBytes)
		}
	}
	counts := make([]int, 0, len(bySigs))
	for n := range bySigs {
		counts = append(counts, n)
	}
	sort.Ints(counts)
	for _, n := range counts {
		s, err := stats.Summarize(bySigs[n])
		if err != nil {
			return err
		}
		if err := addHorizontal(p, s.Median, 0, 100, medianColor, dashed, fmt.Sprintf("%d-sig median (%.0f bytes)", n, s.Median)); err != nil {
			return err
		}
	}
	return nil
}
