package charts

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/goodnatureofminers/dustinsight7000/internal/dust/stats"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	curveColor     = color.Black
	thresholdColor = color.RGBA{R: 0x80, B: 0x80, A: 0xff}
	roiLineColor   = color.RGBA{R: 0xff, A: 0xff}
	victimColor    = rgb(0x1F77B4)
	attackColor    = rgb(0xFF7F0E)
	lockedColor    = rgb(0x2CA02C)
	dustColor      = roiLineColor
	nonDustColor   = victimColor
	medianColor    = color.RGBA{A: 0x80}

	dashed    = []vg.Length{vg.Points(6), vg.Points(3)}
	dashDot   = []vg.Length{vg.Points(6), vg.Points(2), vg.Points(1), vg.Points(2)}
	thickLine = vg.Points(2.5)
)

// figure is a rendered chart ready to be written as PNG.
type figure interface {
	Save(path string) error
}

type singleFigure struct {
	plot          *plot.Plot
	width, height vg.Length
}

func (f singleFigure) Save(path string) error {
	return f.plot.Save(f.width, f.height, path)
}

// gridFigure lays plots out in rows and columns on one canvas.
type gridFigure struct {
	plots         [][]*plot.Plot
	width, height vg.Length
}

func (f gridFigure) Save(path string) error {
	img := vgimg.New(f.width, f.height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(f.plots),
		Cols:      len(f.plots[0]),
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
	}
	canvases := plot.Align(f.plots, tiles, dc)
	for i := range f.plots {
		for j := range f.plots[i] {
			f.plots[i][j].Draw(canvases[i][j])
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(out); err != nil {
		_ = out.Close()
		return fmt.Errorf("write png: %w", err)
	}
	return out.Close()
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Legend.Left = true
	grid := plotter.NewGrid()
	grid.Vertical.Dashes = dashed
	grid.Horizontal.Dashes = dashed
	p.Add(grid)
	return p
}

func blankPlot() *plot.Plot {
	p := plot.New()
	p.HideAxes()
	return p
}

func addLine(p *plot.Plot, xys plotter.XYs, c color.Color, width vg.Length, dashes []vg.Length, legend string) error {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	l.Color = c
	l.Width = width
	l.Dashes = dashes
	p.Add(l)
	if legend != "" {
		p.Legend.Add(legend, l)
	}
	return nil
}

func addStepLine(p *plot.Plot, xs, ys []float64, c color.Color, legend string) error {
	l, err := plotter.NewLine(xyPairs(xs, ys))
	if err != nil {
		return err
	}
	l.StepStyle = plotter.PostStep
	l.Color = c
	l.Width = vg.Points(2)
	p.Add(l)
	if legend != "" {
		p.Legend.Add(legend, l)
	}
	return nil
}

func addVertical(p *plot.Plot, x, yMin, yMax float64, c color.Color, legend string) error {
	return addLine(p, plotter.XYs{{X: x, Y: yMin}, {X: x, Y: yMax}}, c, thickLine, dashed, legend)
}

func addHorizontal(p *plot.Plot, y, xMin, xMax float64, c color.Color, dashes []vg.Length, legend string) error {
	return addLine(p, plotter.XYs{{X: xMin, Y: y}, {X: xMax, Y: y}}, c, thickLine, dashes, legend)
}

func addScatter(p *plot.Plot, xys plotter.XYs, c color.Color, legend string) error {
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Radius = vg.Points(1.2)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)
	if legend != "" {
		p.Legend.Add(legend, s)
	}
	return nil
}

// addNote writes a text block with its top-left corner at (x, y) in data coordinates.
func addNote(p *plot.Plot, x, y float64, note string) error {
	l, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: x, Y: y}},
		Labels: []string{note},
	})
	if err != nil {
		return err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].YAlign = draw.YTop
	}
	p.Add(l)
	return nil
}

func xyPairs(xs, ys []float64) plotter.XYs {
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return xys
}

func indexed(ys []float64) plotter.XYs {
	xys := make(plotter.XYs, len(ys))
	for i, y := range ys {
		xys[i] = plotter.XY{X: float64(i + 1), Y: y}
	}
	return xys
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// transactionTicks labels the transaction axis in millions once it is long enough.
var transactionTicks = plot.TickerFunc(func(min, max float64) []plot.Tick {
	if max-min < 2e6 {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	var ticks []plot.Tick
	for v := math.Ceil(min/1e6) * 1e6; v <= max; v += 1e6 {
		ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf("%dM", int(v/1e6))})
	}
	return ticks
})

// linearTicks places labelled ticks every step from min to max.
func linearTicks(min, max, step float64) plot.ConstantTicks {
	var ticks []plot.Tick
	for v := min; v <= max+1e-9; v += step {
		ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf("%g", v)})
	}
	return ticks
}

// powerTicks labels decades from 1 to 10^maxExp, showing 1 as "0" and leaving the
// last decade unlabelled when hideLast is set.
func powerTicks(maxExp int, hideLast bool) plot.ConstantTicks {
	ticks := make([]plot.Tick, 0, maxExp+1)
	for e := 0; e <= maxExp; e++ {
		label := fmt.Sprintf("10^%d", e)
		switch {
		case e == 0:
			label = "0"
		case e == maxExp && hideLast:
			label = ""
		}
		ticks = append(ticks, plot.Tick{Value: math.Pow(10, float64(e)), Label: label})
	}
	return ticks
}

// roiScale maps ROI values onto evenly spaced decades 0, 10, 10^2 ... 10^7 with linear
// interpolation inside each decade.
type roiScale struct {
	pl interp.PiecewiseLinear
}

var roiScaleTicks = []float64{0, 10, 100, 1e3, 1e4, 1e5, 1e6, 1e7}

func newROIScale() (*roiScale, error) {
	positions := make([]float64, len(roiScaleTicks))
	for i := range positions {
		positions[i] = float64(i)
	}
	s := &roiScale{}
	if err := s.pl.Fit(roiScaleTicks, positions); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *roiScale) position(v float64) float64 {
	return s.pl.Predict(clamp(v, roiScaleTicks[0], roiScaleTicks[len(roiScaleTicks)-1]))
}

func (s *roiScale) ticks() plot.ConstantTicks {
	ticks := make([]plot.Tick, len(roiScaleTicks))
	for i := range roiScaleTicks {
		label := fmt.Sprintf("10^%d", i)
		switch i {
		case 0:
			label = "0"
		case len(roiScaleTicks) - 1:
			label = ""
		}
		ticks[i] = plot.Tick{Value: float64(i), Label: label}
	}
	return ticks
}

func summaryNote(title, unit string, s stats.Summary) string {
	return fmt.Sprintf("%s\nMin:    %.2f%s\nMax:    %.2f%s\nMean:   %.2f%s\nMedian: %.2f%s",
		title, s.Min, unit, s.Max, unit, s.Mean, unit, s.Median, unit)
}

func thresholdLabel(count, total int) string {
	return fmt.Sprintf("%d Txns (%.2f%%) >= ROI (100%%)", count, float64(count)/float64(total)*100)
}
