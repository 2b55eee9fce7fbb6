package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{name: "q1 of four", sorted: []float64{1, 2, 3, 4}, p: 25, want: 1.75},
		{name: "q3 of four", sorted: []float64{1, 2, 3, 4}, p: 75, want: 3.25},
		{name: "median of even", sorted: []float64{1, 2, 3, 4}, p: 50, want: 2.5},
		{name: "exact rank", sorted: []float64{1, 2, 3, 4, 5}, p: 25, want: 2},
		{name: "min", sorted: []float64{3, 9}, p: 0, want: 3},
		{name: "max", sorted: []float64{3, 9}, p: 100, want: 9},
		{name: "clamped", sorted: []float64{3, 9}, p: 150, want: 9},
		{name: "single", sorted: []float64{7}, p: 75, want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Percentile(tt.sorted, tt.p), 1e-12)
		})
	}
	assert.True(t, math.IsNaN(Percentile(nil, 50)))
}

func TestUpperFence(t *testing.T) {
	tests := []struct {
		name       string
		values     []float64
		multiplier float64
		want       Fence
	}{
		{name: "unsorted input", values: []float64{4, 1, 3, 2}, multiplier: 1.5, want: Fence{Q1: 1.75, Q3: 3.25, IQR: 1.5, Upper: 5.5}},
		{name: "with outlier", values: []float64{1, 2, 3, 4, 100}, multiplier: 1.5, want: Fence{Q1: 2, Q3: 4, IQR: 2, Upper: 7}},
		{name: "constant", values: []float64{5, 5, 5}, multiplier: 3, want: Fence{Q1: 5, Q3: 5, IQR: 0, Upper: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UpperFence(tt.values, tt.multiplier)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.Q1, got.Q1, 1e-12)
			assert.InDelta(t, tt.want.Q3, got.Q3, 1e-12)
			assert.InDelta(t, tt.want.IQR, got.IQR, 1e-12)
			assert.InDelta(t, tt.want.Upper, got.Upper, 1e-12)
		})
	}

	values := []float64{3, 1, 2}
	_, err := UpperFence(values, 1.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, values, "input must not be reordered")

	_, err = UpperFence(nil, 1.5)
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestSummarize(t *testing.T) {
	s, err := Summarize([]float64{0, 0, 4, 2, 10})
	require.NoError(t, err)
	assert.Equal(t, Summary{Min: 2, Max: 10, Mean: 3.2, Median: 2}, s)

	s, err = Summarize([]float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Min)

	_, err = Summarize(nil)
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestGroupMeans(t *testing.T) {
	assert.Equal(t, []float64{1.5, 3.5, 5}, GroupMeans([]float64{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, []float64{1, 2}, GroupMeans([]float64{1, 2}, 0))
	assert.Empty(t, GroupMeans(nil, 10))
}

func TestLinspace(t *testing.T) {
	assert.Equal(t, []float64{1, 1.5, 2}, Linspace(1, 2, 3))
	assert.Equal(t, []float64{4}, Linspace(4, 9, 1))
	assert.Nil(t, Linspace(0, 1, 0))
}

func TestECDF(t *testing.T) {
	x, y := ECDF([]float64{30, 10, 20, 40})
	assert.Equal(t, []float64{0, 25, 50, 75, 100}, x)
	assert.Equal(t, []float64{10, 10, 20, 30, 40}, y)

	x, y = ECDF(nil)
	assert.Equal(t, []float64{0}, x)
	assert.Equal(t, []float64{0}, y)
}

func TestFirstAtLeast(t *testing.T) {
	sorted := []float64{0, 50, 100, 100, 400}
	assert.Equal(t, 2, FirstAtLeast(sorted, 100))
	assert.Equal(t, 0, FirstAtLeast(sorted, -1))
	assert.Equal(t, -1, FirstAtLeast(sorted, 1000))
	assert.Equal(t, 3, CountAtLeast(sorted, 100))
}

func TestFillGaps(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name   string
		values []float64
		want   []float64
	}{
		{name: "interior", values: []float64{1, nan, nan, 4}, want: []float64{1, 2, 3, 4}},
		{name: "edges", values: []float64{nan, 2, nan, 6, nan}, want: []float64{2, 2, 4, 6, 6}},
		{name: "complete", values: []float64{1, 2}, want: []float64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FillGaps(tt.values))
		})
	}

	all := FillGaps([]float64{nan, nan})
	assert.True(t, math.IsNaN(all[0]) && math.IsNaN(all[1]))
}

func TestSegmentedEMA(t *testing.T) {
	got := SegmentedEMA([]float64{10, 20, 20, 0}, 0.5, 1, 3)
	assert.Equal(t, []float64{10, 15, 17.5, 0}, got)
	assert.Empty(t, SegmentedEMA(nil, 0.5, 0.5, 0))
}

func TestDownsample(t *testing.T) {
	x := make([]float64, 1001)
	y := make([]float64, 1001)
	for i := range x {
		x[i] = float64(i + 1)
		y[i] = float64(i * 2)
	}

	xs, ys := Downsample(x, y, 11)
	require.Len(t, xs, 11)
	require.Len(t, ys, 11)
	assert.Equal(t, 1.0, xs[0])
	assert.Equal(t, 1001.0, xs[10])
	assert.Equal(t, 101.0, xs[1])
	assert.Equal(t, 200.0, ys[1])

	xs, _ = Downsample(x[:5], y[:5], 11)
	assert.Len(t, xs, 5)
}
