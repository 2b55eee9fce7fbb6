// Package stats holds the descriptive statistics used by the filtration and chart stages.
package stats

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrNoData is returned when a statistic is requested over an empty sample.
var ErrNoData = errors.New("stats: no data")

// Percentile returns the p-th percentile (0..100) of sorted using linear interpolation
// between closest ranks, the default numpy convention.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	p = math.Max(0, math.Min(100, p))
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Fence is the Tukey upper fence of a sample.
type Fence struct {
	Q1    float64
	Q3    float64
	IQR   float64
	Upper float64
}

// UpperFence computes Q3 + multiplier*IQR. values is not modified.
func UpperFence(values []float64, multiplier float64) (Fence, error) {
	if len(values) == 0 {
		return Fence{}, ErrNoData
	}
	sorted := sortedCopy(values)
	q1 := Percentile(sorted, 25)
	q3 := Percentile(sorted, 75)
	iqr := q3 - q1
	return Fence{Q1: q1, Q3: q3, IQR: iqr, Upper: q3 + multiplier*iqr}, nil
}

// Summary is the min/max/mean/median block printed on charts. Min ignores non-positive
// values and is 0 when there are none.
type Summary struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// Summarize computes a Summary of values.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrNoData
	}
	sorted := sortedCopy(values)

	var s Summary
	for _, v := range sorted {
		if v > 0 {
			s.Min = v
			break
		}
	}
	s.Max = floats.Max(sorted)
	s.Mean = stat.Mean(sorted, nil)
	s.Median = Percentile(sorted, 50)
	return s, nil
}

// GroupMeans averages consecutive groups of size values; the last group may be shorter.
func GroupMeans(values []float64, size int) []float64 {
	if size <= 0 {
		size = 1
	}
	means := make([]float64, 0, (len(values)+size-1)/size)
	for i := 0; i < len(values); i += size {
		end := i + size
		if end > len(values) {
			end = len(values)
		}
		means = append(means, stat.Mean(values[i:end], nil))
	}
	return means
}

// Linspace returns n evenly spaced values over [start, end].
func Linspace(start, end float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, end)
}

// ECDF returns the step points of the empirical distribution of values: x holds the
// cumulative share in percent and y the sorted values, both prefixed with a start point.
func ECDF(values []float64) (x, y []float64) {
	if len(values) == 0 {
		return []float64{0}, []float64{0}
	}
	sorted := sortedCopy(values)
	n := float64(len(sorted))
	x = make([]float64, 0, len(sorted)+1)
	y = make([]float64, 0, len(sorted)+1)
	x = append(x, 0)
	y = append(y, sorted[0])
	for i, v := range sorted {
		x = append(x, float64(i+1)/n*100)
		y = append(y, v)
	}
	return x, y
}

// FirstAtLeast returns the index of the first value >= threshold in ascending sorted,
// or -1.
func FirstAtLeast(sorted []float64, threshold float64) int {
	i := sort.SearchFloat64s(sorted, threshold)
	if i == len(sorted) {
		return -1
	}
	return i
}

// CountAtLeast counts values >= threshold.
func CountAtLeast(values []float64, threshold float64) int {
	var n int
	for _, v := range values {
		if v >= threshold {
			n++
		}
	}
	return n
}

// FillGaps replaces NaN values in place by linear interpolation between the nearest
// known neighbours; leading and trailing gaps take the nearest known value. A slice
// without any known value is left untouched.
func FillGaps(values []float64) []float64 {
	prev := -1
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		switch {
		case prev == -1:
			for j := 0; j < i; j++ {
				values[j] = v
			}
		case i-prev > 1:
			from := values[prev]
			step := (v - from) / float64(i-prev)
			for j := prev + 1; j < i; j++ {
				values[j] = from + step*float64(j-prev)
			}
		}
		prev = i
	}
	if prev >= 0 {
		for j := prev + 1; j < len(values); j++ {
			values[j] = values[prev]
		}
	}
	return values
}

// SegmentedEMA smooths values with an exponential moving average whose factor switches
// from alphaMain to alphaTail at index split.
func SegmentedEMA(values []float64, alphaMain, alphaTail float64, split int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		a := alphaMain
		if i >= split {
			a = alphaTail
		}
		out[i] = a*values[i] + (1-a)*out[i-1]
	}
	return out
}

// Downsample keeps at most limit evenly spaced points of x and y, always including
// both ends.
func Downsample(x, y []float64, limit int) ([]float64, []float64) {
	if limit <= 0 || len(x) <= limit {
		return x, y
	}
	idx := Linspace(0, float64(len(x)-1), limit)
	xs := make([]float64, len(idx))
	ys := make([]float64, len(idx))
	for i, f := range idx {
		j := int(f + 1e-9)
		xs[i] = x[j]
		ys[i] = y[j]
	}
	return xs, ys
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}
