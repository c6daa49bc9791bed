package monitoring

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// histogramWindow bounds the number of retained observations per series.
// Long-run histograms are a sample of recent activity, not full history.
const histogramWindow = 1000

// histogram holds the retained observation window for one series. Derived
// statistics are computed on demand, never stored.
type histogram struct {
	name   string
	labels Labels
	values []float64
}

// observe appends a value, evicting the oldest once the window is full.
// Callers must hold the registry mutex.
func (h *histogram) observe(value float64) {
	h.values = append(h.values, value)
	if len(h.values) > histogramWindow {
		// Copy down instead of re-slicing so the backing array never grows
		// beyond the window.
		copy(h.values, h.values[len(h.values)-histogramWindow:])
		h.values = h.values[:histogramWindow]
	}
}

// HistogramStats is the derived view of one histogram series.
type HistogramStats struct {
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
	Avg   float64 `json:"avg"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
	P99   float64 `json:"p99"`
}

// computeStats derives count/sum/avg/min/max and nearest-rank percentiles
// from a copy of the retained values.
func computeStats(values []float64) HistogramStats {
	if len(values) == 0 {
		return HistogramStats{}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	return HistogramStats{
		Count: len(sorted),
		Sum:   floats.Sum(sorted),
		Avg:   stat.Mean(sorted, nil),
		Min:   floats.Min(sorted),
		Max:   floats.Max(sorted),
		P50:   nearestRank(sorted, 0.5),
		P95:   nearestRank(sorted, 0.95),
		P99:   nearestRank(sorted, 0.99),
	}
}

// nearestRank returns the value at index floor(count*p), clamped to the last
// element. No interpolation: the percentile is always an observed value.
// Input must be sorted ascending and non-empty.
func nearestRank(sorted []float64, p float64) float64 {
	idx := int(math.Floor(float64(len(sorted)) * p))
	if idx > len(sorted)-1 {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
