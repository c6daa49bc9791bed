package monitoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrExportRender is returned when an exposition format cannot be produced,
// e.g. a NaN or Inf observation. Export is read-only: registry state is
// never modified by a failed render.
var ErrExportRender = errors.New("metrics export render failed")

// CounterSnapshot is the JSON view of one counter series.
type CounterSnapshot struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Tags  Labels  `json:"tags"`
}

// GaugeSnapshot is the JSON view of one gauge series.
type GaugeSnapshot struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Tags  Labels  `json:"tags"`
}

// HistogramSnapshot is the JSON view of one histogram series, carrying the
// retained window and its derived statistics.
type HistogramSnapshot struct {
	Name   string         `json:"name"`
	Tags   Labels         `json:"tags"`
	Values []float64      `json:"values"`
	Stats  HistogramStats `json:"stats"`
}

// MetricsSnapshot is the full JSON introspection view of the registry.
type MetricsSnapshot struct {
	Counters   []CounterSnapshot   `json:"counters"`
	Gauges     []GaugeSnapshot     `json:"gauges"`
	Histograms []HistogramSnapshot `json:"histograms"`
}

// Snapshot returns a deep copy of all metric state, safe to iterate and
// serialize while mutations continue concurrently.
func (r *Registry) Snapshot() MetricsSnapshot {
	r.mu.RLock()

	snap := MetricsSnapshot{
		Counters:   make([]CounterSnapshot, 0, len(r.counters)),
		Gauges:     make([]GaugeSnapshot, 0, len(r.gauges)),
		Histograms: make([]HistogramSnapshot, 0, len(r.histograms)),
	}

	for _, c := range r.counters {
		snap.Counters = append(snap.Counters, CounterSnapshot{
			Name:  c.name,
			Value: c.value,
			Tags:  cloneLabels(c.labels),
		})
	}
	for _, g := range r.gauges {
		snap.Gauges = append(snap.Gauges, GaugeSnapshot{
			Name:  g.name,
			Value: g.value,
			Tags:  cloneLabels(g.labels),
		})
	}
	for _, h := range r.histograms {
		values := append([]float64(nil), h.values...)
		snap.Histograms = append(snap.Histograms, HistogramSnapshot{
			Name:   h.name,
			Tags:   cloneLabels(h.labels),
			Values: values,
			Stats:  computeStats(values),
		})
	}

	r.mu.RUnlock()

	sort.Slice(snap.Counters, func(i, j int) bool {
		return snapshotLess(snap.Counters[i].Name, snap.Counters[i].Tags, snap.Counters[j].Name, snap.Counters[j].Tags)
	})
	sort.Slice(snap.Gauges, func(i, j int) bool {
		return snapshotLess(snap.Gauges[i].Name, snap.Gauges[i].Tags, snap.Gauges[j].Name, snap.Gauges[j].Tags)
	})
	sort.Slice(snap.Histograms, func(i, j int) bool {
		return snapshotLess(snap.Histograms[i].Name, snap.Histograms[i].Tags, snap.Histograms[j].Name, snap.Histograms[j].Tags)
	})

	return snap
}

func snapshotLess(nameA string, tagsA Labels, nameB string, tagsB Labels) bool {
	if nameA != nameB {
		return nameA < nameB
	}
	return seriesKey(nameA, tagsA) < seriesKey(nameB, tagsB)
}

// PrometheusText renders all metrics in the Prometheus text exposition
// format (0.0.4 subset): a "# TYPE" line per metric name, one line per
// series, histogram quantile lines plus _count and _sum. The output ends
// with a trailing newline.
func (r *Registry) PrometheusText() (string, error) {
	snap := r.Snapshot()

	var b strings.Builder

	if err := renderSimple(&b, "counter", counterSeries(snap.Counters)); err != nil {
		return "", err
	}
	if err := renderSimple(&b, "gauge", gaugeSeries(snap.Gauges)); err != nil {
		return "", err
	}
	if err := renderHistograms(&b, snap.Histograms); err != nil {
		return "", err
	}

	return b.String(), nil
}

// simpleSeries is the common shape of counter and gauge rows.
type simpleSeries struct {
	name  string
	tags  Labels
	value float64
}

func counterSeries(counters []CounterSnapshot) []simpleSeries {
	out := make([]simpleSeries, len(counters))
	for i, c := range counters {
		out[i] = simpleSeries{name: c.Name, tags: c.Tags, value: c.Value}
	}
	return out
}

func gaugeSeries(gauges []GaugeSnapshot) []simpleSeries {
	out := make([]simpleSeries, len(gauges))
	for i, g := range gauges {
		out[i] = simpleSeries{name: g.Name, tags: g.Tags, value: g.Value}
	}
	return out
}

// renderSimple emits TYPE headers and value lines for counters or gauges.
// Input is already sorted by name, so a header is written when the name
// changes.
func renderSimple(b *strings.Builder, kind string, series []simpleSeries) error {
	prevName := ""
	for _, s := range series {
		if s.name != prevName {
			fmt.Fprintf(b, "# TYPE %s %s\n", s.name, kind)
			prevName = s.name
		}
		value, err := formatValue(s.name, s.value)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "%s%s %s\n", s.name, formatLabels(s.tags, "", ""), value)
	}
	return nil
}

func renderHistograms(b *strings.Builder, histograms []HistogramSnapshot) error {
	quantiles := []struct {
		label string
		value func(HistogramStats) float64
	}{
		{"0.5", func(s HistogramStats) float64 { return s.P50 }},
		{"0.95", func(s HistogramStats) float64 { return s.P95 }},
		{"0.99", func(s HistogramStats) float64 { return s.P99 }},
	}

	prevName := ""
	for _, h := range histograms {
		if h.Name != prevName {
			fmt.Fprintf(b, "# TYPE %s histogram\n", h.Name)
			prevName = h.Name
		}

		for _, q := range quantiles {
			value, err := formatValue(h.Name, q.value(h.Stats))
			if err != nil {
				return err
			}
			fmt.Fprintf(b, "%s%s %s\n", h.Name, formatLabels(h.Tags, "quantile", q.label), value)
		}

		sum, err := formatValue(h.Name, h.Stats.Sum)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "%s_count%s %d\n", h.Name, formatLabels(h.Tags, "", ""), h.Stats.Count)
		fmt.Fprintf(b, "%s_sum%s %s\n", h.Name, formatLabels(h.Tags, "", ""), sum)
	}
	return nil
}

// labelEscaper escapes label values for the text format.
var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// formatLabels renders a {k="v",...} block with keys sorted, optionally
// appending one extra pair (used for quantile labels). Empty label sets
// render as an empty string.
func formatLabels(labels Labels, extraKey, extraValue string) string {
	if len(labels) == 0 && extraKey == "" {
		return ""
	}

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(labelEscaper.Replace(labels[k]))
		b.WriteByte('"')
	}
	if extraKey != "" {
		if len(keys) > 0 {
			b.WriteByte(',')
		}
		b.WriteString(extraKey)
		b.WriteString(`="`)
		b.WriteString(labelEscaper.Replace(extraValue))
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String()
}

// formatValue renders a sample value, rejecting NaN and Inf so a pathological
// observation surfaces as an export error instead of unparseable output.
func formatValue(name string, value float64) (string, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", fmt.Errorf("%w: metric %q has non-finite value", ErrExportRender, name)
	}
	return strconv.FormatFloat(value, 'g', -1, 64), nil
}
