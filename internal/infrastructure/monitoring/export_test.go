package monitoring

import (
	"math"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusTextCounterLine(t *testing.T) {
	r := newTestRegistry()

	r.IncCounter("http_requests_total", 7, Labels{"method": "GET", "route": "/x"})

	text, err := r.PrometheusText()
	require.NoError(t, err)

	assert.Contains(t, text, "# TYPE http_requests_total counter\n")
	assert.Contains(t, text, `http_requests_total{method="GET",route="/x"} 7`+"\n")
	assert.True(t, strings.HasSuffix(text, "\n"))
}

func TestPrometheusTextEmptyLabelSet(t *testing.T) {
	r := newTestRegistry()

	r.SetGauge("uptime_seconds", 12.5, nil)

	text, err := r.PrometheusText()
	require.NoError(t, err)

	assert.Contains(t, text, "uptime_seconds 12.5\n")
	assert.NotContains(t, text, "uptime_seconds{}")
}

func TestPrometheusTextLabelEscaping(t *testing.T) {
	r := newTestRegistry()

	r.IncCounter("queries_total", 1, Labels{"q": `say "hi"`})

	text, err := r.PrometheusText()
	require.NoError(t, err)

	assert.Contains(t, text, `queries_total{q="say \"hi\""} 1`+"\n")
}

// The rendered counter/gauge exposition must be consumable by the standard
// Prometheus text-format parser.
func TestPrometheusTextParseable(t *testing.T) {
	r := newTestRegistry()

	r.IncCounter("requests_total", 7, Labels{"method": "GET", "route": "/x"})
	r.IncCounter("requests_total", 3, Labels{"method": "POST", "route": `/y "quoted"`})
	r.SetGauge("connections", 4, nil)

	text, err := r.PrometheusText()
	require.NoError(t, err)

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(strings.NewReader(text))
	require.NoError(t, err)

	requests, ok := families["requests_total"]
	require.True(t, ok)
	assert.Equal(t, dto.MetricType_COUNTER, requests.GetType())
	require.Len(t, requests.GetMetric(), 2)

	connections, ok := families["connections"]
	require.True(t, ok)
	assert.Equal(t, dto.MetricType_GAUGE, connections.GetType())
	assert.Equal(t, float64(4), connections.GetMetric()[0].GetGauge().GetValue())
}

func TestPrometheusTextHistogramLines(t *testing.T) {
	r := newTestRegistry()

	for i := 1; i <= 100; i++ {
		r.Observe("latency_seconds", float64(i), Labels{"route": "/x"})
	}

	text, err := r.PrometheusText()
	require.NoError(t, err)

	assert.Contains(t, text, "# TYPE latency_seconds histogram\n")
	assert.Contains(t, text, `latency_seconds{route="/x",quantile="0.5"} 51`+"\n")
	assert.Contains(t, text, `latency_seconds{route="/x",quantile="0.95"} 96`+"\n")
	assert.Contains(t, text, `latency_seconds{route="/x",quantile="0.99"} 100`+"\n")
	assert.Contains(t, text, `latency_seconds_count{route="/x"} 100`+"\n")
	assert.Contains(t, text, `latency_seconds_sum{route="/x"} 5050`+"\n")
}

func TestPrometheusTextHistogramBareLabels(t *testing.T) {
	r := newTestRegistry()

	r.Observe("d", 2, nil)

	text, err := r.PrometheusText()
	require.NoError(t, err)

	assert.Contains(t, text, `d{quantile="0.5"} 2`+"\n")
	assert.Contains(t, text, "d_count 1\n")
	assert.Contains(t, text, "d_sum 2\n")
}

func TestPrometheusTextRenderError(t *testing.T) {
	r := newTestRegistry()

	r.SetGauge("bad", math.NaN(), nil)

	_, err := r.PrometheusText()
	require.ErrorIs(t, err, ErrExportRender)

	// Export is read-only: the registry still serves other metrics after a
	// failed render is corrected.
	r.SetGauge("bad", 1, nil)
	text, err := r.PrometheusText()
	require.NoError(t, err)
	assert.Contains(t, text, "bad 1\n")
}

func TestSnapshotIsACopy(t *testing.T) {
	r := newTestRegistry()

	r.IncCounter("c", 1, Labels{"k": "v"})
	r.Observe("h", 1, nil)

	snap := r.Snapshot()
	snap.Counters[0].Tags["k"] = "mutated"
	snap.Histograms[0].Values[0] = 999

	fresh := r.Snapshot()
	assert.Equal(t, "v", fresh.Counters[0].Tags["k"])
	assert.Equal(t, float64(1), fresh.Histograms[0].Values[0])
}

func TestSnapshotDeterministicOrder(t *testing.T) {
	r := newTestRegistry()

	r.IncCounter("b_total", 1, nil)
	r.IncCounter("a_total", 1, Labels{"z": "2"})
	r.IncCounter("a_total", 1, Labels{"z": "1"})

	snap := r.Snapshot()
	require.Len(t, snap.Counters, 3)
	assert.Equal(t, "a_total", snap.Counters[0].Name)
	assert.Equal(t, "1", snap.Counters[0].Tags["z"])
	assert.Equal(t, "2", snap.Counters[1].Tags["z"])
	assert.Equal(t, "b_total", snap.Counters[2].Name)
}
