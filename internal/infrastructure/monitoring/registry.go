package monitoring

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Labels is the dimension set attached to a metric series. Two recordings
// with the same name but different label values are independent series.
type Labels map[string]string

// Config controls registry construction.
type Config struct {
	// Port the exposition listener binds to. The registry itself never
	// listens; the server layer reads this.
	Port int
	// Path of the exposition endpoint.
	Path string
	// Prefix is prepended to every metric name recorded through the
	// convenience layer (RecordAPICall and friends).
	Prefix string
	// EnableDefaultMetrics controls whether RecordSystemMetrics samples
	// runtime gauges.
	EnableDefaultMetrics bool
}

// DefaultConfig returns production-ready registry configuration.
func DefaultConfig() Config {
	return Config{
		Port:                 9090,
		Path:                 "/metrics",
		Prefix:               "myco_",
		EnableDefaultMetrics: true,
	}
}

// counter is a monotonically non-decreasing accumulator.
type counter struct {
	name   string
	labels Labels
	value  float64
}

// gauge is a point-in-time value that can move in either direction.
type gauge struct {
	name   string
	labels Labels
	value  float64
}

// Registry owns all metric state for the process: counters, gauges and
// histograms, each keyed by canonical series identity. All mutations are
// single critical sections, so concurrent increments never lose updates.
type Registry struct {
	cfg       Config
	startTime time.Time

	mu         sync.RWMutex
	counters   map[string]*counter
	gauges     map[string]*gauge
	histograms map[string]*histogram
	timers     map[TimerHandle]time.Time
	timerSeq   uint64
}

// New creates a registry. One instance is created at process start and
// injected into every component that records metrics.
func New(cfg Config) *Registry {
	if cfg.Port == 0 {
		cfg.Port = 9090
	}
	if cfg.Path == "" {
		cfg.Path = "/metrics"
	}
	return &Registry{
		cfg:        cfg,
		startTime:  time.Now(),
		counters:   make(map[string]*counter),
		gauges:     make(map[string]*gauge),
		histograms: make(map[string]*histogram),
		timers:     make(map[TimerHandle]time.Time),
	}
}

// Config returns the configuration the registry was built with.
func (r *Registry) Config() Config {
	return r.cfg
}

// IncCounter adds delta to the counter identified by (name, labels),
// creating it on first use. Deltas are expected to be non-negative; the
// registry stores whatever the caller passes.
func (r *Registry) IncCounter(name string, delta float64, labels Labels) {
	key := seriesKey(name, labels)

	r.mu.Lock()
	c, ok := r.counters[key]
	if !ok {
		c = &counter{name: name, labels: cloneLabels(labels)}
		r.counters[key] = c
	}
	c.value += delta
	r.mu.Unlock()
}

// SetGauge overwrites the gauge's stored value unconditionally.
func (r *Registry) SetGauge(name string, value float64, labels Labels) {
	key := seriesKey(name, labels)

	r.mu.Lock()
	g, ok := r.gauges[key]
	if !ok {
		g = &gauge{name: name, labels: cloneLabels(labels)}
		r.gauges[key] = g
	}
	g.value = value
	r.mu.Unlock()
}

// IncGauge adds delta to the gauge, creating it at a zero baseline.
func (r *Registry) IncGauge(name string, delta float64, labels Labels) {
	key := seriesKey(name, labels)

	r.mu.Lock()
	g, ok := r.gauges[key]
	if !ok {
		g = &gauge{name: name, labels: cloneLabels(labels)}
		r.gauges[key] = g
	}
	g.value += delta
	r.mu.Unlock()
}

// DecGauge subtracts delta from the gauge, creating it at a zero baseline.
func (r *Registry) DecGauge(name string, delta float64, labels Labels) {
	r.IncGauge(name, -delta, labels)
}

// Observe appends value to the histogram's retained window, evicting the
// oldest observation once the window holds histogramWindow values. The
// append and eviction are one atomic unit.
func (r *Registry) Observe(name string, value float64, labels Labels) {
	key := seriesKey(name, labels)

	r.mu.Lock()
	h, ok := r.histograms[key]
	if !ok {
		h = &histogram{name: name, labels: cloneLabels(labels)}
		r.histograms[key] = h
	}
	h.observe(value)
	r.mu.Unlock()
}

// Reset clears all counters, gauges, histograms and in-flight timer
// bookkeeping. Intended for test isolation, not production serving paths.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.counters = make(map[string]*counter)
	r.gauges = make(map[string]*gauge)
	r.histograms = make(map[string]*histogram)
	r.timers = make(map[TimerHandle]time.Time)
	r.mu.Unlock()
}

// UptimeSeconds returns seconds elapsed since the registry was constructed.
func (r *Registry) UptimeSeconds() float64 {
	return time.Since(r.startTime).Seconds()
}

// prefixed applies the configured convenience-layer prefix to a metric name.
func (r *Registry) prefixed(name string) string {
	return r.cfg.Prefix + name
}

// seriesKey computes the canonical identity for (name, labels): label keys
// sorted and concatenated, so insertion order never creates duplicate series.
func seriesKey(name string, labels Labels) string {
	if len(labels) == 0 {
		return name
	}

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(name)
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(labels[k])
	}
	return b.String()
}

// cloneLabels copies a label map so stored series never alias caller memory.
func cloneLabels(labels Labels) Labels {
	if len(labels) == 0 {
		return nil
	}
	out := make(Labels, len(labels))
	for k, v := range labels {
		out[k] = v
	}
	return out
}
