package monitoring

import "runtime"

// RecordSystemMetrics samples process-level runtime gauges: memory, GC and
// goroutine counts, plus uptime. It is driven by a caller-owned ticker
// (reference cadence 30s) and is idempotent at any cadence; the registry
// never schedules itself. A no-op when default metrics are disabled.
func (r *Registry) RecordSystemMetrics() {
	if !r.cfg.EnableDefaultMetrics {
		return
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	r.SetGauge(r.prefixed("process_resident_memory_bytes"), float64(ms.Sys), nil)
	r.SetGauge(r.prefixed("process_heap_alloc_bytes"), float64(ms.HeapAlloc), nil)
	r.SetGauge(r.prefixed("process_heap_sys_bytes"), float64(ms.HeapSys), nil)
	r.SetGauge(r.prefixed("process_stack_sys_bytes"), float64(ms.StackSys), nil)
	r.SetGauge(r.prefixed("process_gc_pause_total_seconds"), float64(ms.PauseTotalNs)/1e9, nil)
	r.SetGauge(r.prefixed("process_gc_runs_total"), float64(ms.NumGC), nil)
	r.SetGauge(r.prefixed("process_goroutines"), float64(runtime.NumGoroutine()), nil)
	r.SetGauge(r.prefixed("process_uptime_seconds"), r.UptimeSeconds(), nil)
}
