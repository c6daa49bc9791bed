package monitoring

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownTimer is returned by EndTimer for a handle that was never
// started, was already ended, or belongs to a different registry instance.
// A silent zero duration would corrupt histograms, so this is an explicit
// error instead of a no-op.
var ErrUnknownTimer = errors.New("unknown timer handle")

// TimerHandle is an ephemeral correlation token pairing a StartTimer call
// with its EndTimer. It is unique per in-flight timer, so concurrent timers
// on the same name never collide.
type TimerHandle string

// StartTimer captures a start time and returns an opaque handle for EndTimer.
func (r *Registry) StartTimer(name string) TimerHandle {
	now := time.Now()

	r.mu.Lock()
	r.timerSeq++
	handle := TimerHandle(fmt.Sprintf("%s:%d:%d", name, now.UnixNano(), r.timerSeq))
	r.timers[handle] = now
	r.mu.Unlock()

	return handle
}

// EndTimer consumes a handle, records the elapsed seconds into the named
// histogram and returns the elapsed duration. Ending an unknown or already
// consumed handle returns ErrUnknownTimer and records nothing.
func (r *Registry) EndTimer(handle TimerHandle, metric string, labels Labels) (time.Duration, error) {
	r.mu.Lock()
	start, ok := r.timers[handle]
	if ok {
		delete(r.timers, handle)
	}
	r.mu.Unlock()

	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTimer, handle)
	}

	elapsed := time.Since(start)
	r.Observe(metric, elapsed.Seconds(), labels)
	return elapsed, nil
}

// Time wraps a unit of work: it records the elapsed seconds under
// "<name>_duration" tagged status=success or status=error, increments
// "<name>_errors" on failure, and returns the operation's own error
// unchanged. The timing observation happens exactly once per call.
func (r *Registry) Time(name string, labels Labels, op func() error) error {
	start := time.Now()
	err := op()
	elapsed := time.Since(start)

	status := "success"
	if err != nil {
		status = "error"
	}

	durationLabels := cloneLabels(labels)
	if durationLabels == nil {
		durationLabels = Labels{}
	}
	durationLabels["status"] = status
	r.Observe(name+"_duration", elapsed.Seconds(), durationLabels)

	if err != nil {
		r.IncCounter(name+"_errors", 1, labels)
	}
	return err
}
