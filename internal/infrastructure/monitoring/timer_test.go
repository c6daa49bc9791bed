package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerRoundTrip(t *testing.T) {
	r := newTestRegistry()

	handle := r.StartTimer("save")
	elapsed, err := r.EndTimer(handle, "save_duration_seconds", Labels{"kind": "file"})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, elapsed, time.Duration(0))

	h, ok := findHistogram(r.Snapshot(), "save_duration_seconds", Labels{"kind": "file"})
	require.True(t, ok)
	assert.Equal(t, 1, h.Stats.Count)
}

func TestTimerUnknownHandle(t *testing.T) {
	r := newTestRegistry()

	_, err := r.EndTimer(TimerHandle("never-started"), "d", nil)
	require.ErrorIs(t, err, ErrUnknownTimer)
	assert.Empty(t, r.Snapshot().Histograms)
}

func TestTimerDoubleEnd(t *testing.T) {
	r := newTestRegistry()

	handle := r.StartTimer("op")
	_, err := r.EndTimer(handle, "d", nil)
	require.NoError(t, err)

	_, err = r.EndTimer(handle, "d", nil)
	require.ErrorIs(t, err, ErrUnknownTimer)

	h, ok := findHistogram(r.Snapshot(), "d", nil)
	require.True(t, ok)
	assert.Equal(t, 1, h.Stats.Count)
}

func TestConcurrentTimersDoNotCollide(t *testing.T) {
	r := newTestRegistry()

	first := r.StartTimer("op")
	second := r.StartTimer("op")
	assert.NotEqual(t, first, second)

	_, err := r.EndTimer(first, "d", nil)
	require.NoError(t, err)
	_, err = r.EndTimer(second, "d", nil)
	require.NoError(t, err)
}

func TestTimeSuccess(t *testing.T) {
	r := newTestRegistry()

	err := r.Time("compile", Labels{"lang": "go"}, func() error {
		return nil
	})
	require.NoError(t, err)

	snap := r.Snapshot()
	h, ok := findHistogram(snap, "compile_duration", Labels{"lang": "go", "status": "success"})
	require.True(t, ok)
	assert.Equal(t, 1, h.Stats.Count)

	_, ok = findCounter(snap, "compile_errors", Labels{"lang": "go"})
	assert.False(t, ok)
}

func TestTimeErrorPath(t *testing.T) {
	r := newTestRegistry()

	boom := errors.New("boom")
	err := r.Time("compile", nil, func() error {
		return boom
	})
	// The operation's own error comes back unchanged.
	require.Same(t, boom, err)

	snap := r.Snapshot()
	h, ok := findHistogram(snap, "compile_duration", Labels{"status": "error"})
	require.True(t, ok)
	assert.Equal(t, 1, h.Stats.Count)

	c, ok := findCounter(snap, "compile_errors", nil)
	require.True(t, ok)
	assert.Equal(t, float64(1), c.Value)
}

func TestTimeDoesNotMutateCallerLabels(t *testing.T) {
	r := newTestRegistry()

	labels := Labels{"lang": "go"}
	_ = r.Time("build", labels, func() error { return nil })

	assert.Equal(t, Labels{"lang": "go"}, labels)
}
