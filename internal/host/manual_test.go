package host

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualAfterFuncRunsWhenDue(t *testing.T) {
	m := NewManual()
	fired := 0
	m.AfterFunc(100*time.Millisecond, func() { fired++ })

	m.Advance(99 * time.Millisecond)
	assert.Equal(t, 0, fired)

	m.Advance(1 * time.Millisecond)
	assert.Equal(t, 1, fired)

	m.Advance(time.Second)
	assert.Equal(t, 1, fired, "one-shot callbacks must not repeat")
}

func TestManualStopCancels(t *testing.T) {
	m := NewManual()
	fired := false
	h := m.AfterFunc(50*time.Millisecond, func() { fired = true })

	h.Stop()
	h.Stop()
	m.Advance(time.Second)

	assert.False(t, fired)
	assert.Zero(t, m.Pending())
}

func TestManualRunsInTimeOrder(t *testing.T) {
	m := NewManual()
	var order []string
	m.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, "b") })

	m.Advance(50 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestManualNestedScheduling(t *testing.T) {
	m := NewManual()
	var at []time.Duration
	m.AfterFunc(10*time.Millisecond, func() {
		at = append(at, m.Elapsed())
		m.AfterFunc(15*time.Millisecond, func() {
			at = append(at, m.Elapsed())
		})
	})

	m.Advance(100 * time.Millisecond)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 25 * time.Millisecond}, at)
	assert.Equal(t, 100*time.Millisecond, m.Elapsed())
}

func TestManualAnimateEndsAtOne(t *testing.T) {
	m := NewManual()
	var steps []float32
	m.Animate(100*time.Millisecond, func(f float32) { steps = append(steps, f) })

	m.Advance(50 * time.Millisecond)
	require.NotEmpty(t, steps)
	assert.Less(t, steps[len(steps)-1], float32(1))

	m.Advance(time.Second)
	assert.Equal(t, float32(1), steps[len(steps)-1])
	for i := 1; i < len(steps); i++ {
		assert.GreaterOrEqual(t, steps[i], steps[i-1])
	}
}

func TestManualAnimateStop(t *testing.T) {
	m := NewManual()
	var last float32
	h := m.Animate(100*time.Millisecond, func(f float32) { last = f })

	m.Advance(40 * time.Millisecond)
	h.Stop()
	assert.Zero(t, m.Pending())
	stoppedAt := last
	m.Advance(time.Second)

	assert.Equal(t, stoppedAt, last)
	assert.Less(t, last, float32(1))
}

func TestManualNow(t *testing.T) {
	m := NewManual()
	start := m.Now()
	m.Advance(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, m.Now().Sub(start))
}

func TestLerp(t *testing.T) {
	assert.Equal(t, float32(1), Lerp(1, 0.95, 0))
	assert.Equal(t, float32(0.95), Lerp(1, 0.95, 1))
	assert.InDelta(t, 0.5, Lerp(0, 1, 0.5), 1e-6)
	assert.Equal(t, float32(0), Lerp(0, 1, -2))
	assert.Equal(t, float32(1), Lerp(0, 1, 3))
}

func TestManualClockNeverRunsBackwards(t *testing.T) {
	m := NewManual()
	fired := 0
	m.AfterFunc(100*time.Millisecond, func() { fired++ })

	m.AdvanceTo(60 * time.Millisecond)
	start := m.Now()

	m.AdvanceTo(10 * time.Millisecond)
	m.Advance(-time.Second)
	assert.Equal(t, 60*time.Millisecond, m.Elapsed())
	assert.Equal(t, start, m.Now())
	assert.Zero(t, fired)

	m.AdvanceTo(100 * time.Millisecond)
	assert.Equal(t, 1, fired)
}

func TestManualFrameInterval(t *testing.T) {
	m := NewManual()
	m.SetFrameInterval(50 * time.Millisecond)
	m.SetFrameInterval(0)

	var steps []float32
	var at []time.Duration
	m.Animate(100*time.Millisecond, func(f float32) {
		steps = append(steps, f)
		at = append(at, m.Elapsed())
	})
	m.Advance(time.Second)

	assert.Equal(t, []float32{0.5, 1}, steps)
	assert.Equal(t, []time.Duration{50 * time.Millisecond, 100 * time.Millisecond}, at)
}
