package hold

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productive-lock/internal/host"
)

type recordingFeedback struct {
	mu        sync.Mutex
	taps      int
	successes int
}

func (r *recordingFeedback) LightTap() {
	r.mu.Lock()
	r.taps++
	r.mu.Unlock()
}

func (r *recordingFeedback) SuccessNotification() {
	r.mu.Lock()
	r.successes++
	r.mu.Unlock()
}

type recordingObserver struct {
	transitions []Transition
}

func (r *recordingObserver) OnTransition(tr Transition) {
	r.transitions = append(r.transitions, tr)
}

type fixture struct {
	host      *host.Manual
	control   *Control
	feedback  *recordingFeedback
	observer  *recordingObserver
	activated []time.Duration
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	f := &fixture{
		host:     host.NewManual(),
		feedback: &recordingFeedback{},
		observer: &recordingObserver{},
	}
	base := []Option{
		WithFeedback(f.feedback),
		WithObserver(f.observer),
		WithOnActivate(func() {
			f.activated = append(f.activated, f.host.Elapsed())
		}),
	}
	f.control = New(f.host, append(base, opts...)...)
	t.Cleanup(f.control.Close)
	return f
}

func TestInitialState(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, Snapshot{State: Idle, Progress: 0, Scale: RestingScale}, f.control.Snapshot())
	assert.Equal(t, DefaultDuration, f.control.Duration())
	assert.Equal(t, DefaultCelebrationDelay, f.control.CelebrationDelay())
}

func TestEarlyReleaseNeverActivates(t *testing.T) {
	releases := []time.Duration{
		1 * time.Millisecond,
		250 * time.Millisecond,
		500 * time.Millisecond,
		999 * time.Millisecond,
	}

	for _, release := range releases {
		t.Run(release.String(), func(t *testing.T) {
			f := newFixture(t)

			require.True(t, f.control.PressBegin())
			f.host.Advance(release)
			f.control.PressEnd()

			assert.Equal(t, Idle, f.control.State())
			f.host.Advance(5 * time.Second)

			assert.Empty(t, f.activated)
			assert.Equal(t, Idle, f.control.State())
			assert.Equal(t, float32(0), f.control.Progress())
			assert.Equal(t, RestingScale, f.control.Scale())
			assert.Zero(t, f.feedback.successes)
		})
	}
}

func TestReleaseAtHalfwayIsIdleAt600ms(t *testing.T) {
	f := newFixture(t)

	f.control.PressBegin()
	f.host.AdvanceTo(500 * time.Millisecond)
	f.control.PressEnd()
	f.host.AdvanceTo(600 * time.Millisecond)

	assert.Equal(t, Idle, f.control.State())
	assert.Empty(t, f.activated)
}

func TestUnreleasedHoldActivatesAfterDurationPlusDelay(t *testing.T) {
	f := newFixture(t)

	f.control.PressBegin()

	f.host.AdvanceTo(999 * time.Millisecond)
	assert.Equal(t, Holding, f.control.State())

	f.host.AdvanceTo(1000 * time.Millisecond)
	assert.Equal(t, Activated, f.control.State())
	assert.Equal(t, 1, f.feedback.successes)
	assert.Empty(t, f.activated, "callback is deferred past the timer fire")

	f.host.AdvanceTo(1299 * time.Millisecond)
	assert.Empty(t, f.activated)

	f.host.AdvanceTo(1300 * time.Millisecond)
	require.Len(t, f.activated, 1)
	assert.Equal(t, 1300*time.Millisecond, f.activated[0])
	assert.Equal(t, Idle, f.control.State())

	f.host.Advance(10 * time.Second)
	assert.Len(t, f.activated, 1)
}

func TestCustomDurationAndDelay(t *testing.T) {
	f := newFixture(t, WithDuration(2*time.Second), WithCelebrationDelay(0))

	f.control.PressBegin()
	f.host.Advance(2 * time.Second)

	require.Len(t, f.activated, 1)
	assert.Equal(t, 2*time.Second, f.activated[0])
}

func TestInvalidOptionsKeepDefaults(t *testing.T) {
	f := newFixture(t, WithDuration(0), WithCelebrationDelay(-time.Second), WithFeedback(nil), WithLogger(nil))

	assert.Equal(t, DefaultDuration, f.control.Duration())
	assert.Equal(t, DefaultCelebrationDelay, f.control.CelebrationDelay())
}

func TestDoublePressBeginKeepsOneTimer(t *testing.T) {
	f := newFixture(t)

	require.True(t, f.control.PressBegin())
	f.host.Advance(10 * time.Millisecond)
	assert.False(t, f.control.PressBegin())
	assert.False(t, f.control.PressBegin())

	f.host.Advance(5 * time.Second)

	require.Len(t, f.activated, 1)
	assert.Equal(t, 1300*time.Millisecond, f.activated[0])
	assert.Equal(t, 1, f.feedback.taps)
}

func TestPressBeginRejectedWhileActivated(t *testing.T) {
	f := newFixture(t)

	f.control.PressBegin()
	f.host.AdvanceTo(1100 * time.Millisecond)
	require.Equal(t, Activated, f.control.State())

	assert.False(t, f.control.PressBegin())
	f.host.Advance(5 * time.Second)
	assert.Len(t, f.activated, 1)
}

func TestReleaseAfterActivationIsNoop(t *testing.T) {
	f := newFixture(t)

	f.control.PressBegin()
	f.host.AdvanceTo(1050 * time.Millisecond)
	require.Equal(t, Activated, f.control.State())

	f.control.PressEnd()
	assert.Equal(t, Activated, f.control.State())

	f.host.AdvanceTo(1300 * time.Millisecond)
	assert.Len(t, f.activated, 1)

	f.control.PressEnd()
	assert.Equal(t, Idle, f.control.State())
}

func TestPressEndWithoutHoldIsNoop(t *testing.T) {
	f := newFixture(t)

	f.control.PressEnd()
	f.control.PressEnd()

	assert.Equal(t, Idle, f.control.State())
	assert.Empty(t, f.observer.transitions)
}

func TestProgressRisesOnlyWhileHolding(t *testing.T) {
	f := newFixture(t)

	var snaps []Snapshot
	f.control.Subscribe(func(s Snapshot) { snaps = append(snaps, s) })

	f.control.PressBegin()
	f.host.AdvanceTo(900 * time.Millisecond)

	var last float32
	for _, s := range snaps {
		if s.State != Holding {
			continue
		}
		assert.GreaterOrEqual(t, s.Progress, last)
		last = s.Progress
	}
	assert.InDelta(t, 0.9, f.control.Progress(), 0.05)
	assert.Equal(t, PressedScale, f.control.Scale())
}

func TestCancelResetsProgress(t *testing.T) {
	f := newFixture(t)

	f.control.PressBegin()
	f.host.AdvanceTo(600 * time.Millisecond)
	require.Greater(t, f.control.Progress(), float32(0.5))

	f.control.PressEnd()
	f.host.Advance(releaseDuration)

	assert.Equal(t, float32(0), f.control.Progress())
	assert.Equal(t, RestingScale, f.control.Scale())
}

func TestActivationPassesThroughFullProgress(t *testing.T) {
	f := newFixture(t)

	var snaps []Snapshot
	f.control.Subscribe(func(s Snapshot) { snaps = append(snaps, s) })

	f.control.PressBegin()
	f.host.AdvanceTo(1000 * time.Millisecond)

	var activated []Snapshot
	for _, s := range snaps {
		if s.State == Activated {
			activated = append(activated, s)
		}
	}
	require.GreaterOrEqual(t, len(activated), 2)
	assert.Equal(t, float32(1), activated[0].Progress)
	assert.Equal(t, float32(0), activated[1].Progress)
}

func TestCelebrationPulse(t *testing.T) {
	f := newFixture(t)

	var peak float32
	f.control.Subscribe(func(s Snapshot) {
		if s.State == Activated && s.Scale > peak {
			peak = s.Scale
		}
	})

	f.control.PressBegin()
	f.host.AdvanceTo(1300 * time.Millisecond)

	assert.Equal(t, CelebrationScale, peak)
	assert.Equal(t, RestingScale, f.control.Scale())
}

func TestRepeatedHolds(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		require.True(t, f.control.PressBegin())
		f.host.Advance(1300 * time.Millisecond)
	}

	assert.Len(t, f.activated, 3)
	assert.Equal(t, 3, f.feedback.taps)
	assert.Equal(t, 3, f.feedback.successes)
}

func TestRepressDuringReleaseAnimation(t *testing.T) {
	f := newFixture(t)

	f.control.PressBegin()
	f.host.AdvanceTo(500 * time.Millisecond)
	f.control.PressEnd()
	f.host.AdvanceTo(550 * time.Millisecond)

	require.True(t, f.control.PressBegin())
	f.host.AdvanceTo(1549 * time.Millisecond)
	assert.Equal(t, Holding, f.control.State())

	f.host.AdvanceTo(1850 * time.Millisecond)
	require.Len(t, f.activated, 1)
	assert.Equal(t, 1850*time.Millisecond, f.activated[0])
}

func TestObserverSeesTransitions(t *testing.T) {
	f := newFixture(t, WithName("home"))

	f.control.PressBegin()
	f.host.Advance(200 * time.Millisecond)
	f.control.PressEnd()
	f.control.PressBegin()
	f.host.Advance(2 * time.Second)

	var got [][2]State
	for _, tr := range f.observer.transitions {
		assert.Equal(t, "home", tr.Source)
		got = append(got, [2]State{tr.From, tr.To})
	}
	assert.Equal(t, [][2]State{
		{Idle, Holding},
		{Holding, Idle},
		{Idle, Holding},
		{Holding, Activated},
		{Activated, Idle},
	}, got)
}

func TestCloseCancelsPendingActivation(t *testing.T) {
	f := newFixture(t)

	f.control.PressBegin()
	f.host.AdvanceTo(1100 * time.Millisecond)
	require.Equal(t, Activated, f.control.State())

	f.control.Close()
	f.host.Advance(5 * time.Second)

	assert.Empty(t, f.activated)
	assert.Zero(t, f.host.Pending())
}

func TestCloseWhileHolding(t *testing.T) {
	f := newFixture(t)

	f.control.PressBegin()
	f.host.Advance(100 * time.Millisecond)
	f.control.Close()
	f.control.Close()

	f.host.Advance(5 * time.Second)
	assert.Empty(t, f.activated)
	assert.Zero(t, f.host.Pending())
	assert.False(t, f.control.PressBegin())
	assert.Equal(t, Idle, f.control.State())
}

func TestUnsubscribe(t *testing.T) {
	f := newFixture(t)

	calls := 0
	unsubscribe := f.control.Subscribe(func(Snapshot) { calls++ })
	f.control.PressBegin()
	require.NotZero(t, calls)

	unsubscribe()
	before := calls
	f.host.Advance(2 * time.Second)
	assert.Equal(t, before, calls)
}

func TestActivateCallbackMayReenter(t *testing.T) {
	h := host.NewManual()
	var c *Control
	fired := 0
	c = New(h, WithOnActivate(func() {
		fired++
		assert.Equal(t, Idle, c.State())
		c.Close()
	}))

	c.PressBegin()
	h.Advance(2 * time.Second)
	assert.Equal(t, 1, fired)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "holding", Holding.String())
	assert.Equal(t, "activated", Activated.String())
	assert.Equal(t, "unknown", State(42).String())
}
