package host

import (
	"sync"
	"time"
)

// DefaultFrameInterval approximates a 60Hz display refresh.
const DefaultFrameInterval = 16 * time.Millisecond

// Manual is a virtual-clock Host. Nothing runs until Advance moves the clock,
// which makes hold timing reproducible in tests and headless runs.
type Manual struct {
	mu      sync.Mutex
	base    time.Time
	now     time.Duration
	seq     uint64
	pending []*manualTimer
	frame   time.Duration
}

type manualTimer struct {
	owner   *Manual
	at      time.Duration
	seq     uint64
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() {
	t.owner.mu.Lock()
	t.stopped = true
	t.owner.mu.Unlock()
}

type manualAnimation struct {
	owner    *Manual
	start    time.Duration
	duration time.Duration
	step     func(float32)
	next     *manualTimer
	stopped  bool
}

func (a *manualAnimation) Stop() {
	a.owner.mu.Lock()
	a.stopped = true
	if a.next != nil {
		a.next.stopped = true
	}
	a.owner.mu.Unlock()
}

func NewManual() *Manual {
	return &Manual{
		base:  time.Unix(0, 0).UTC(),
		frame: DefaultFrameInterval,
	}
}

// SetFrameInterval changes the spacing of animation steps.
func (m *Manual) SetFrameInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	m.frame = d
	m.mu.Unlock()
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scheduleLocked(d, fn)
}

func (m *Manual) Animate(d time.Duration, step func(fraction float32)) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	anim := &manualAnimation{
		owner:    m,
		start:    m.now,
		duration: d,
		step:     step,
	}
	anim.next = m.scheduleLocked(m.nextFrameLocked(anim), func() { m.tick(anim) })
	return anim
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.base.Add(m.now)
}

// Elapsed reports virtual time since the host was created.
func (m *Manual) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending counts scheduled callbacks and animation frames not yet run or stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running every callback that falls due
// in time order. Callbacks may schedule more work; it runs too if due.
// The clock never moves backwards: a negative d only runs work already due.
func (m *Manual) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.popDueLocked(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.at
		m.mu.Unlock()

		next.fn()
	}
}

// AdvanceTo moves the clock to the absolute virtual offset at. Offsets
// already passed leave the clock where it is.
func (m *Manual) AdvanceTo(at time.Duration) {
	m.Advance(at - m.Elapsed())
}

func (m *Manual) tick(anim *manualAnimation) {
	m.mu.Lock()
	if anim.stopped {
		m.mu.Unlock()
		return
	}
	fraction := float32(1)
	if anim.duration > 0 {
		elapsed := m.now - anim.start
		if elapsed < anim.duration {
			fraction = float32(elapsed) / float32(anim.duration)
		}
	}
	anim.next = nil
	if fraction < 1 {
		anim.next = m.scheduleLocked(m.nextFrameLocked(anim), func() { m.tick(anim) })
	}
	m.mu.Unlock()

	anim.step(fraction)
}

func (m *Manual) nextFrameLocked(anim *manualAnimation) time.Duration {
	end := anim.start + anim.duration
	next := m.now + m.frame
	if next > end {
		next = end
	}
	if next < m.now {
		next = m.now
	}
	return next - m.now
}

func (m *Manual) scheduleLocked(d time.Duration, fn func()) *manualTimer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{
		owner: m,
		at:    m.now + d,
		seq:   m.seq,
		fn:    fn,
	}
	m.pending = append(m.pending, t)
	return t
}

func (m *Manual) popDueLocked(target time.Duration) *manualTimer {
	best := -1
	live := m.pending[:0]
	for _, t := range m.pending {
		if t.stopped {
			continue
		}
		live = append(live, t)
	}
	m.pending = live

	for i, t := range m.pending {
		if t.at > target {
			continue
		}
		if best < 0 || t.at < m.pending[best].at ||
			(t.at == m.pending[best].at && t.seq < m.pending[best].seq) {
			best = i
		}
	}
	if best < 0 {
		return nil
	}

	t := m.pending[best]
	m.pending = append(m.pending[:best], m.pending[best+1:]...)
	return t
}
