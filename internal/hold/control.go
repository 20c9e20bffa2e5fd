// Package hold turns a press-and-hold gesture into a single activation.
//
// A Control is a small state machine (Idle, Holding, Activated) that drives
// two visual values, progress and scale, through a host.Host. It knows
// nothing about widgets: renderers subscribe to Snapshots and draw them.
package hold

import (
	"sync"
	"time"

	"productive-lock/internal/feedback"
	"productive-lock/internal/host"
	"productive-lock/internal/logger"
)

const (
	DefaultDuration         = 1000 * time.Millisecond
	DefaultCelebrationDelay = 300 * time.Millisecond

	RestingScale     float32 = 1.0
	PressedScale     float32 = 0.95
	CelebrationScale float32 = 1.1

	pressInDuration = 100 * time.Millisecond
	releaseDuration = 200 * time.Millisecond
	pulseDuration   = 150 * time.Millisecond
)

const component = "HoldControl"

// State of a hold interaction
type State int

const (
	Idle State = iota
	Holding
	Activated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Holding:
		return "holding"
	case Activated:
		return "activated"
	}
	return "unknown"
}

// Snapshot is what a renderer needs to draw the control.
type Snapshot struct {
	State    State
	Progress float32
	Scale    float32
}

// Transition describes a state change for observers.
type Transition struct {
	Source string
	From   State
	To     State
	At     time.Time
}

type Observer interface {
	OnTransition(Transition)
}

type Option func(*Control)

// WithDuration sets how long the press must be held. Non-positive values are ignored.
func WithDuration(d time.Duration) Option {
	return func(c *Control) {
		if d > 0 {
			c.duration = d
		}
	}
}

// WithCelebrationDelay sets the pause between activation and the callback.
func WithCelebrationDelay(d time.Duration) Option {
	return func(c *Control) {
		if d >= 0 {
			c.celebrationDelay = d
		}
	}
}

func WithOnActivate(fn func()) Option {
	return func(c *Control) {
		c.onActivate = fn
	}
}

func WithFeedback(fb feedback.Service) Option {
	return func(c *Control) {
		if fb != nil {
			c.feedback = fb
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Control) {
		c.observer = o
	}
}

func WithLogger(log logger.Logger) Option {
	return func(c *Control) {
		if log != nil {
			c.log = log
		}
	}
}

// WithName labels transitions and log lines from this control.
func WithName(name string) Option {
	return func(c *Control) {
		c.name = name
	}
}

// Control owns one hold interaction. All timers and animations it starts are
// fields of the instance and are released by Close.
type Control struct {
	host             host.Host
	log              logger.Logger
	feedback         feedback.Service
	observer         Observer
	onActivate       func()
	name             string
	duration         time.Duration
	celebrationDelay time.Duration

	mu       sync.Mutex
	state    State
	progress float32
	scale    float32
	closed   bool
	// gen invalidates callbacks scheduled by earlier holds.
	gen uint64

	holdTimer       host.Handle
	completionTimer host.Handle
	progressAnim    host.Handle
	scaleAnim       host.Handle

	subscribers map[int]func(Snapshot)
	nextSubID   int
}

func New(h host.Host, opts ...Option) *Control {
	c := &Control{
		host:             h,
		log:              logger.Nop(),
		feedback:         feedback.Nop(),
		name:             "hold",
		duration:         DefaultDuration,
		celebrationDelay: DefaultCelebrationDelay,
		state:            Idle,
		scale:            RestingScale,
		subscribers:      make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Duration reports the configured hold duration.
func (c *Control) Duration() time.Duration {
	return c.duration
}

// CelebrationDelay reports the pause between activation and the callback.
func (c *Control) CelebrationDelay() time.Duration {
	return c.celebrationDelay
}

func (c *Control) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Control) Progress() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

func (c *Control) Scale() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scale
}

func (c *Control) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn for every snapshot change and returns a function
// that removes it.
func (c *Control) Subscribe(fn func(Snapshot)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

// PressBegin starts a hold. It is accepted only from Idle and reports whether
// a hold was started.
func (c *Control) PressBegin() bool {
	c.mu.Lock()
	if c.closed || c.state != Idle {
		state, closed := c.state, c.closed
		c.mu.Unlock()
		c.log.Debug(component, "press ignored", map[string]interface{}{
			"control": c.name,
			"state":   state.String(),
			"closed":  closed,
		})
		return false
	}

	c.gen++
	gen := c.gen
	c.stopAnimationsLocked()
	c.state = Holding

	fromProgress, fromScale := c.progress, c.scale
	c.holdTimer = c.host.AfterFunc(c.duration, func() { c.activate(gen) })
	c.progressAnim = c.host.Animate(c.duration, func(f float32) {
		v := host.Lerp(fromProgress, 1, f)
		c.update(gen, Holding, func() {
			if v > c.progress {
				c.progress = v
			}
		})
	})
	c.scaleAnim = c.host.Animate(pressInDuration, func(f float32) {
		v := host.Lerp(fromScale, PressedScale, f)
		c.update(gen, Holding, func() { c.scale = v })
	})

	notify := c.changeLocked()
	c.mu.Unlock()

	c.feedback.LightTap()
	notify()
	c.transition(Idle, Holding)
	c.log.Debug(component, "hold started", map[string]interface{}{
		"control":     c.name,
		"duration_ms": c.duration.Milliseconds(),
	})
	return true
}

// PressEnd releases the press. Before the hold completes it cancels the hold
// and animates back to rest; in any other state it does nothing.
func (c *Control) PressEnd() {
	c.mu.Lock()
	if c.closed || c.state != Holding {
		state := c.state
		c.mu.Unlock()
		c.log.Debug(component, "release ignored", map[string]interface{}{
			"control": c.name,
			"state":   state.String(),
		})
		return
	}

	c.cancelTimerLocked(&c.holdTimer)
	c.gen++
	gen := c.gen
	c.stopAnimationsLocked()
	c.state = Idle

	fromProgress, fromScale := c.progress, c.scale
	c.progressAnim = c.host.Animate(releaseDuration, func(f float32) {
		v := host.Lerp(fromProgress, 0, f)
		c.update(gen, Idle, func() { c.progress = v })
	})
	c.scaleAnim = c.host.Animate(releaseDuration, func(f float32) {
		v := host.Lerp(fromScale, RestingScale, f)
		c.update(gen, Idle, func() { c.scale = v })
	})

	notify := c.changeLocked()
	c.mu.Unlock()

	notify()
	c.transition(Holding, Idle)
	c.log.Debug(component, "hold cancelled", map[string]interface{}{
		"control":  c.name,
		"progress": fromProgress,
	})
}

// Close cancels every pending timer and animation, including a pending
// activation callback. Later input is ignored. Safe to call more than once.
func (c *Control) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.gen++
	c.cancelTimerLocked(&c.holdTimer)
	c.cancelTimerLocked(&c.completionTimer)
	c.stopAnimationsLocked()
	from := c.state
	c.state = Idle
	c.progress = 0
	c.scale = RestingScale
	c.subscribers = make(map[int]func(Snapshot))
	c.mu.Unlock()

	if from != Idle {
		c.transition(from, Idle)
	}
	c.log.Debug(component, "closed", map[string]interface{}{
		"control": c.name,
		"state":   from.String(),
	})
}

func (c *Control) activate(gen uint64) {
	c.mu.Lock()
	if c.closed || c.gen != gen || c.state != Holding {
		c.mu.Unlock()
		return
	}

	c.holdTimer = nil
	c.stopAnimationsLocked()

	c.progress = 1
	c.state = Activated
	reachedFull := c.changeLocked()

	c.progress = 0
	reset := c.changeLocked()

	c.scaleAnim = c.pulseLocked(gen)
	c.completionTimer = c.host.AfterFunc(c.celebrationDelay, func() { c.finish(gen) })
	c.mu.Unlock()

	c.feedback.SuccessNotification()
	reachedFull()
	reset()
	c.transition(Holding, Activated)
	c.log.Info(component, "activated", map[string]interface{}{
		"control":  c.name,
		"delay_ms": c.celebrationDelay.Milliseconds(),
	})
}

func (c *Control) pulseLocked(gen uint64) host.Handle {
	from := c.scale
	return c.host.Animate(pulseDuration, func(f float32) {
		v := host.Lerp(from, CelebrationScale, f)
		c.update(gen, Activated, func() {
			c.scale = v
			if f >= 1 {
				c.scaleAnim = c.host.Animate(pulseDuration, func(f float32) {
					v := host.Lerp(CelebrationScale, RestingScale, f)
					c.update(gen, Activated, func() { c.scale = v })
				})
			}
		})
	})
}

func (c *Control) finish(gen uint64) {
	c.mu.Lock()
	if c.closed || c.gen != gen || c.state != Activated {
		c.mu.Unlock()
		return
	}

	c.completionTimer = nil
	c.stopAnimationsLocked()
	c.state = Idle
	c.progress = 0
	c.scale = RestingScale
	notify := c.changeLocked()
	onActivate := c.onActivate
	c.mu.Unlock()

	notify()
	c.transition(Activated, Idle)
	if onActivate != nil {
		onActivate()
	}
}

// update applies mutate if the callback still belongs to the current hold and
// the control is in the expected state.
func (c *Control) update(gen uint64, want State, mutate func()) {
	c.mu.Lock()
	if c.closed || c.gen != gen || c.state != want {
		c.mu.Unlock()
		return
	}
	mutate()
	notify := c.changeLocked()
	c.mu.Unlock()

	notify()
}

func (c *Control) changeLocked() func() {
	snap := c.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	return func() {
		for _, fn := range subs {
			fn(snap)
		}
	}
}

func (c *Control) snapshotLocked() Snapshot {
	return Snapshot{State: c.state, Progress: c.progress, Scale: c.scale}
}

func (c *Control) transition(from, to State) {
	if c.observer == nil {
		return
	}
	c.observer.OnTransition(Transition{
		Source: c.name,
		From:   from,
		To:     to,
		At:     c.host.Now(),
	})
}

func (c *Control) cancelTimerLocked(h *host.Handle) {
	if *h != nil {
		(*h).Stop()
		*h = nil
	}
}

func (c *Control) stopAnimationsLocked() {
	c.cancelTimerLocked(&c.progressAnim)
	c.cancelTimerLocked(&c.scaleAnim)
}
