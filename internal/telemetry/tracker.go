// Package telemetry records hold sessions and publishes them as events.
package telemetry

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"productive-lock/internal/hold"
)

type Outcome string

const (
	OutcomeCancelled Outcome = "cancelled"
	OutcomeActivated Outcome = "activated"
)

type EventPublisher interface {
	Publish(event Event) bool
}

type session struct {
	ID      string
	Started time.Time
}

// Stats summarises closed sessions for one outcome.
type Stats struct {
	Count   int
	Total   time.Duration
	Average time.Duration
	Longest time.Duration
}

// Tracker observes hold controls, timing each hold from press to release or
// activation. One session may be open per control source.
type Tracker struct {
	mu       sync.RWMutex
	open     map[string]session
	timings  map[Outcome][]time.Duration
	eventBus EventPublisher
	enabled  bool
	newID    func() string
}

func NewTracker(eventBus EventPublisher) *Tracker {
	return &Tracker{
		open:     make(map[string]session),
		timings:  make(map[Outcome][]time.Duration),
		eventBus: eventBus,
		enabled:  true,
		newID:    func() string { return uuid.New().String() },
	}
}

func (t *Tracker) OnTransition(tr hold.Transition) {
	t.mu.Lock()
	if !t.enabled {
		t.mu.Unlock()
		return
	}

	var event *Event
	switch {
	case tr.From == hold.Idle && tr.To == hold.Holding:
		s := session{ID: t.newID(), Started: tr.At}
		t.open[tr.Source] = s
		event = &Event{
			Type:      EventHoldStarted,
			Timestamp: tr.At,
			Data: map[string]interface{}{
				"session": s.ID,
				"source":  tr.Source,
			},
		}
	case tr.From == hold.Holding && tr.To == hold.Idle:
		event = t.closeLocked(tr, OutcomeCancelled, EventHoldCancelled)
	case tr.From == hold.Holding && tr.To == hold.Activated:
		event = t.closeLocked(tr, OutcomeActivated, EventHoldActivated)
	}
	t.mu.Unlock()

	if event != nil && t.eventBus != nil {
		t.eventBus.Publish(*event)
	}
}

func (t *Tracker) closeLocked(tr hold.Transition, outcome Outcome, eventType string) *Event {
	s, ok := t.open[tr.Source]
	if !ok {
		return nil
	}
	delete(t.open, tr.Source)

	held := tr.At.Sub(s.Started)
	t.timings[outcome] = append(t.timings[outcome], held)

	return &Event{
		Type:      eventType,
		Timestamp: tr.At,
		Data: map[string]interface{}{
			"session": s.ID,
			"source":  tr.Source,
			"held_ms": held.Milliseconds(),
		},
	}
}

func (t *Tracker) GetTimings(outcome Outcome) []time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()

	timings := t.timings[outcome]
	if timings == nil {
		return nil
	}

	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

func (t *Tracker) Stats(outcome Outcome) Stats {
	var s Stats
	for _, d := range t.GetTimings(outcome) {
		s.Count++
		s.Total += d
		if d > s.Longest {
			s.Longest = d
		}
	}
	if s.Count > 0 {
		s.Average = s.Total / time.Duration(s.Count)
	}
	return s
}

// OpenSessions reports holds currently in progress.
func (t *Tracker) OpenSessions() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.open)
}

func (t *Tracker) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = enabled
}

// Reset clears timings for outcome, or all of them when outcome is empty.
func (t *Tracker) Reset(outcome Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if outcome == "" {
		t.timings = make(map[Outcome][]time.Duration)
		t.open = make(map[string]session)
	} else {
		delete(t.timings, outcome)
	}
}
