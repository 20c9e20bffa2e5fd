// Package feedback carries fire-and-forget haptic cues for touch controls.
package feedback

import (
	"sync/atomic"

	"productive-lock/internal/logger"
)

// Service emits haptic or visual cues. Calls never block and return nothing.
type Service interface {
	LightTap()
	SuccessNotification()
}

type nop struct{}

func Nop() Service { return nop{} }

func (nop) LightTap()            {}
func (nop) SuccessNotification() {}

// Logged records cues in the log. Fyne has no vibration API, so on every
// platform the visible cue comes from the widget and this keeps a trace.
type Logged struct {
	log       logger.Logger
	taps      atomic.Int64
	successes atomic.Int64
}

func NewLogged(log logger.Logger) *Logged {
	return &Logged{log: log}
}

func (l *Logged) LightTap() {
	n := l.taps.Add(1)
	l.log.Debug("Feedback", "light tap", map[string]interface{}{"count": n})
}

func (l *Logged) SuccessNotification() {
	n := l.successes.Add(1)
	l.log.Debug("Feedback", "success notification", map[string]interface{}{"count": n})
}

// Counts reports how many cues of each kind were emitted.
func (l *Logged) Counts() (taps, successes int64) {
	return l.taps.Load(), l.successes.Load()
}
