package host

import (
	"time"

	"fyne.io/fyne/v2"
)

// Fyne drives callbacks and animations through the running Fyne app.
// Timer callbacks are marshalled onto the UI goroutine with fyne.Do.
type Fyne struct{}

func NewFyne() *Fyne {
	return &Fyne{}
}

func (f *Fyne) AfterFunc(d time.Duration, fn func()) Handle {
	t := time.AfterFunc(d, func() {
		fyne.Do(fn)
	})
	return timerHandle{timer: t}
}

func (f *Fyne) Animate(d time.Duration, step func(fraction float32)) Handle {
	anim := fyne.NewAnimation(d, step)
	// progress must track elapsed time, so no easing
	anim.Curve = fyne.AnimationLinear
	anim.Start()
	return anim
}

func (f *Fyne) Now() time.Time {
	return time.Now()
}

type timerHandle struct {
	timer *time.Timer
}

func (h timerHandle) Stop() {
	h.timer.Stop()
}
