// Package host defines the render/animation host the hold control runs on:
// one-shot deferred callbacks, cancellation, and timed interpolation.
package host

import "time"

// Handle cancels a scheduled callback or a running animation.
// Stop is idempotent and safe to call after the work already ran.
type Handle interface {
	Stop()
}

// Host schedules work on the UI event loop. Callbacks never run before the
// scheduling call returns.
type Host interface {
	// AfterFunc runs fn once after d.
	AfterFunc(d time.Duration, fn func()) Handle
	// Animate calls step with the elapsed fraction in [0,1] on each frame
	// for d, finishing with exactly 1 unless stopped first.
	Animate(d time.Duration, step func(fraction float32)) Handle
	// Now reports the host clock.
	Now() time.Time
}

// Lerp interpolates between from and to by fraction f.
func Lerp(from, to, f float32) float32 {
	if f <= 0 {
		return from
	}
	if f >= 1 {
		return to
	}
	return from + (to-from)*f
}
