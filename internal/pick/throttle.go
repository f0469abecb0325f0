package pick

import "time"

// DefaultRate bounds hit-testing per second.
const DefaultRate = 30

// Throttle admits at most Rate calls in any one-second window.
type Throttle struct {
	interval time.Duration
	last     time.Time
	primed   bool
}

// NewThrottle returns a throttle for rate calls per second. A non-positive
// rate admits every call.
func NewThrottle(rate int) Throttle {
	if rate <= 0 {
		return Throttle{}
	}
	// Round up so rate intervals never fit inside one second.
	interval := (time.Second + time.Duration(rate) - 1) / time.Duration(rate)
	return Throttle{interval: interval}
}

// Interval returns the minimum spacing between admitted calls.
func (t *Throttle) Interval() time.Duration { return t.interval }

// Allow reports whether a call at now is admitted and records it if so.
func (t *Throttle) Allow(now time.Time) bool {
	if t.primed && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	t.primed = true
	return true
}
