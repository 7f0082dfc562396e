package core

import "time"

// Throttle limits how often a periodic side effect fires in wall-clock time.
type Throttle struct {
	every time.Duration
	last  time.Time
	now   func() time.Time
}

// NewThrottle constructs a Throttle that allows at most perSecond events per
// second. Non-positive rates default to 10.
func NewThrottle(perSecond int) *Throttle {
	if perSecond <= 0 {
		perSecond = 10
	}
	return &Throttle{every: time.Second / time.Duration(perSecond), now: time.Now}
}

// Allow reports whether enough time has passed since the last allowed event.
// The first call always succeeds.
func (t *Throttle) Allow() bool {
	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) < t.every {
		return false
	}
	t.last = now
	return true
}
