package engine

import "time"

//Clock reports the time elapsed since the session start
//implementations must be monotonic: wall clock adjustments are not visible
type Clock interface {
	Now() time.Duration
}

type monoClock struct {
	start time.Time
}

//NewClock returns the clock backed by the monotonic reading of time.Time
func NewClock() Clock {
	return monoClock{start: time.Now()}
}

func (c monoClock) Now() time.Duration {
	return time.Since(c.start)
}
