package stagecraft

import "time"

// Clock measures elapsed time between frames using the monotonic clock.
type Clock struct {
	now     func() time.Time
	last    time.Time
	started bool
	elapsed float64
}

// NewClock returns a clock backed by time.Now.
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// newClockWithSource returns a clock reading time from now. Used by tests.
func newClockWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Delta returns the seconds elapsed since the previous Delta call. The first
// call returns 0.
func (c *Clock) Delta() float64 {
	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
		return 0
	}
	dt := t.Sub(c.last).Seconds()
	c.last = t
	if dt < 0 {
		dt = 0
	}
	c.elapsed += dt
	return dt
}

// Elapsed returns the total seconds accumulated by Delta.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}
