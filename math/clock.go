package math

import "time"

// Clock is a monotonic high-resolution tick source. Ticks() returns raw
// nanosecond counts from the runtime monotonic clock (sampler.NewRandom
// seeds from it); the micro/milli helpers return the same reading as a
// human-scaled double rather than raw ticks.
type Clock struct {
	start time.Time
}

func NewClock() Clock {
	return Clock{start: time.Now()}
}

// Ticks returns nanoseconds elapsed since the clock was created.
func (c Clock) Ticks() int64 {
	return time.Since(c.start).Nanoseconds()
}

func (c Clock) Microseconds() float64 {
	return float64(c.Ticks()) / 1e3
}

func (c Clock) Milliseconds() float64 {
	return float64(c.Ticks()) / 1e6
}
