package summary

import "time"

// Timer measures the duration of a single event for a Child.
type Timer struct {
	child *Child
	start time.Time
}

// ObserveDuration observes the time in seconds elapsed since the timer was
// started and returns it. Negative durations caused by clock adjustments are
// observed as is.
func (t *Timer) ObserveDuration() float64 {
	elapsed := float64(t.child.clock.Since(t.start).Nanoseconds()) / float64(time.Second)
	t.child.Observe(elapsed)
	return elapsed
}
