package summary

import (
	"sort"

	"github.com/coder/quartz"
	"go.uber.org/atomic"

	"github.com/ygrebnov/summary/internal/reservoir"
)

// Child accumulates the observations of one label-value combination.
//
// Count, sum and sample are updated independently and without a shared lock.
// A Get running concurrently with Observe may therefore see a count that
// already includes an observation whose value has not reached the sum or the
// sample yet. Readers never block writers.
//
// A Child obtained from a Summary must not be used after it was removed with
// Summary.Remove or Summary.Clear; its observations are no longer collected.
type Child struct {
	count  *atomic.Float64
	sum    *atomic.Float64
	sample *reservoir.Uniform
	clock  quartz.Clock
}

func newChild(size int, clock quartz.Clock) *Child {
	return &Child{
		count:  atomic.NewFloat64(0),
		sum:    atomic.NewFloat64(0),
		sample: reservoir.NewUniform(size),
		clock:  clock,
	}
}

// Observe records one event of the given magnitude. v is not validated.
func (c *Child) Observe(v float64) {
	c.count.Add(1)
	c.sum.Add(v)
	c.sample.Add(v)
}

// StartTimer starts timing an event. Call ObserveDuration on the returned
// Timer exactly once when the event completes.
func (c *Child) StartTimer() *Timer {
	return &Timer{child: c, start: c.clock.Now()}
}

// Get returns a snapshot of the child. The snapshot owns its sorted copy of
// the sample.
func (c *Child) Get() Value {
	values := c.sample.Values()
	sort.Float64s(values)
	return Value{
		Count:  c.count.Load(),
		Sum:    c.sum.Load(),
		Values: values,
	}
}
