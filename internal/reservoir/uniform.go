// Package reservoir implements a bounded, uniformly distributed sample of an
// unbounded stream of float64 observations.
package reservoir

import (
	"math/rand/v2"
	"sync"
)

// DefaultSize is the capacity used when callers do not configure one.
const DefaultSize = 1028

// Uniform is a fixed-capacity reservoir filled with Vitter's Algorithm R.
// Every value seen so far has the same probability cap/n of being held.
// Methods are safe for concurrent use; the lock is local to the reservoir.
type Uniform struct {
	size int // immutable

	mu     sync.Mutex
	rng    *rand.Rand
	count  int64
	values []float64
}

// NewUniform returns a reservoir holding at most size values.
// A size <= 0 yields a reservoir that keeps nothing.
func NewUniform(size int) *Uniform {
	return NewUniformWithSource(size, rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewUniformWithSource is like NewUniform but draws replacement slots from src.
// src is only accessed under the reservoir lock.
func NewUniformWithSource(size int, src rand.Source) *Uniform {
	if size < 0 {
		size = 0
	}
	return &Uniform{
		size:   size,
		rng:    rand.New(src),
		values: make([]float64, 0, size),
	}
}

// Add offers v to the reservoir.
func (u *Uniform) Add(v float64) {
	u.mu.Lock()
	u.count++
	size := int64(u.size)
	if u.count <= size {
		u.values = append(u.values, v)
	} else if size > 0 {
		// replace with probability size/count
		if j := u.rng.Int64N(u.count); j < size {
			u.values[j] = v
		}
	}
	u.mu.Unlock()
}

// Values returns an unsorted copy of the current sample.
func (u *Uniform) Values() []float64 {
	u.mu.Lock()
	out := make([]float64, len(u.values))
	copy(out, u.values)
	u.mu.Unlock()
	return out
}

// Len returns the number of values currently held.
func (u *Uniform) Len() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.values)
}

// Cap returns the reservoir capacity.
func (u *Uniform) Cap() int { return u.size }

// Count returns how many values were offered since creation.
func (u *Uniform) Count() int64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.count
}
