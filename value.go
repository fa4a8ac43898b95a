package summary

import (
	"math"

	"github.com/pkg/errors"
)

// Value is an immutable point-in-time view of a Child.
// Values is sorted ascending and must not be modified by callers.
type Value struct {
	Count  float64
	Sum    float64
	Values []float64
}

// Quantile returns the φ-quantile estimate of the sampled observations.
// The estimate is a linear interpolation between the two sampled values
// adjacent to rank φ·(n+1). φ = 0 and φ = 1 map to the sampled minimum and
// maximum. An empty sample yields 0.
func (v Value) Quantile(phi float64) (float64, error) {
	if !validQuantile(phi) {
		return 0, errors.Wrapf(ErrInvalidQuantile, "got %v", phi)
	}

	n := len(v.Values)
	switch n {
	case 0:
		return 0, nil
	case 1:
		return v.Values[0], nil
	}

	idx := v.rank(phi)
	if idx < 1 {
		return v.Values[0], nil
	}
	if idx >= float64(n) {
		return v.Values[n-1], nil
	}

	i := int(idx)
	lower, upper := v.Values[i-1], v.Values[i]
	return lower + (idx-math.Floor(idx))*(upper-lower), nil
}

// MustQuantile is like Quantile but panics if phi is outside [0, 1].
func (v Value) MustQuantile(phi float64) float64 {
	q, err := v.Quantile(phi)
	if err != nil {
		panic(err)
	}
	return q
}

// rank is the 1-based real-valued position of phi in the sorted sample.
func (v Value) rank(phi float64) float64 {
	n := float64(len(v.Values))
	switch phi {
	case 0:
		return 0
	case 1:
		return n
	default:
		return phi * (n + 1)
	}
}

// validQuantile also rejects NaN.
func validQuantile(phi float64) bool {
	return phi >= 0 && phi <= 1
}
