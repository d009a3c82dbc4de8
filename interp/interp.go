// Package interp holds the interpolation and range helpers shared by the
// noise interpreter and the compiled instruction stream.
//
// Every function here is a pure float64 computation. The shader generator
// emits WGSL transliterations of the same formulas, so any change here must
// be mirrored in shader/helpers.go.
package interp

// Linear interpolates between a and b. t = 0 yields a, t = 1 yields b.
func Linear(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// Cubic performs cubic interpolation between n1 and n2 using n0 and n3 as
// the outer neighbours. t = 0 yields n1, t = 1 yields n2.
func Cubic(n0, n1, n2, n3, t float64) float64 {
	p := (n3 - n2) - (n0 - n1)
	q := (n0 - n1) - p
	r := n2 - n0
	s := n1
	return p*t*t*t + q*t*t + r*t + s
}

// SCurve3 maps t onto a cubic s-curve: 3t^2 - 2t^3.
func SCurve3(t float64) float64 {
	return t * t * (3 - 2*t)
}

// SCurve5 maps t onto a quintic s-curve: 6t^5 - 15t^4 + 10t^3.
// Its first and second derivatives are zero at both ends.
func SCurve5(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt restricts v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
