package ops

import "github.com/gogpu/noise/interp"

// Minimum control point counts. Below these the default sets are used.
const (
	MinCurvePoints   = 4
	MinTerracePoints = 2
)

// DefaultCurve is the identity curve used when a Curve has too few points.
var DefaultCurve = []ControlPoint{
	{-1, -1}, {-0.5, -0.5}, {0, 0}, {0.5, 0.5}, {1, 1},
}

// DefaultTerrace is the terrace used when a Terrace has too few points.
var DefaultTerrace = []float64{-1, 1}

// CurvePoints returns points, or DefaultCurve when there are too few.
func CurvePoints(points []ControlPoint) []ControlPoint {
	if len(points) < MinCurvePoints {
		return DefaultCurve
	}
	return points
}

// TerracePoints returns points, or DefaultTerrace when there are too few.
func TerracePoints(points []float64) []float64 {
	if len(points) < MinTerracePoints {
		return DefaultTerrace
	}
	return points
}

// Curve maps v through the sorted control points with cubic interpolation
// over the four points around v. Values outside the point range take the
// output of the nearest end point.
func Curve(points []ControlPoint, v float64) float64 {
	points = CurvePoints(points)
	n := len(points)

	pos := 0
	for pos < n && v >= points[pos].In {
		pos++
	}

	i0 := interp.ClampInt(pos-2, 0, n-1)
	i1 := interp.ClampInt(pos-1, 0, n-1)
	i2 := interp.ClampInt(pos, 0, n-1)
	i3 := interp.ClampInt(pos+1, 0, n-1)

	if i1 == i2 {
		return points[i1].Out
	}

	in0, in1 := points[i1].In, points[i2].In
	alpha := (v - in0) / (in1 - in0)
	return interp.Cubic(points[i0].Out, points[i1].Out, points[i2].Out, points[i3].Out, alpha)
}

// Terrace maps v onto terrace-like steps between the sorted control
// points. The blend within a step is quadratic; inverted mirrors it.
func Terrace(points []float64, inverted bool, v float64) float64 {
	points = TerracePoints(points)
	n := len(points)

	pos := 0
	for pos < n && v >= points[pos] {
		pos++
	}

	i0 := interp.ClampInt(pos-1, 0, n-1)
	i1 := interp.ClampInt(pos, 0, n-1)

	if i0 == i1 {
		return points[i1]
	}

	v0, v1 := points[i0], points[i1]
	alpha := (v - v0) / (v1 - v0)
	if inverted {
		alpha = 1 - alpha
		v0, v1 = v1, v0
	}
	alpha *= alpha
	return interp.Linear(v0, v1, alpha)
}

// TerraceSteps returns n evenly spaced points on [-1, 1].
func TerraceSteps(n int) []float64 {
	if n < MinTerracePoints {
		n = MinTerracePoints
	}
	step := 2.0 / float64(n-1)
	out := make([]float64, n)
	cur := -1.0
	for i := range out {
		out[i] = cur
		cur += step
	}
	out[n-1] = 1
	return out
}
