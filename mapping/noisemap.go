package mapping

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidSize is returned for non-positive map dimensions.
	ErrInvalidSize = errors.New("mapping: invalid map size")

	// ErrInvalidBounds is returned when a lower bound is not below its
	// upper bound.
	ErrInvalidBounds = errors.New("mapping: invalid bounds")

	// ErrNoSource is returned by builders without a source graph.
	ErrNoSource = errors.New("mapping: no source module")
)

// NoiseMap is a row-major grid of noise values.
type NoiseMap struct {
	width, height int
	values        []float32
	border        float32
}

// NewNoiseMap returns a zeroed map of width x height values.
func NewNoiseMap(width, height int) (*NoiseMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &NoiseMap{
		width:  width,
		height: height,
		values: make([]float32, width*height),
	}, nil
}

// Width returns the number of columns.
func (m *NoiseMap) Width() int { return m.width }

// Height returns the number of rows.
func (m *NoiseMap) Height() int { return m.height }

// Border returns the value At reports outside the map.
func (m *NoiseMap) Border() float32 { return m.border }

// SetBorder sets the value At reports outside the map.
func (m *NoiseMap) SetBorder(v float32) { m.border = v }

// At returns the value at (x, y), or the border value outside the map.
func (m *NoiseMap) At(x, y int) float32 {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return m.border
	}
	return m.values[y*m.width+x]
}

// Set stores v at (x, y). Coordinates outside the map are ignored.
func (m *NoiseMap) Set(x, y int, v float32) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	m.values[y*m.width+x] = v
}

// Row returns row y as a slice aliasing the map storage.
func (m *NoiseMap) Row(y int) []float32 {
	return m.values[y*m.width : (y+1)*m.width]
}

// Values returns the backing slice, row-major.
func (m *NoiseMap) Values() []float32 { return m.values }

// Range returns the smallest and largest values, ignoring NaN.
func (m *NoiseMap) Range() (lo, hi float32) {
	lo, hi = float32(math.Inf(1)), float32(math.Inf(-1))
	for _, v := range m.values {
		if v != v {
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
