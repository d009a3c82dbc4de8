package noise

import (
	"fmt"
	"slices"

	"github.com/gogpu/noise/internal/ops"
)

// Abs outputs the absolute value of its source.
type Abs struct{ moduleBase }

// NewAbs returns a module taking the absolute value of src.
func NewAbs(src Module) (*Abs, error) {
	base, err := newBase(KindAbs, src)
	if err != nil {
		return nil, err
	}
	return &Abs{base}, nil
}

// Kind implements Module.
func (*Abs) Kind() Kind { return KindAbs }

func (m *Abs) shallowCopy() Module { return &Abs{m.copySources()} }

// Invert outputs the negated value of its source.
type Invert struct{ moduleBase }

// NewInvert returns a module negating src.
func NewInvert(src Module) (*Invert, error) {
	base, err := newBase(KindInvert, src)
	if err != nil {
		return nil, err
	}
	return &Invert{base}, nil
}

// Kind implements Module.
func (*Invert) Kind() Kind { return KindInvert }

func (m *Invert) shallowCopy() Module { return &Invert{m.copySources()} }

// Clamp restricts its source to [Lower, Upper].
type Clamp struct {
	moduleBase
	lower, upper float64
}

// NewClamp returns a module clamping src to [-1, 1].
func NewClamp(src Module) (*Clamp, error) {
	base, err := newBase(KindClamp, src)
	if err != nil {
		return nil, err
	}
	return &Clamp{moduleBase: base, lower: -1, upper: 1}, nil
}

// Kind implements Module.
func (*Clamp) Kind() Kind { return KindClamp }

// Bounds returns the clamping range.
func (m *Clamp) Bounds() (lower, upper float64) { return m.lower, m.upper }

// SetBounds sets the clamping range, swapping the values if needed.
func (m *Clamp) SetBounds(lower, upper float64) {
	if lower > upper {
		lower, upper = upper, lower
	}
	m.lower, m.upper = lower, upper
}

func (m *Clamp) shallowCopy() Module {
	c := *m
	c.moduleBase = m.copySources()
	return &c
}

// ScaleBias outputs source*Scale + Bias.
type ScaleBias struct {
	moduleBase
	Scale float64
	Bias  float64
}

// NewScaleBias returns a module scaling and offsetting src.
func NewScaleBias(src Module, scale, bias float64) (*ScaleBias, error) {
	base, err := newBase(KindScaleBias, src)
	if err != nil {
		return nil, err
	}
	return &ScaleBias{moduleBase: base, Scale: scale, Bias: bias}, nil
}

// Kind implements Module.
func (*ScaleBias) Kind() Kind { return KindScaleBias }

func (m *ScaleBias) shallowCopy() Module {
	c := *m
	c.moduleBase = m.copySources()
	return &c
}

// ControlPoint maps an input value to an output value on a Curve.
type ControlPoint = ops.ControlPoint

// Curve maps its source through a cubic spline defined by control points.
// With fewer than four points, a five point identity curve on [-1, 1] is
// used instead.
type Curve struct {
	moduleBase
	points []ControlPoint
}

// NewCurve returns a Curve over src with no control points.
func NewCurve(src Module) (*Curve, error) {
	base, err := newBase(KindCurve, src)
	if err != nil {
		return nil, err
	}
	return &Curve{moduleBase: base}, nil
}

// Kind implements Module.
func (*Curve) Kind() Kind { return KindCurve }

// AddControlPoint inserts a point, keeping the list sorted by input.
func (m *Curve) AddControlPoint(in, out float64) error {
	i, found := slices.BinarySearchFunc(m.points, in, func(p ControlPoint, v float64) int {
		switch {
		case p.In < v:
			return -1
		case p.In > v:
			return 1
		}
		return 0
	})
	if found {
		return fmt.Errorf("%w: curve input %g", ErrDuplicatePoint, in)
	}
	m.points = slices.Insert(m.points, i, ControlPoint{In: in, Out: out})
	return nil
}

// ControlPoints returns a copy of the control points.
func (m *Curve) ControlPoints() []ControlPoint { return slices.Clone(m.points) }

// EffectivePoints returns the points used for evaluation, which are the
// default identity curve when fewer than four points are set.
func (m *Curve) EffectivePoints() []ControlPoint { return ops.CurvePoints(m.points) }

// ClearControlPoints removes every control point.
func (m *Curve) ClearControlPoints() { m.points = nil }

func (m *Curve) shallowCopy() Module {
	c := *m
	c.moduleBase = m.copySources()
	c.points = slices.Clone(m.points)
	return &c
}

// Terrace maps its source onto terrace-like steps between control points.
// With fewer than two points, the points {-1, 1} are used instead.
type Terrace struct {
	moduleBase
	points   []float64
	inverted bool
}

// NewTerrace returns a Terrace over src with no control points.
func NewTerrace(src Module) (*Terrace, error) {
	base, err := newBase(KindTerrace, src)
	if err != nil {
		return nil, err
	}
	return &Terrace{moduleBase: base}, nil
}

// Kind implements Module.
func (*Terrace) Kind() Kind { return KindTerrace }

// AddControlPoint inserts a point, keeping the list sorted.
func (m *Terrace) AddControlPoint(v float64) error {
	i, found := slices.BinarySearch(m.points, v)
	if found {
		return fmt.Errorf("%w: terrace value %g", ErrDuplicatePoint, v)
	}
	m.points = slices.Insert(m.points, i, v)
	return nil
}

// MakeControlPoints replaces the points with n evenly spaced points on
// [-1, 1]. n is raised to two if smaller.
func (m *Terrace) MakeControlPoints(n int) { m.points = ops.TerraceSteps(n) }

// ControlPoints returns a copy of the control points.
func (m *Terrace) ControlPoints() []float64 { return slices.Clone(m.points) }

// EffectivePoints returns the points used for evaluation.
func (m *Terrace) EffectivePoints() []float64 { return ops.TerracePoints(m.points) }

// ClearControlPoints removes every control point.
func (m *Terrace) ClearControlPoints() { m.points = nil }

// IsInverted reports whether the terrace curve is mirrored.
func (m *Terrace) IsInverted() bool { return m.inverted }

// SetInverted mirrors the curve between control points.
func (m *Terrace) SetInverted(inverted bool) { m.inverted = inverted }

func (m *Terrace) shallowCopy() Module {
	c := *m
	c.moduleBase = m.copySources()
	c.points = slices.Clone(m.points)
	return &c
}

// Cache remembers the last value of its source.
//
// Evaluating at the same coordinates as the previous call returns the
// stored value. The slot is not synchronized: a Cache must only be
// evaluated from one goroutine at a time. Parallel evaluators give each
// worker its own copy of the graph (see Clone and ContainsCache).
type Cache struct {
	moduleBase
	x, y, z float64
	value   float64
	valid   bool
}

// NewCache returns a Cache over src.
func NewCache(src Module) (*Cache, error) {
	base, err := newBase(KindCache, src)
	if err != nil {
		return nil, err
	}
	return &Cache{moduleBase: base}, nil
}

// Kind implements Module.
func (*Cache) Kind() Kind { return KindCache }

// SetSource replaces the source and invalidates the slot.
func (m *Cache) SetSource(i int, src Module) error {
	if err := m.moduleBase.SetSource(i, src); err != nil {
		return err
	}
	m.valid = false
	return nil
}

// Reset invalidates the cached value.
func (m *Cache) Reset() { m.valid = false }

func (m *Cache) lookup(x, y, z float64) (float64, bool) {
	if m.valid && m.x == x && m.y == y && m.z == z {
		return m.value, true
	}
	return 0, false
}

func (m *Cache) store(x, y, z, v float64) {
	m.x, m.y, m.z, m.value, m.valid = x, y, z, v, true
}

func (m *Cache) shallowCopy() Module {
	return &Cache{moduleBase: m.copySources()}
}
