package noise

import "github.com/gogpu/noise/internal/ops"

// Add outputs the sum of its two sources.
type Add struct{ moduleBase }

// NewAdd returns a module adding a and b.
func NewAdd(a, b Module) (*Add, error) {
	base, err := newBase(KindAdd, a, b)
	if err != nil {
		return nil, err
	}
	return &Add{base}, nil
}

// Kind implements Module.
func (*Add) Kind() Kind { return KindAdd }

func (m *Add) shallowCopy() Module { return &Add{m.copySources()} }

// Multiply outputs the product of its two sources.
type Multiply struct{ moduleBase }

// NewMultiply returns a module multiplying a and b.
func NewMultiply(a, b Module) (*Multiply, error) {
	base, err := newBase(KindMultiply, a, b)
	if err != nil {
		return nil, err
	}
	return &Multiply{base}, nil
}

// Kind implements Module.
func (*Multiply) Kind() Kind { return KindMultiply }

func (m *Multiply) shallowCopy() Module { return &Multiply{m.copySources()} }

// Min outputs the smaller of its two sources.
type Min struct{ moduleBase }

// NewMin returns a module taking the minimum of a and b.
func NewMin(a, b Module) (*Min, error) {
	base, err := newBase(KindMin, a, b)
	if err != nil {
		return nil, err
	}
	return &Min{base}, nil
}

// Kind implements Module.
func (*Min) Kind() Kind { return KindMin }

func (m *Min) shallowCopy() Module { return &Min{m.copySources()} }

// Max outputs the larger of its two sources.
type Max struct{ moduleBase }

// NewMax returns a module taking the maximum of a and b.
func NewMax(a, b Module) (*Max, error) {
	base, err := newBase(KindMax, a, b)
	if err != nil {
		return nil, err
	}
	return &Max{base}, nil
}

// Kind implements Module.
func (*Max) Kind() Kind { return KindMax }

func (m *Max) shallowCopy() Module { return &Max{m.copySources()} }

// Power outputs base raised to exponent.
type Power struct{ moduleBase }

// NewPower returns a module raising base to exponent.
func NewPower(base, exponent Module) (*Power, error) {
	b, err := newBase(KindPower, base, exponent)
	if err != nil {
		return nil, err
	}
	return &Power{b}, nil
}

// Kind implements Module.
func (*Power) Kind() Kind { return KindPower }

func (m *Power) shallowCopy() Module { return &Power{m.copySources()} }

// Blend interpolates between sources 0 and 1 using source 2 as the
// weight, mapped from [-1, 1] to [0, 1].
type Blend struct{ moduleBase }

// NewBlend returns a module blending a into b by control.
func NewBlend(a, b, control Module) (*Blend, error) {
	base, err := newBase(KindBlend, a, b, control)
	if err != nil {
		return nil, err
	}
	return &Blend{base}, nil
}

// Kind implements Module.
func (*Blend) Kind() Kind { return KindBlend }

func (m *Blend) shallowCopy() Module { return &Blend{m.copySources()} }

// Selector defaults.
const (
	DefaultSelectorLower = -1.0
	DefaultSelectorUpper = 1.0
)

// Selector outputs source 1 where the control (source 2) lies within
// [lower, upper] and source 0 elsewhere, optionally smoothing the
// transition over an edge falloff band.
type Selector struct {
	moduleBase
	lower, upper float64
	falloff      float64
}

// NewSelector returns a Selector choosing between a and b by control.
func NewSelector(a, b, control Module) (*Selector, error) {
	base, err := newBase(KindSelector, a, b, control)
	if err != nil {
		return nil, err
	}
	return &Selector{
		moduleBase: base,
		lower:      DefaultSelectorLower,
		upper:      DefaultSelectorUpper,
	}, nil
}

// Kind implements Module.
func (*Selector) Kind() Kind { return KindSelector }

// Bounds returns the selection range.
func (m *Selector) Bounds() (lower, upper float64) { return m.lower, m.upper }

// EdgeFalloff returns the clamped edge falloff.
func (m *Selector) EdgeFalloff() float64 { return m.falloff }

// SetBounds sets the selection range, swapping the values if needed, and
// re-clamps the edge falloff to half the span.
func (m *Selector) SetBounds(lower, upper float64) {
	if lower > upper {
		lower, upper = upper, lower
	}
	m.lower, m.upper = lower, upper
	m.falloff = ops.ClampFalloff(lower, upper, m.falloff)
}

// SetEdgeFalloff sets the width of the smoothed transition at each bound.
// The value is clamped to [0, (upper-lower)/2].
func (m *Selector) SetEdgeFalloff(falloff float64) {
	m.falloff = ops.ClampFalloff(m.lower, m.upper, falloff)
}

func (m *Selector) shallowCopy() Module {
	c := *m
	c.moduleBase = m.copySources()
	return &c
}
