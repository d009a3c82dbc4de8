package noise

import (
	"fmt"

	"github.com/gogpu/noise/internal/ops"
	"github.com/gogpu/noise/kernel"
)

// ScalePoint evaluates its source at the input coordinates multiplied
// component-wise by (X, Y, Z).
type ScalePoint struct {
	moduleBase
	X, Y, Z float64
}

// NewScalePoint returns a ScalePoint over src with unit scale.
func NewScalePoint(src Module) (*ScalePoint, error) {
	base, err := newBase(KindScalePoint, src)
	if err != nil {
		return nil, err
	}
	return &ScalePoint{moduleBase: base, X: 1, Y: 1, Z: 1}, nil
}

// Kind implements Module.
func (*ScalePoint) Kind() Kind { return KindScalePoint }

// SetScale sets the same scale on every axis.
func (m *ScalePoint) SetScale(s float64) { m.X, m.Y, m.Z = s, s, s }

func (m *ScalePoint) shallowCopy() Module {
	c := *m
	c.moduleBase = m.copySources()
	return &c
}

// TranslatePoint evaluates its source at the input coordinates offset by
// (X, Y, Z).
type TranslatePoint struct {
	moduleBase
	X, Y, Z float64
}

// NewTranslatePoint returns a TranslatePoint over src with zero offset.
func NewTranslatePoint(src Module) (*TranslatePoint, error) {
	base, err := newBase(KindTranslatePoint, src)
	if err != nil {
		return nil, err
	}
	return &TranslatePoint{moduleBase: base}, nil
}

// Kind implements Module.
func (*TranslatePoint) Kind() Kind { return KindTranslatePoint }

func (m *TranslatePoint) shallowCopy() Module {
	c := *m
	c.moduleBase = m.copySources()
	return &c
}

// RotatePoint evaluates its source at the input coordinates rotated
// around the origin.
type RotatePoint struct {
	moduleBase
	xAngle, yAngle, zAngle float64
	matrix                 [9]float64
}

// NewRotatePoint returns a RotatePoint over src with no rotation.
func NewRotatePoint(src Module) (*RotatePoint, error) {
	base, err := newBase(KindRotatePoint, src)
	if err != nil {
		return nil, err
	}
	m := &RotatePoint{moduleBase: base}
	m.SetAngles(0, 0, 0)
	return m, nil
}

// Kind implements Module.
func (*RotatePoint) Kind() Kind { return KindRotatePoint }

// Angles returns the rotation angles in degrees.
func (m *RotatePoint) Angles() (x, y, z float64) { return m.xAngle, m.yAngle, m.zAngle }

// SetAngles sets the rotation angles in degrees and recomputes the
// rotation matrix.
func (m *RotatePoint) SetAngles(x, y, z float64) {
	m.xAngle, m.yAngle, m.zAngle = x, y, z
	m.matrix = ops.RotationMatrix(x, y, z)
}

// Matrix returns the row-major rotation matrix.
func (m *RotatePoint) Matrix() [9]float64 { return m.matrix }

func (m *RotatePoint) shallowCopy() Module {
	c := *m
	c.moduleBase = m.copySources()
	return &c
}

// Displace evaluates source 0 at the input coordinates displaced by the
// values of sources 1, 2 and 3 (x, y and z displacement), which are taken
// at the original coordinates.
type Displace struct{ moduleBase }

// NewDisplace returns a Displace module.
func NewDisplace(src, dx, dy, dz Module) (*Displace, error) {
	base, err := newBase(KindDisplace, src, dx, dy, dz)
	if err != nil {
		return nil, err
	}
	return &Displace{base}, nil
}

// Kind implements Module.
func (*Displace) Kind() Kind { return KindDisplace }

func (m *Displace) shallowCopy() Module { return &Displace{m.copySources()} }

// Line evaluates its source along the segment Start-End, using the input x
// coordinate as the segment parameter. With Attenuate set the output fades
// to zero at both ends.
type Line struct {
	moduleBase
	Start     kernel.Vec3
	End       kernel.Vec3
	Attenuate bool
}

// NewLine returns a Line over src from the origin to (1, 1, 1).
func NewLine(src Module) (*Line, error) {
	base, err := newBase(KindLine, src)
	if err != nil {
		return nil, err
	}
	return &Line{
		moduleBase: base,
		End:        kernel.Vec3{X: 1, Y: 1, Z: 1},
		Attenuate:  true,
	}, nil
}

// Kind implements Module.
func (*Line) Kind() Kind { return KindLine }

func (m *Line) shallowCopy() Module {
	c := *m
	c.moduleBase = m.copySources()
	return &c
}

// Turbulence defaults.
const (
	DefaultTurbulencePower     = 1.0
	DefaultTurbulenceRoughness = 3
)

// Turbulence evaluates its source at coordinates randomly displaced by
// three internal Perlin fields.
type Turbulence struct {
	moduleBase
	kernel    *kernel.Kernel
	Frequency float64
	Power     float64
	Roughness int
}

// NewTurbulence returns a Turbulence over src sampling k.
func NewTurbulence(src Module, k *kernel.Kernel) (*Turbulence, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: Turbulence", ErrNilKernel)
	}
	base, err := newBase(KindTurbulence, src)
	if err != nil {
		return nil, err
	}
	return &Turbulence{
		moduleBase: base,
		kernel:     k,
		Frequency:  DefaultFrequency,
		Power:      DefaultTurbulencePower,
		Roughness:  DefaultTurbulenceRoughness,
	}, nil
}

// Kind implements Module.
func (*Turbulence) Kind() Kind { return KindTurbulence }

// Kernel returns the sampled noise kernel.
func (m *Turbulence) Kernel() *kernel.Kernel { return m.kernel }

func (m *Turbulence) shallowCopy() Module {
	c := *m
	c.moduleBase = m.copySources()
	return &c
}
