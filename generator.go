package noise

import (
	"fmt"

	"github.com/gogpu/noise/kernel"
)

// Generator defaults.
const (
	DefaultFrequency    = 1.0
	DefaultLacunarity   = 2.0
	DefaultPersistence  = 0.5
	DefaultOctaves      = 6
	DefaultDisplacement = 1.0
)

// Constant outputs Value everywhere.
type Constant struct {
	moduleBase
	Value float64
}

// NewConstant returns a Constant module.
func NewConstant(value float64) *Constant {
	return &Constant{moduleBase: moduleBase{}, Value: value}
}

// Kind implements Module.
func (*Constant) Kind() Kind { return KindConstant }

func (m *Constant) shallowCopy() Module {
	c := *m
	c.moduleBase = m.copySources()
	return &c
}

// Checkerboard outputs 1 and -1 on alternating unit cubes.
type Checkerboard struct {
	moduleBase
}

// NewCheckerboard returns a Checkerboard module.
func NewCheckerboard() *Checkerboard { return &Checkerboard{} }

// Kind implements Module.
func (*Checkerboard) Kind() Kind { return KindCheckerboard }

func (m *Checkerboard) shallowCopy() Module {
	c := *m
	c.moduleBase = m.copySources()
	return &c
}

// Cylinder outputs concentric cylinders centred on the y axis.
type Cylinder struct {
	moduleBase
	Frequency float64
}

// NewCylinder returns a Cylinder module with unit frequency.
func NewCylinder() *Cylinder { return &Cylinder{Frequency: DefaultFrequency} }

// Kind implements Module.
func (*Cylinder) Kind() Kind { return KindCylinder }

func (m *Cylinder) shallowCopy() Module {
	c := *m
	c.moduleBase = m.copySources()
	return &c
}

// Sphere outputs concentric spheres centred on the origin.
type Sphere struct {
	moduleBase
	Frequency float64
}

// NewSphere returns a Sphere module with unit frequency.
func NewSphere() *Sphere { return &Sphere{Frequency: DefaultFrequency} }

// Kind implements Module.
func (*Sphere) Kind() Kind { return KindSphere }

func (m *Sphere) shallowCopy() Module {
	c := *m
	c.moduleBase = m.copySources()
	return &c
}

// Perlin outputs fractal gradient noise.
type Perlin struct {
	moduleBase
	kernel      *kernel.Kernel
	Frequency   float64
	Lacunarity  float64
	Persistence float64
	Octaves     int
}

// NewPerlin returns a Perlin module sampling k with default parameters.
func NewPerlin(k *kernel.Kernel) (*Perlin, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: Perlin", ErrNilKernel)
	}
	return &Perlin{
		kernel:      k,
		Frequency:   DefaultFrequency,
		Lacunarity:  DefaultLacunarity,
		Persistence: DefaultPersistence,
		Octaves:     DefaultOctaves,
	}, nil
}

// Kind implements Module.
func (*Perlin) Kind() Kind { return KindPerlin }

// Kernel returns the sampled noise kernel.
func (m *Perlin) Kernel() *kernel.Kernel { return m.kernel }

func (m *Perlin) shallowCopy() Module {
	c := *m
	c.moduleBase = m.copySources()
	return &c
}

// Billow outputs fractal noise built from folded gradient noise.
type Billow struct {
	moduleBase
	kernel      *kernel.Kernel
	Frequency   float64
	Lacunarity  float64
	Persistence float64
	Octaves     int
}

// NewBillow returns a Billow module sampling k with default parameters.
func NewBillow(k *kernel.Kernel) (*Billow, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: Billow", ErrNilKernel)
	}
	return &Billow{
		kernel:      k,
		Frequency:   DefaultFrequency,
		Lacunarity:  DefaultLacunarity,
		Persistence: DefaultPersistence,
		Octaves:     DefaultOctaves,
	}, nil
}

// Kind implements Module.
func (*Billow) Kind() Kind { return KindBillow }

// Kernel returns the sampled noise kernel.
func (m *Billow) Kernel() *kernel.Kernel { return m.kernel }

func (m *Billow) shallowCopy() Module {
	c := *m
	c.moduleBase = m.copySources()
	return &c
}

// RidgedMulti outputs ridged multifractal noise.
type RidgedMulti struct {
	moduleBase
	kernel     *kernel.Kernel
	Frequency  float64
	Lacunarity float64
	Octaves    int
}

// NewRidgedMulti returns a RidgedMulti module sampling k with default
// parameters.
func NewRidgedMulti(k *kernel.Kernel) (*RidgedMulti, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: RidgedMulti", ErrNilKernel)
	}
	return &RidgedMulti{
		kernel:     k,
		Frequency:  DefaultFrequency,
		Lacunarity: DefaultLacunarity,
		Octaves:    DefaultOctaves,
	}, nil
}

// Kind implements Module.
func (*RidgedMulti) Kind() Kind { return KindRidgedMulti }

// Kernel returns the sampled noise kernel.
func (m *RidgedMulti) Kernel() *kernel.Kernel { return m.kernel }

func (m *RidgedMulti) shallowCopy() Module {
	c := *m
	c.moduleBase = m.copySources()
	return &c
}

// Voronoi outputs cellular noise: each point takes the value of the cell
// whose jittered seed point is nearest.
type Voronoi struct {
	moduleBase
	kernel         *kernel.Kernel
	Frequency      float64
	Displacement   float64
	EnableDistance bool
}

// NewVoronoi returns a Voronoi module sampling k with default parameters.
func NewVoronoi(k *kernel.Kernel) (*Voronoi, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: Voronoi", ErrNilKernel)
	}
	return &Voronoi{
		kernel:       k,
		Frequency:    DefaultFrequency,
		Displacement: DefaultDisplacement,
	}, nil
}

// Kind implements Module.
func (*Voronoi) Kind() Kind { return KindVoronoi }

// Kernel returns the sampled noise kernel.
func (m *Voronoi) Kernel() *kernel.Kernel { return m.kernel }

func (m *Voronoi) shallowCopy() Module {
	c := *m
	c.moduleBase = m.copySources()
	return &c
}

// KernelOf returns the noise kernel sampled by m, or nil when m does not
// sample one.
func KernelOf(m Module) *kernel.Kernel {
	switch v := m.(type) {
	case *Perlin:
		return v.kernel
	case *Billow:
		return v.kernel
	case *RidgedMulti:
		return v.kernel
	case *Voronoi:
		return v.kernel
	case *Turbulence:
		return v.kernel
	}
	return nil
}
