package noise

import (
	"fmt"
	"math"

	"github.com/gogpu/noise/internal/ops"
	"github.com/gogpu/noise/interp"
)

// Evaluate returns the value of the graph rooted at m at (x, y, z).
//
// Sources are evaluated depth first in source order, which is also the
// order of the compiled instruction stream. Displace is the exception: its
// displacement sources 1 to 3 run before source 0, which needs their
// values. Evaluation of a graph without
// Cache modules is pure and safe for concurrent use.
func Evaluate(m Module, x, y, z float64) float64 {
	switch v := m.(type) {
	case *Constant:
		return v.Value

	case *Add:
		return Evaluate(v.sources[0], x, y, z) + Evaluate(v.sources[1], x, y, z)
	case *Multiply:
		return Evaluate(v.sources[0], x, y, z) * Evaluate(v.sources[1], x, y, z)
	case *Min:
		return math.Min(Evaluate(v.sources[0], x, y, z), Evaluate(v.sources[1], x, y, z))
	case *Max:
		return math.Max(Evaluate(v.sources[0], x, y, z), Evaluate(v.sources[1], x, y, z))
	case *Power:
		return ops.Power(Evaluate(v.sources[0], x, y, z), Evaluate(v.sources[1], x, y, z))

	case *Abs:
		return math.Abs(Evaluate(v.sources[0], x, y, z))
	case *Invert:
		return -Evaluate(v.sources[0], x, y, z)
	case *Clamp:
		return interp.Clamp(Evaluate(v.sources[0], x, y, z), v.lower, v.upper)
	case *ScaleBias:
		return ops.ScaleBias(Evaluate(v.sources[0], x, y, z), v.Scale, v.Bias)
	case *Curve:
		return ops.Curve(v.points, Evaluate(v.sources[0], x, y, z))
	case *Terrace:
		return ops.Terrace(v.points, v.inverted, Evaluate(v.sources[0], x, y, z))

	case *Selector:
		v0 := Evaluate(v.sources[0], x, y, z)
		v1 := Evaluate(v.sources[1], x, y, z)
		c := Evaluate(v.sources[2], x, y, z)
		return ops.Selector(c, v0, v1, v.lower, v.upper, v.falloff)
	case *Blend:
		v0 := Evaluate(v.sources[0], x, y, z)
		v1 := Evaluate(v.sources[1], x, y, z)
		c := Evaluate(v.sources[2], x, y, z)
		return ops.Blend(v0, v1, c)

	case *Cache:
		if val, ok := v.lookup(x, y, z); ok {
			return val
		}
		val := Evaluate(v.sources[0], x, y, z)
		v.store(x, y, z, val)
		return val

	case *ScalePoint:
		return Evaluate(v.sources[0], x*v.X, y*v.Y, z*v.Z)
	case *TranslatePoint:
		return Evaluate(v.sources[0], x+v.X, y+v.Y, z+v.Z)
	case *RotatePoint:
		nx, ny, nz := ops.Rotate(v.matrix, x, y, z)
		return Evaluate(v.sources[0], nx, ny, nz)
	case *Displace:
		dx := Evaluate(v.sources[1], x, y, z)
		dy := Evaluate(v.sources[2], x, y, z)
		dz := Evaluate(v.sources[3], x, y, z)
		return Evaluate(v.sources[0], x+dx, y+dy, z+dz)
	case *Line:
		px, py, pz := ops.LinePoint(v.Start, v.End, x)
		return ops.LineAttenuate(Evaluate(v.sources[0], px, py, pz), x, v.Attenuate)
	case *Turbulence:
		nx, ny, nz := ops.Turbulence(v.kernel, x, y, z, v.Frequency, v.Power, v.Roughness)
		return Evaluate(v.sources[0], nx, ny, nz)

	case *Checkerboard:
		return ops.Checkerboard(x, y, z)
	case *Cylinder:
		return ops.Cylinders(v.Frequency, x, z)
	case *Sphere:
		return ops.Spheres(v.Frequency, x, y, z)
	case *Perlin:
		return ops.Perlin(v.kernel, x, y, z, v.Frequency, v.Lacunarity, v.Persistence, v.Octaves)
	case *Billow:
		return ops.Billow(v.kernel, x, y, z, v.Frequency, v.Lacunarity, v.Persistence, v.Octaves)
	case *RidgedMulti:
		return ops.RidgedMulti(v.kernel, x, y, z, v.Frequency, v.Lacunarity, v.Octaves)
	case *Voronoi:
		return ops.Voronoi(v.kernel, x, y, z, v.Frequency, v.Displacement, v.EnableDistance)
	}
	panic(fmt.Sprintf("noise: Evaluate of unsupported module %T", m))
}

// Source adapts a graph to a plain function of three coordinates.
func Source(m Module) func(x, y, z float64) float64 {
	return func(x, y, z float64) float64 { return Evaluate(m, x, y, z) }
}
