// Package ops defines what each module variant computes.
//
// The recursive interpreter in package noise and the instruction-stream
// machine in package shader both call these functions, so the two backends
// share one definition of every formula. The WGSL text emitted by package
// shader is a transliteration of this file.
package ops

import (
	"math"

	"github.com/gogpu/noise/interp"
	"github.com/gogpu/noise/kernel"
)

// MaxOctaves bounds the octave count of every fractal generator.
const MaxOctaves = 30

// Ridged multifractal constants.
const (
	RidgedOffset = 1.0
	RidgedGain   = 2.0
)

// Deg2Rad converts degrees to radians.
const Deg2Rad = math.Pi / 180

// ControlPoint maps an input value to an output value on a Curve.
type ControlPoint struct {
	In  float64
	Out float64
}

// ClampOctaves restricts n to [1, MaxOctaves].
func ClampOctaves(n int) int {
	return interp.ClampInt(n, 1, MaxOctaves)
}

// Selector picks between v0 and v1 depending on where control c falls
// relative to [lower, upper]. With falloff > 0 the transitions at both
// bounds are smoothed with SCurve3 over a band of width 2*falloff.
func Selector(c, v0, v1, lower, upper, falloff float64) float64 {
	if falloff <= 0 {
		if c < lower || c > upper {
			return v0
		}
		return v1
	}
	switch {
	case c < lower-falloff:
		return v0
	case c < lower+falloff:
		lo, hi := lower-falloff, lower+falloff
		return interp.Linear(v0, v1, interp.SCurve3((c-lo)/(hi-lo)))
	case c < upper-falloff:
		return v1
	case c < upper+falloff:
		lo, hi := upper-falloff, upper+falloff
		return interp.Linear(v1, v0, interp.SCurve3((c-lo)/(hi-lo)))
	default:
		return v0
	}
}

// ClampFalloff limits falloff to half the span of [lower, upper].
func ClampFalloff(lower, upper, falloff float64) float64 {
	half := (upper - lower) / 2
	if falloff > half {
		falloff = half
	}
	if falloff < 0 {
		falloff = 0
	}
	return falloff
}

// Blend interpolates v0 to v1 with control c mapped from [-1, 1] to [0, 1].
func Blend(v0, v1, c float64) float64 {
	return interp.Linear(v0, v1, (c+1)/2)
}

// ScaleBias returns v*scale + bias.
func ScaleBias(v, scale, bias float64) float64 {
	return v*scale + bias
}

// Power returns a raised to b.
func Power(a, b float64) float64 {
	return math.Pow(a, b)
}

// Checkerboard returns 1 or -1 for alternating unit cubes.
func Checkerboard(x, y, z float64) float64 {
	ix := int(math.Floor(x)) & 1
	iy := int(math.Floor(y)) & 1
	iz := int(math.Floor(z)) & 1
	if ix^iy^iz != 0 {
		return -1
	}
	return 1
}

// Cylinders returns concentric cylinders around the y axis, 1 on the
// surfaces and -1 halfway between them.
func Cylinders(frequency, x, z float64) float64 {
	x *= frequency
	z *= frequency
	d := math.Sqrt(x*x + z*z)
	return shells(d)
}

// Spheres returns concentric spheres around the origin.
func Spheres(frequency, x, y, z float64) float64 {
	x *= frequency
	y *= frequency
	z *= frequency
	d := math.Sqrt(x*x + y*y + z*z)
	return shells(d)
}

func shells(d float64) float64 {
	fromSmaller := d - math.Floor(d)
	fromLarger := 1 - fromSmaller
	nearest := math.Min(fromSmaller, fromLarger)
	return 1 - nearest*4
}

// Perlin sums octaves of gradient noise (fBm).
func Perlin(k *kernel.Kernel, x, y, z, frequency, lacunarity, persistence float64, octaves int) float64 {
	octaves = ClampOctaves(octaves)
	value := 0.0
	amp := 1.0
	x *= frequency
	y *= frequency
	z *= frequency
	for range octaves {
		value += k.GradientCoherentXYZ(x, y, z) * amp
		x *= lacunarity
		y *= lacunarity
		z *= lacunarity
		amp *= persistence
	}
	return value
}

// Billow sums octaves of folded gradient noise, giving billowy shapes.
func Billow(k *kernel.Kernel, x, y, z, frequency, lacunarity, persistence float64, octaves int) float64 {
	octaves = ClampOctaves(octaves)
	value := 0.0
	amp := 1.0
	x *= frequency
	y *= frequency
	z *= frequency
	for range octaves {
		signal := k.GradientCoherentXYZ(x, y, z)
		signal = 2*math.Abs(signal) - 1
		value += signal * amp
		x *= lacunarity
		y *= lacunarity
		z *= lacunarity
		amp *= persistence
	}
	return value + 0.5
}

// RidgedMulti sums ridged octaves where each octave is weighted by the
// previous one. Spectral weights use an exponent of 1, so octave i is
// weighted by 1/lacunarity^i.
func RidgedMulti(k *kernel.Kernel, x, y, z, frequency, lacunarity float64, octaves int) float64 {
	octaves = ClampOctaves(octaves)
	value := 0.0
	weight := 1.0
	spectral := 1.0
	x *= frequency
	y *= frequency
	z *= frequency
	for range octaves {
		signal := k.GradientCoherentXYZ(x, y, z)
		signal = RidgedOffset - math.Abs(signal)
		signal *= signal
		signal *= weight

		weight = interp.Clamp(signal*RidgedGain, 0, 1)

		value += signal / spectral
		spectral *= lacunarity
		x *= lacunarity
		y *= lacunarity
		z *= lacunarity
	}
	return value*1.25 - 1
}

// VoronoiJitter offsets the lattice lookups used for the three jitter axes.
var VoronoiJitter = [3]kernel.IVec3{
	{0, 0, 0},
	{23, 51, 37},
	{89, 13, 67},
}

// Voronoi returns the cell value of the nearest jittered seed point, plus
// the scaled distance to it when distance is enabled.
func Voronoi(k *kernel.Kernel, x, y, z, frequency, displacement float64, distance bool) float64 {
	x *= frequency
	y *= frequency
	z *= frequency

	xi, yi, zi := int(math.Floor(x)), int(math.Floor(y)), int(math.Floor(z))

	minDist := math.MaxFloat64
	var cx, cy, cz float64
	for zc := zi - 2; zc <= zi+2; zc++ {
		for yc := yi - 2; yc <= yi+2; yc++ {
			for xc := xi - 2; xc <= xi+2; xc++ {
				px := float64(xc) + k.IntValue(kernel.IVec3{X: xc + VoronoiJitter[0].X, Y: yc + VoronoiJitter[0].Y, Z: zc + VoronoiJitter[0].Z})
				py := float64(yc) + k.IntValue(kernel.IVec3{X: xc + VoronoiJitter[1].X, Y: yc + VoronoiJitter[1].Y, Z: zc + VoronoiJitter[1].Z})
				pz := float64(zc) + k.IntValue(kernel.IVec3{X: xc + VoronoiJitter[2].X, Y: yc + VoronoiJitter[2].Y, Z: zc + VoronoiJitter[2].Z})
				dx, dy, dz := px-x, py-y, pz-z
				d := dx*dx + dy*dy + dz*dz
				if d < minDist {
					minDist = d
					cx, cy, cz = px, py, pz
				}
			}
		}
	}

	value := 0.0
	if distance {
		dx, dy, dz := cx-x, cy-y, cz-z
		value = math.Sqrt(dx*dx+dy*dy+dz*dz)*math.Sqrt(3) - 1
	}
	cell := kernel.IVec3{X: int(math.Floor(cx)), Y: int(math.Floor(cy)), Z: int(math.Floor(cz))}
	return value + displacement*k.IntValue(cell)
}

// RotationMatrix returns the row-major 3x3 matrix rotating by the given
// angles in degrees around x, y and z.
func RotationMatrix(xAngle, yAngle, zAngle float64) [9]float64 {
	xCos, xSin := math.Cos(xAngle*Deg2Rad), math.Sin(xAngle*Deg2Rad)
	yCos, ySin := math.Cos(yAngle*Deg2Rad), math.Sin(yAngle*Deg2Rad)
	zCos, zSin := math.Cos(zAngle*Deg2Rad), math.Sin(zAngle*Deg2Rad)
	return [9]float64{
		ySin*xSin*zSin + yCos*zCos, xCos * zSin, ySin*zCos - yCos*xSin*zSin,
		ySin*xSin*zCos - yCos*zSin, xCos * zCos, -yCos*xSin*zCos - ySin*zSin,
		-ySin * xCos, xSin, yCos * xCos,
	}
}

// Rotate applies m to (x, y, z).
func Rotate(m [9]float64, x, y, z float64) (float64, float64, float64) {
	return m[0]*x + m[1]*y + m[2]*z,
		m[3]*x + m[4]*y + m[5]*z,
		m[6]*x + m[7]*y + m[8]*z
}

// LinePoint returns the point at parameter t on the segment start-end.
func LinePoint(start, end kernel.Vec3, t float64) (float64, float64, float64) {
	return (end.X-start.X)*t + start.X,
		(end.Y-start.Y)*t + start.Y,
		(end.Z-start.Z)*t + start.Z
}

// LineAttenuate fades v towards the segment ends when attenuate is set.
func LineAttenuate(v, t float64, attenuate bool) float64 {
	if !attenuate {
		return v
	}
	return v * t * (1 - t) * 4
}

// Turbulence distortion generator constants.
const (
	TurbulenceLacunarity  = 2.0
	TurbulencePersistence = 0.5
)

// TurbulenceOffsets decorrelate the three distortion generators.
var TurbulenceOffsets = [3]kernel.Vec3{
	{X: 12414.0 / 65536.0, Y: 65124.0 / 65536.0, Z: 31337.0 / 65536.0},
	{X: 26519.0 / 65536.0, Y: 18128.0 / 65536.0, Z: 60493.0 / 65536.0},
	{X: 53820.0 / 65536.0, Y: 11213.0 / 65536.0, Z: 44845.0 / 65536.0},
}

// TurbulenceComponent returns the distortion along one axis (0, 1 or 2)
// before scaling by power.
func TurbulenceComponent(k *kernel.Kernel, axis int, x, y, z, frequency float64, roughness int) float64 {
	o := TurbulenceOffsets[axis]
	return Perlin(k, x+o.X, y+o.Y, z+o.Z, frequency, TurbulenceLacunarity, TurbulencePersistence, roughness)
}

// Turbulence displaces (x, y, z) by three decorrelated Perlin fields.
func Turbulence(k *kernel.Kernel, x, y, z, frequency, power float64, roughness int) (float64, float64, float64) {
	dx := TurbulenceComponent(k, 0, x, y, z, frequency, roughness)
	dy := TurbulenceComponent(k, 1, x, y, z, frequency, roughness)
	dz := TurbulenceComponent(k, 2, x, y, z, frequency, roughness)
	return x + dx*power, y + dy*power, z + dz*power
}
