// Package kernel implements the permutation-table gradient noise that every
// generator module samples.
//
// A Kernel is built once from a seed and is read-only afterwards, so a single
// instance can be shared by any number of modules and goroutines.
package kernel

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/noise/interp"
)

// TableSize is the length of the permutation table.
const TableSize = 256

// Vec3 is a 3-component float vector.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// IVec3 is an integer lattice point.
type IVec3 struct {
	X, Y, Z int
}

// gradients are the 12 edge midpoints of a cube.
var gradients = [12]Vec3{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// Gradient returns gradient vector i (0..11).
func Gradient(i int) Vec3 { return gradients[i] }

// Kernel holds the seed-derived lookup tables.
type Kernel struct {
	seed        int32
	permutation [TableSize]uint8
	perm2D      [TableSize * TableSize][4]uint8
	gradPerm    [2 * TableSize]Vec3
}

// New builds the tables for seed. The permutation is a Fisher-Yates shuffle
// driven by a PCG stream seeded from seed, so equal seeds give equal tables.
func New(seed int32) *Kernel {
	k := &Kernel{seed: seed}

	rng := rand.New(rand.NewPCG(uint64(uint32(seed)), 0x9e3779b97f4a7c15))
	for i := range k.permutation {
		k.permutation[i] = uint8(i)
	}
	for i := TableSize - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		k.permutation[i], k.permutation[j] = k.permutation[j], k.permutation[i]
	}

	for y := range TableSize {
		for x := range TableSize {
			aa, ab, ba, bb := k.perm2DSlow(x, y)
			k.perm2D[y*TableSize+x] = [4]uint8{uint8(aa), uint8(ab), uint8(ba), uint8(bb)}
		}
	}

	for i := range k.gradPerm {
		k.gradPerm[i] = gradients[int(k.permutation[i&(TableSize-1)])%len(gradients)]
	}
	return k
}

// Seed returns the seed the kernel was built from.
func (k *Kernel) Seed() int32 { return k.seed }

// Permutation returns a copy of the permutation table.
func (k *Kernel) Permutation() [TableSize]uint8 { return k.permutation }

// Perm returns permutation[x mod 256], with the modulus taken over the
// unsigned representation so negative lattice coordinates wrap.
func (k *Kernel) Perm(x int) int {
	return int(k.permutation[uint32(x)&(TableSize-1)])
}

func (k *Kernel) perm2DSlow(px, py int) (aa, ab, ba, bb int) {
	a := k.Perm(px) + py
	b := k.Perm(px+1) + py
	return k.Perm(a), k.Perm(a + 1), k.Perm(b), k.Perm(b + 1)
}

// Perm2D returns the four hashed corner values of lattice cell (px, py):
// A = Perm(px)+py, AA = Perm(A), AB = Perm(A+1), B = Perm(px+1)+py,
// BA = Perm(B), BB = Perm(B+1).
func (k *Kernel) Perm2D(px, py int) (aa, ab, ba, bb int) {
	e := k.perm2D[(uint32(py)&(TableSize-1))*TableSize+(uint32(px)&(TableSize-1))]
	return int(e[0]), int(e[1]), int(e[2]), int(e[3])
}

// IntValue returns a pseudo-random value in [-1, 1] keyed by lattice point pi.
func (k *Kernel) IntValue(pi IVec3) float64 {
	v := k.Perm(k.Perm(k.Perm(pi.X)+pi.Y) + pi.Z)
	return float64(v)/255*2 - 1
}

// GradPerm returns the dot product of p with the gradient selected by
// Perm(x) mod 12.
func (k *Kernel) GradPerm(x int, p Vec3) float64 {
	return k.gradPerm[uint32(x)&(2*TableSize-1)].Dot(p)
}

// corner offsets for the z = 0 face; the z = 1 face adds (0, 0, -1).
var cornerOffsets = [4]Vec3{
	{0, 0, 0}, {-1, 0, 0}, {0, -1, 0}, {-1, -1, 0},
}

// GradientCoherent returns improved gradient noise at p. The result is zero
// at every integer lattice point and lies roughly in [-1, 1].
func (k *Kernel) GradientCoherent(p Vec3) float64 {
	fx, fy, fz := math.Floor(p.X), math.Floor(p.Y), math.Floor(p.Z)
	ix, iy, iz := int(fx), int(fy), int(fz)
	f := Vec3{p.X - fx, p.Y - fy, p.Z - fz}
	ux, uy, uz := interp.SCurve5(f.X), interp.SCurve5(f.Y), interp.SCurve5(f.Z)

	aa, ab, ba, bb := k.Perm2D(ix, iy)
	aa += iz
	ab += iz
	ba += iz
	bb += iz

	back := Vec3{0, 0, -1}

	n000 := k.GradPerm(aa, f.Add(cornerOffsets[0]))
	n100 := k.GradPerm(ba, f.Add(cornerOffsets[1]))
	n010 := k.GradPerm(ab, f.Add(cornerOffsets[2]))
	n110 := k.GradPerm(bb, f.Add(cornerOffsets[3]))
	n001 := k.GradPerm(aa+1, f.Add(cornerOffsets[0]).Add(back))
	n101 := k.GradPerm(ba+1, f.Add(cornerOffsets[1]).Add(back))
	n011 := k.GradPerm(ab+1, f.Add(cornerOffsets[2]).Add(back))
	n111 := k.GradPerm(bb+1, f.Add(cornerOffsets[3]).Add(back))

	nx00 := interp.Linear(n000, n100, ux)
	nx10 := interp.Linear(n010, n110, ux)
	nx01 := interp.Linear(n001, n101, ux)
	nx11 := interp.Linear(n011, n111, ux)

	ny0 := interp.Linear(nx00, nx10, uy)
	ny1 := interp.Linear(nx01, nx11, uy)

	return interp.Linear(ny0, ny1, uz)
}

// GradientCoherentXYZ is GradientCoherent for unpacked coordinates.
func (k *Kernel) GradientCoherentXYZ(x, y, z float64) float64 {
	return k.GradientCoherent(Vec3{x, y, z})
}
