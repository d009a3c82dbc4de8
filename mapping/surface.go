package mapping

import (
	"math"

	"github.com/gogpu/noise/internal/ops"
	"github.com/gogpu/noise/interp"
)

// Field is a noise value as a function of a 3D position.
type Field func(x, y, z float64) float64

// Surface is a noise value as a function of two surface parameters.
type Surface func(u, v float64) float64

// Plane samples f on the y = 0 plane, with u along x and v along z.
func Plane(f Field) Surface {
	return func(u, v float64) float64 { return f(u, 0, v) }
}

// SeamlessPlane samples f on the y = 0 plane over the rectangle starting
// at (lowerU, lowerV) with the given extents, blending each value with the
// values one extent away so opposite edges of the rectangle match.
func SeamlessPlane(f Field, lowerU, lowerV, extentU, extentV float64) Surface {
	return func(u, v float64) float64 {
		sw := f(u, 0, v)
		se := f(u+extentU, 0, v)
		nw := f(u, 0, v+extentV)
		ne := f(u+extentU, 0, v+extentV)
		bu := 1 - (u-lowerU)/extentU
		bv := 1 - (v-lowerV)/extentV
		v0 := interp.Linear(sw, se, bu)
		v1 := interp.Linear(nw, ne, bu)
		return interp.Linear(v0, v1, bv)
	}
}

// Cylinder samples f on the unit cylinder around the y axis, with u the
// angle in degrees and v the height.
func Cylinder(f Field) Surface {
	return func(angle, height float64) float64 {
		a := angle * ops.Deg2Rad
		return f(math.Cos(a), height, math.Sin(a))
	}
}

// Sphere samples f on the unit sphere, with u the longitude and v the
// latitude, both in degrees.
func Sphere(f Field) Surface {
	return func(lon, lat float64) float64 {
		return f(LatLonToXYZ(lat, lon))
	}
}

// LatLonToXYZ converts a latitude and longitude in degrees to a point on
// the unit sphere.
func LatLonToXYZ(lat, lon float64) (x, y, z float64) {
	la, lo := lat*ops.Deg2Rad, lon*ops.Deg2Rad
	r := math.Cos(la)
	return r * math.Cos(lo), math.Sin(la), r * math.Sin(lo)
}
