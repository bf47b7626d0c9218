package geom

import (
	"math"

	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/spatial/r3"
)

// FromSpherical returns the point at radius r with the given polar angle
// (measured from +z) and azimuth (measured from +x in the xy-plane).
func FromSpherical(r float64, polar, azimuth unit.Angle) r3.Vec {
	sp := polar.Sin()
	return r3.Vec{
		X: r * sp * azimuth.Cos(),
		Y: r * sp * azimuth.Sin(),
		Z: r * polar.Cos(),
	}
}

// ToSpherical is the inverse of FromSpherical. The azimuth is in
// [0, 2 pi). The angles at the origin are NaN.
func ToSpherical(p r3.Vec) (r float64, polar, azimuth unit.Angle) {
	r = r3.Norm(p)
	polar = unit.Angle(math.Acos(p.Z / r))
	phi := math.Atan2(p.Y, p.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return r, polar, unit.Angle(phi)
}
