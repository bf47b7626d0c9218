package geom

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Cuboid is an axis-aligned box given by its lower and upper corners.
type Cuboid struct {
	Min, Max r3.Vec
}

// Cube returns the cube [-half, half]^3.
func Cube(half float64) Cuboid {
	return Cuboid{
		Min: r3.Vec{X: -half, Y: -half, Z: -half},
		Max: r3.Vec{X: half, Y: half, Z: half},
	}
}

// Outside returns true if p lies strictly outside the box along at least
// one axis. Points on the surface are inside.
func (c *Cuboid) Outside(p r3.Vec) bool {
	return p.X < c.Min.X || p.X > c.Max.X ||
		p.Y < c.Min.Y || p.Y > c.Max.Y ||
		p.Z < c.Min.Z || p.Z > c.Max.Z
}

// LimitToDomain keeps the points which lie outside the domain, preserving
// their order. The result shares storage with points.
func LimitToDomain(points []r3.Vec, domain Cuboid) []r3.Vec {
	out := points[:0]
	for _, p := range points {
		if domain.Outside(p) {
			out = append(out, p)
		}
	}
	return out
}
