package density

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrUnknownField is returned by FieldByName.
var ErrUnknownField = errors.New("density: unknown analytic field")

// UniformSphere is a ball of constant density centered on the origin. It
// expects Direct encoding.
type UniformSphere struct {
	Radius, Rho float64
}

// UniformCube is the cube [-Half, Half]^3 at constant density. It expects
// Direct encoding.
type UniformCube struct {
	Half, Rho float64
}

func (s UniformSphere) InputDim() int { return 3 }
func (c UniformCube) InputDim() int   { return 3 }

func (s UniformSphere) Density(in *mat.Dense) []float64 {
	rows, _ := in.Dims()
	out := make([]float64, rows)
	r2 := s.Radius * s.Radius
	for i := range out {
		x := in.RawRowView(i)
		if x[0]*x[0]+x[1]*x[1]+x[2]*x[2] <= r2 {
			out[i] = s.Rho
		}
	}
	return out
}

func (c UniformCube) Density(in *mat.Dense) []float64 {
	rows, _ := in.Dims()
	out := make([]float64, rows)
	for i := range out {
		x := in.RawRowView(i)
		if math.Abs(x[0]) <= c.Half && math.Abs(x[1]) <= c.Half &&
			math.Abs(x[2]) <= c.Half {
			out[i] = c.Rho
		}
	}
	return out
}

// Mass returns the total mass of the sphere.
func (s UniformSphere) Mass() float64 {
	return s.Rho * 4 * math.Pi / 3 * s.Radius * s.Radius * s.Radius
}

// Mass returns the total mass of the cube.
func (c UniformCube) Mass() float64 {
	w := 2 * c.Half
	return c.Rho * w * w * w
}

// Potential returns the exact gravitational potential of the sphere at p,
// with G = 1.
func (s UniformSphere) Potential(p r3.Vec) float64 {
	r, m := r3.Norm(p), s.Mass()
	if r >= s.Radius {
		return -m / r
	}
	r3R := s.Radius * s.Radius * s.Radius
	return -m * (3*s.Radius*s.Radius - r*r) / (2 * r3R)
}

// Acceleration returns the exact gravitational acceleration of the sphere
// at p, with G = 1.
func (s UniformSphere) Acceleration(p r3.Vec) r3.Vec {
	r, m := r3.Norm(p), s.Mass()
	if r >= s.Radius {
		return r3.Scale(-m/(r*r*r), p)
	}
	return r3.Scale(-m/(s.Radius*s.Radius*s.Radius), p)
}

// FieldByName returns an analytic field: "sphere" (a UniformSphere of the
// given size) or "cube" (a UniformCube with half-width size).
func FieldByName(name string, size, rho float64) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sphere":
		return UniformSphere{Radius: size, Rho: rho}, nil
	case "cube":
		return UniformCube{Half: size, Rho: rho}, nil
	}
	return nil, errors.Wrapf(ErrUnknownField, "'%s'", name)
}
