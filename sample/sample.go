/*package sample generates the target points at which gravity is evaluated
during training and validation. All methods keep their points outside the
body, which is assumed to fit inside [-1, 1]^3.
*/
package sample

import (
	"math"

	"github.com/pkg/errors"
	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"k8s.io/klog"

	"github.com/geodesynet/gravann/geom"
	"github.com/geodesynet/gravann/rand"
)

const (
	Cubical       = "cubical"
	Spherical     = "spherical"
	SphericalGrid = "spherical_grid"

	// DefaultRadius is a little more than the distance from the origin to
	// a corner of the unit cube.
	DefaultRadius = 1.73205
)

var (
	ErrUnknownMethod = errors.New("sample: unknown sampling method")
	ErrCount         = errors.New("sample: point count must be positive")
	ErrBounds        = errors.New("sample: invalid bounds")
)

// Sampler returns a batch of target points each time it is called.
type Sampler func() []r3.Vec

// Params holds the shape parameters of every method. Each method reads
// only its own fields.
type Params struct {
	// RadiusBounds are the inner and outer radii of the spherical shell.
	RadiusBounds [2]float64
	// ScaleBounds are the half-widths of the inner (excluded) and outer
	// cubes of the cubical method.
	ScaleBounds [2]float64
	// GridRadius is the radius of the spherical grid.
	GridRadius float64
}

// DefaultParams returns the parameters used when none are given.
func DefaultParams() Params {
	return Params{
		RadiusBounds: [2]float64{DefaultRadius, DefaultRadius},
		ScaleBounds:  [2]float64{1.0, 1.1},
		GridRadius:   DefaultRadius,
	}
}

// Methods lists the supported method names.
func Methods() []string { return []string{Cubical, Spherical, SphericalGrid} }

// New returns a Sampler for the named method which yields n points per
// call. The spherical_grid method yields about n points (the nearest square
// number) and returns the same points on every call. A nil gen is replaced
// by a time-seeded one.
func New(n int, method string, p Params, gen *rand.Generator) (Sampler, error) {
	if n <= 0 {
		return nil, ErrCount
	}
	if gen == nil {
		gen = rand.NewTimeSeed()
	}

	switch method {
	case Cubical:
		s0, s1 := p.ScaleBounds[0], p.ScaleBounds[1]
		if !(s0 >= 0 && s1 > s0) {
			return nil, errors.Wrapf(ErrBounds, "scale bounds [%g, %g]", s0, s1)
		}
		return func() []r3.Vec { return cubical(n, s0, s1, gen) }, nil

	case Spherical:
		r0, r1 := p.RadiusBounds[0], p.RadiusBounds[1]
		if !(r0 >= 0 && r1 > 0 && r1 >= r0) {
			return nil, errors.Wrapf(ErrBounds, "radius bounds [%g, %g]", r0, r1)
		}
		return func() []r3.Vec { return spherical(n, r0, r1, gen) }, nil

	case SphericalGrid:
		if !(p.GridRadius > 0) {
			return nil, errors.Wrapf(ErrBounds, "grid radius %g", p.GridRadius)
		}
		points := sphericalGrid(n, p.GridRadius)
		return func() []r3.Vec { return points }, nil
	}

	return nil, errors.Wrapf(ErrUnknownMethod, "'%s'", method)
}

// cubical draws points uniformly from [-s1, s1]^3 and keeps the first n
// which fall outside [-s0, s0]^3. Twice the expected number of candidates
// is drawn, so a shortfall is very unlikely. If it happens anyway the
// short batch is returned.
func cubical(n int, s0, s1 float64, gen *rand.Generator) []r3.Vec {
	inner := math.Pow(s0/s1, 3)
	candidates := int(2 * float64(n) / (1 - inner))

	points := make([]r3.Vec, candidates)
	for i := range points {
		points[i] = r3.Vec{
			X: gen.Uniform(-s1, s1),
			Y: gen.Uniform(-s1, s1),
			Z: gen.Uniform(-s1, s1),
		}
	}

	points = geom.LimitToDomain(points, geom.Cube(s0))
	if len(points) < n {
		klog.Warningf("sample: only %d of %d cubical points survived "+
			"rejection", len(points), n)
		return points
	}
	return points[:n]
}

// spherical draws n points from the shell between r0 and r1. Directions
// are uniform, but radii use the linear ratio r0/r1 inside the cube root,
// so the shell is volume-uniform only when r0 == r1 or r0 == 0.
func spherical(n int, r0, r1 float64, gen *rand.Generator) []r3.Vec {
	k := r0 / r1
	points := make([]r3.Vec, n)
	for i := range points {
		azimuth := unit.Angle(2 * math.Pi * gen.Uniform(0, 1))
		polar := unit.Angle(math.Acos(1 - 2*gen.Uniform(0, 1)))
		r := r1 * math.Cbrt(k+(1-k)*gen.Uniform(0, 1))
		points[i] = geom.FromSpherical(r, polar, azimuth)
	}
	return points
}

// sphericalGrid projects a square (polar, azimuth) grid onto the sphere of
// the given radius. The poles are avoided by an offset of pi/(m+2), where
// m is the grid width.
func sphericalGrid(n int, radius float64) []r3.Vec {
	m := int(math.Round(math.Sqrt(float64(n))))
	if m < 1 {
		m = 1
	}
	offset := math.Pi / float64(m+2)

	grid1D := make([]float64, m)
	if m == 1 {
		grid1D[0] = offset
	} else {
		floats.Span(grid1D, offset, math.Pi-offset)
	}

	points := make([]r3.Vec, 0, m*m)
	for _, phi := range grid1D {
		for _, theta := range grid1D {
			points = append(points, geom.FromSpherical(
				radius, unit.Angle(phi), unit.Angle(2*theta),
			))
		}
	}
	return points
}
