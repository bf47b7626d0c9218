package geom

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/geodesynet/gravann/rand"
)

var (
	// ErrMissingSpacing is returned when a precomputed grid is supplied
	// without its spacing. The spacing cannot be inferred from the points
	// since they may have been permuted or jittered.
	ErrMissingSpacing = errors.New("geom: grid spacing must be given with precomputed grid points")
	// ErrNotCube is returned when a grid's point count is not a perfect cube.
	ErrNotCube = errors.New("geom: grid point count is not a perfect cube")
	// ErrGridTooSmall is returned when a point budget rounds to fewer than
	// two points per axis.
	ErrGridTooSmall = errors.New("geom: integration grid needs at least two points per axis")
	// ErrGridLayout is returned when precomputed points are not in Grid
	// index order.
	ErrGridLayout = errors.New("geom: grid points are not ordered with x varying fastest")
)

// Grid provides an interface for reasoning over a 1D slice as if it were a
// 3D grid. The x index varies fastest.
type Grid struct {
	Length, Area, Volume int
}

// Init initializes a Grid instance.
func (g *Grid) Init(width int) {
	g.Length = width
	g.Area = width * width
	g.Volume = width * width * width
}

// Idx returns the grid index corresponding to a set of coordinates.
func (g *Grid) Idx(x, y, z int) int {
	return x + y*g.Length + z*g.Area
}

// Coords returns the x, y, z coordinates of a point from its grid index.
func (g *Grid) Coords(idx int) (x, y, z int) {
	x = idx % g.Length
	y = (idx % g.Area) / g.Length
	z = idx / g.Area
	return x, y, z
}

// IntegrationGrid is a regular lattice of sample points over [-1, 1]^3
// together with its spacing. Points are stored in Grid index order.
type IntegrationGrid struct {
	Grid
	Points []r3.Vec
	// H is the distance between neighboring points along an axis.
	H float64
	// N is the number of points along each axis.
	N int
}

// GridResolution returns the number of points per axis used for a budget
// of roughly budget points. The actual point count is its cube.
func GridResolution(budget int) int {
	return int(math.Round(math.Cbrt(float64(budget))))
}

// NewIntegrationGrid builds a grid with GridResolution(budget) points along
// each axis of [-1, 1]^3. If noise > 0, each coordinate is shifted by a
// uniform deviate in [0, noise) drawn from gen. A nil gen is replaced by a
// time-seeded one.
func NewIntegrationGrid(
	budget int, noise float64, gen *rand.Generator,
) (*IntegrationGrid, error) {
	n := GridResolution(budget)
	if n < 2 {
		return nil, ErrGridTooSmall
	}

	axis := floats.Span(make([]float64, n), -1, 1)

	ig := &IntegrationGrid{N: n, H: axis[1] - axis[0]}
	ig.Grid.Init(n)
	ig.Points = make([]r3.Vec, ig.Volume)

	for idx := range ig.Points {
		x, y, z := ig.Coords(idx)
		ig.Points[idx] = r3.Vec{X: axis[x], Y: axis[y], Z: axis[z]}
	}

	if noise > 0 {
		if gen == nil {
			gen = rand.NewTimeSeed()
		}
		for i := range ig.Points {
			p := &ig.Points[i]
			p.X += gen.Uniform(0, noise)
			p.Y += gen.Uniform(0, noise)
			p.Z += gen.Uniform(0, noise)
		}
	}

	return ig, nil
}

// IntegrationGridFromPoints wraps precomputed grid points. The points must
// be laid out in Grid index order and h must be their spacing. Only the
// ordering of the corner points is checked.
func IntegrationGridFromPoints(
	points []r3.Vec, h float64,
) (*IntegrationGrid, error) {
	if h <= 0 || math.IsNaN(h) {
		return nil, ErrMissingSpacing
	}

	n, ok := intCubeRoot(len(points))
	if !ok {
		return nil, ErrNotCube
	} else if n < 2 {
		return nil, ErrGridTooSmall
	}

	ig := &IntegrationGrid{Points: points, H: h, N: n}
	ig.Grid.Init(n)

	origin := points[ig.Idx(0, 0, 0)]
	if points[ig.Idx(n-1, 0, 0)].X <= origin.X ||
		points[ig.Idx(0, n-1, 0)].Y <= origin.Y ||
		points[ig.Idx(0, 0, n-1)].Z <= origin.Z {
		return nil, ErrGridLayout
	}
	return ig, nil
}

// intCubeRoot returns the cube root of x and whether x is a perfect cube.
func intCubeRoot(x int) (int, bool) {
	cr := int(math.Round(math.Cbrt(float64(x))))
	return cr, cr*cr*cr == x
}
