package sample

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/geodesynet/gravann/geom"
	"github.com/geodesynet/gravann/rand"
)

func TestCubical(t *testing.T) {
	table := []struct {
		n      int
		s0, s1 float64
	}{
		{10000, 1.0, 1.1},
		{5000, 1.0, 2.0},
		{2000, 0.5, 0.6},
	}

	for i, test := range table {
		p := DefaultParams()
		p.ScaleBounds = [2]float64{test.s0, test.s1}
		s, err := New(test.n, Cubical, p, rand.New(uint64(i)))
		require.NoError(t, err)

		points := s()
		assert.InDelta(t, test.n, len(points), 0.1*float64(test.n),
			"%d) point count", i+1)

		inner := geom.Cube(test.s0)
		for j, pt := range points {
			if !inner.Outside(pt) {
				t.Fatalf("%d) point %d = %v inside inner cube", i+1, j, pt)
			}
			for _, x := range []float64{pt.X, pt.Y, pt.Z} {
				if math.Abs(x) > test.s1 {
					t.Fatalf("%d) point %d = %v outside outer cube", i+1, j, pt)
				}
			}
		}
	}
}

func TestCubicalShortfall(t *testing.T) {
	table := []struct {
		n      int
		s0, s1 float64
		seeds  int
	}{
		{1, 0.5, 0.6, 200},
		{2, 0.5, 0.6, 200},
	}

	for i, test := range table {
		p := DefaultParams()
		p.ScaleBounds = [2]float64{test.s0, test.s1}
		inner := geom.Cube(test.s0)

		short := 0
		for seed := 0; seed < test.seeds; seed++ {
			s, err := New(test.n, Cubical, p, rand.New(uint64(seed)))
			require.NoError(t, err)

			points := s()
			require.True(t, len(points) <= test.n,
				"%d) seed %d gave %d points", i+1, seed, len(points))
			if len(points) < test.n {
				short++
			}
			for j, pt := range points {
				if !inner.Outside(pt) {
					t.Fatalf("%d) seed %d point %d = %v inside inner cube",
						i+1, seed, j, pt)
				}
			}
		}

		assert.True(t, short > 0, "%d) no seed came up short", i+1)
	}
}

func TestCubicalFreshBatches(t *testing.T) {
	s, err := New(100, Cubical, DefaultParams(), rand.New(3))
	require.NoError(t, err)
	assert.NotEqual(t, s(), s())

	a, err := New(100, Cubical, DefaultParams(), rand.New(3))
	require.NoError(t, err)
	b, err := New(100, Cubical, DefaultParams(), rand.New(3))
	require.NoError(t, err)
	assert.Equal(t, a(), b())
}

func TestSphericalSurface(t *testing.T) {
	for i, r := range []float64{DefaultRadius, 2.5, 10} {
		p := DefaultParams()
		p.RadiusBounds = [2]float64{r, r}
		s, err := New(1000, Spherical, p, rand.New(uint64(i)))
		require.NoError(t, err)

		points := s()
		require.Len(t, points, 1000)
		for j, pt := range points {
			if math.Abs(r3.Norm(pt)-r) > 1e-12*r {
				t.Fatalf("%d) |point %d| = %g, want %g", i+1, j, r3.Norm(pt), r)
			}
		}
	}
}

func TestSphericalShell(t *testing.T) {
	r0, r1, n := 1.2, 1.8, 20000
	p := DefaultParams()
	p.RadiusBounds = [2]float64{r0, r1}
	s, err := New(n, Spherical, p, rand.New(11))
	require.NoError(t, err)

	points := s()
	rMid := 1.7
	inside, upper := 0, 0
	for _, pt := range points {
		r := r3.Norm(pt)
		require.True(t, r >= math.Cbrt(r0/r1)*r1-1e-12 && r <= r1+1e-12)
		if r < rMid {
			inside++
		}
		if pt.Z > 0 {
			upper++
		}
	}

	// The radius follows r1 cbrt(k + (1-k)u) with the linear ratio k.
	k := r0 / r1
	u := (math.Pow(rMid/r1, 3) - k) / (1 - k)
	assert.InDelta(t, u, float64(inside)/float64(n), 0.02)
	assert.InDelta(t, 0.5, float64(upper)/float64(n), 0.02)
}

func TestSphericalGrid(t *testing.T) {
	table := []struct {
		n, count int
	}{
		{100, 100},
		{50, 49},
		{2, 1},
		{1000, 1024},
	}

	for i, test := range table {
		s, err := New(test.n, SphericalGrid, DefaultParams(), nil)
		require.NoError(t, err)

		points := s()
		require.Len(t, points, test.count, "%d) count", i+1)
		for j, pt := range points {
			assert.InDelta(t, DefaultRadius, r3.Norm(pt), 1e-12,
				"%d) norm of point %d", i+1, j)
			assert.True(t, math.Abs(pt.Z) < DefaultRadius,
				"%d) point %d on a pole", i+1, j)
		}

		again := s()
		assert.Same(t, &points[0], &again[0],
			"%d) grid recomputed between calls", i+1)
	}
}

func TestSphericalGridLayout(t *testing.T) {
	s, err := New(16, SphericalGrid, Params{GridRadius: 2}, nil)
	require.NoError(t, err)

	points := s()
	offset := math.Pi / 6
	first := r3.Vec{X: 2 * math.Sin(offset) * math.Cos(2*offset),
		Y: 2 * math.Sin(offset) * math.Sin(2*offset),
		Z: 2 * math.Cos(offset)}
	assert.InDelta(t, first.X, points[0].X, 1e-12)
	assert.InDelta(t, first.Y, points[0].Y, 1e-12)
	assert.InDelta(t, first.Z, points[0].Z, 1e-12)

	last := points[15]
	assert.InDelta(t, -2*math.Cos(offset), last.Z, 1e-12)
}

func TestNewErrors(t *testing.T) {
	table := []struct {
		n      int
		method string
		p      Params
		err    error
	}{
		{10, "cube", DefaultParams(), ErrUnknownMethod},
		{10, "", DefaultParams(), ErrUnknownMethod},
		{0, Cubical, DefaultParams(), ErrCount},
		{10, Cubical, Params{ScaleBounds: [2]float64{1, 1}}, ErrBounds},
		{10, Spherical, Params{RadiusBounds: [2]float64{2, 1}}, ErrBounds},
		{10, Spherical, Params{}, ErrBounds},
		{10, SphericalGrid, Params{}, ErrBounds},
	}

	for i, test := range table {
		s, err := New(test.n, test.method, test.p, rand.New(1))
		assert.Nil(t, s, "%d) sampler", i+1)
		assert.Equal(t, test.err, errors.Cause(err), "%d) error", i+1)
	}

	for i, method := range Methods() {
		_, err := New(10, method, DefaultParams(), rand.New(1))
		assert.NoError(t, err, "%d) method %s", i+1, method)
	}
}
