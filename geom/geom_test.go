package geom

import (
	"math"
	"testing"

	"github.com/soniakeys/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/geodesynet/gravann/rand"
)

const testEps = 1e-12

func TestGridIdx(t *testing.T) {
	g := &Grid{}
	g.Init(5)
	for idx := 0; idx < g.Volume; idx++ {
		x, y, z := g.Coords(idx)
		if out := g.Idx(x, y, z); out != idx {
			t.Errorf("%d) Coords -> (%d %d %d) -> %d", idx, x, y, z, out)
		}
	}

	assert.Equal(t, 1+2*5+3*25, g.Idx(1, 2, 3))
}

func TestGridResolution(t *testing.T) {
	table := []struct {
		budget, n int
	}{
		{8, 2}, {27, 3}, {30, 3}, {10000, 22}, {300000, 67}, {64 * 64 * 64, 64},
	}

	for i, test := range table {
		if n := GridResolution(test.budget); n != test.n {
			t.Errorf("%d) GridResolution(%d) = %d, not %d",
				i, test.budget, n, test.n)
		}
	}
}

func TestIntegrationGridSpacing(t *testing.T) {
	for _, n := range []int{2, 3, 10, 33, 64} {
		ig, err := NewIntegrationGrid(n*n*n, 0, nil)
		require.NoError(t, err)

		assert.Equal(t, n, ig.N)
		assert.Len(t, ig.Points, n*n*n)
		assert.InDelta(t, 2/float64(n-1), ig.H, testEps, "n = %d", n)

		first, last := ig.Points[0], ig.Points[len(ig.Points)-1]
		assert.Equal(t, r3.Vec{X: -1, Y: -1, Z: -1}, first)
		assert.InDelta(t, 1, last.X, testEps)
		assert.InDelta(t, 1, last.Y, testEps)
		assert.InDelta(t, 1, last.Z, testEps)

		// x varies fastest.
		assert.InDelta(t, -1+ig.H, ig.Points[1].X, testEps)
		assert.Equal(t, -1.0, ig.Points[1].Y)
	}
}

func TestIntegrationGridNoise(t *testing.T) {
	plain, err := NewIntegrationGrid(1000, 0, nil)
	require.NoError(t, err)
	noisy, err := NewIntegrationGrid(1000, 1e-3, rand.New(1))
	require.NoError(t, err)

	for i := range plain.Points {
		d := r3.Sub(noisy.Points[i], plain.Points[i])
		for _, c := range []float64{d.X, d.Y, d.Z} {
			if c < 0 || c >= 1e-3 {
				t.Fatalf("%d) jitter %g outside [0, 1e-3)", i, c)
			}
		}
	}
}

func TestIntegrationGridErrors(t *testing.T) {
	_, err := NewIntegrationGrid(1, 0, nil)
	assert.Equal(t, ErrGridTooSmall, err)

	ig, _ := NewIntegrationGrid(27, 0, nil)

	_, err = IntegrationGridFromPoints(ig.Points, 0)
	assert.Equal(t, ErrMissingSpacing, err)
	_, err = IntegrationGridFromPoints(ig.Points, math.NaN())
	assert.Equal(t, ErrMissingSpacing, err)
	_, err = IntegrationGridFromPoints(ig.Points[:26], ig.H)
	assert.Equal(t, ErrNotCube, err)

	out, err := IntegrationGridFromPoints(ig.Points, ig.H)
	require.NoError(t, err)
	assert.Equal(t, 3, out.N)
	assert.Equal(t, 9, out.Area)
}

func TestIntegrationGridLayout(t *testing.T) {
	ig, err := NewIntegrationGrid(27, 0, nil)
	require.NoError(t, err)

	table := []struct {
		swap func(p r3.Vec) r3.Vec
	}{
		{func(p r3.Vec) r3.Vec { return r3.Vec{X: p.Y, Y: p.X, Z: p.Z} }},
		{func(p r3.Vec) r3.Vec { return r3.Vec{X: p.X, Y: p.Z, Z: p.Y} }},
		{func(p r3.Vec) r3.Vec { return r3.Vec{X: -p.X, Y: p.Y, Z: p.Z} }},
	}

	for i, test := range table {
		pts := make([]r3.Vec, len(ig.Points))
		for j, p := range ig.Points {
			pts[j] = test.swap(p)
		}
		_, err := IntegrationGridFromPoints(pts, ig.H)
		assert.Equal(t, ErrGridLayout, err, "%d) layout error", i+1)
	}
}

func TestIntegrationGridNilGenerator(t *testing.T) {
	ig, err := NewIntegrationGrid(125, 1e-3, nil)
	require.NoError(t, err)
	assert.Len(t, ig.Points, 125)

	d := r3.Sub(ig.Points[0], r3.Vec{X: -1, Y: -1, Z: -1})
	for _, c := range []float64{d.X, d.Y, d.Z} {
		assert.True(t, c >= 0 && c < 1e-3, "jitter %g", c)
	}
}

func TestLimitToDomain(t *testing.T) {
	pts := []r3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1.05, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 1},
		{X: 0, Y: -1.01, Z: 0.5},
		{X: 0.3, Y: 0.2, Z: -1.2},
	}
	out := LimitToDomain(pts, Cube(1))
	assert.Equal(t, []r3.Vec{
		{X: 1.05, Y: 0, Z: 0},
		{X: 0, Y: -1.01, Z: 0.5},
		{X: 0.3, Y: 0.2, Z: -1.2},
	}, out)
}

func TestSphericalRoundTrip(t *testing.T) {
	table := []struct {
		r              float64
		polar, azimuth float64
	}{
		{1, math.Pi / 2, 0},
		{2, math.Pi / 4, math.Pi / 3},
		{0.5, 3, 5},
		{1.73205, 0.1, 6.2},
	}

	for i, test := range table {
		p := FromSpherical(test.r, unit.Angle(test.polar), unit.Angle(test.azimuth))
		r, polar, azimuth := ToSpherical(p)
		if math.Abs(r-test.r) > 1e-9 ||
			math.Abs(polar.Rad()-test.polar) > 1e-9 ||
			math.Abs(azimuth.Rad()-test.azimuth) > 1e-9 {
			t.Errorf("%d) round trip gave (%g %g %g), expected (%g %g %g)",
				i, r, polar.Rad(), azimuth.Rad(),
				test.r, test.polar, test.azimuth)
		}
	}
}
