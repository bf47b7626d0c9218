package lowdisc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestGenerateFirstPoints(t *testing.T) {
	table := []r3.Vec{
		{X: 0.5, Y: 0.5, Z: 0.5},
		{X: 0.75, Y: 0.25, Z: 0.25},
		{X: 0.25, Y: 0.75, Z: 0.75},
		{X: 0.375, Y: 0.375, Z: 0.625},
	}

	pts := Generate(len(table))
	for i := range table {
		if pts[i] != table[i] {
			t.Errorf("%d) Expected %v, got %v", i, table[i], pts[i])
		}
	}
}

func TestGenerateUnitCube(t *testing.T) {
	pts := Generate(1 << 12)
	seen := map[r3.Vec]bool{}
	for i, p := range pts {
		for _, c := range []float64{p.X, p.Y, p.Z} {
			if c < 0 || c >= 1 {
				t.Fatalf("%d) %v not in [0, 1)^3", i, p)
			}
		}
		if seen[p] {
			t.Fatalf("%d) %v repeated", i, p)
		}
		seen[p] = true
	}
}

func TestGenerateStratified(t *testing.T) {
	// The first 2^k points of a Sobol sequence (with the origin) put
	// exactly one point in every cell of width 2^-k along each axis.
	const k = 6
	pts := append([]r3.Vec{{}}, Generate(1<<k-1)...)
	var counts [3][1 << k]int
	for _, p := range pts {
		counts[0][int(p.X*(1<<k))]++
		counts[1][int(p.Y*(1<<k))]++
		counts[2][int(p.Z*(1<<k))]++
	}
	for d := range counts {
		for cell, n := range counts[d] {
			if n != 1 {
				t.Errorf("axis %d cell %d holds %d points", d, cell, n)
			}
		}
	}
}

func TestTableIdempotent(t *testing.T) {
	t1 := Table()
	t2 := Table()
	require.Len(t, t1, TableSize)
	assert.True(t, &t1[0] == &t2[0], "Table regenerated")
	assert.Equal(t, Generate(TableSize), t1)
}

func TestPrefix(t *testing.T) {
	pts, err := Prefix(1000)
	require.NoError(t, err)
	assert.Equal(t, Table()[:1000], pts)

	pts[0] = r3.Vec{X: -7}
	assert.NotEqual(t, pts[0], Table()[0], "Prefix shares storage with Table")

	_, err = Prefix(TableSize)
	assert.NoError(t, err)
	_, err = Prefix(TableSize + 1)
	assert.Equal(t, ErrTableExhausted, err)
}

func TestNegativeCount(t *testing.T) {
	table := []int{-1, -TableSize}
	for i, n := range table {
		pts, err := Prefix(n)
		assert.Nil(t, pts, "%d) Prefix(%d) points", i+1, n)
		assert.Equal(t, ErrNegativeCount, err, "%d) Prefix(%d) error", i+1, n)
		assert.Empty(t, Generate(n), "%d) Generate(%d)", i+1, n)
	}

	pts, err := Prefix(0)
	require.NoError(t, err)
	assert.Empty(t, pts)
}
