/*package lowdisc holds the process-wide Sobol table used by the
low-discrepancy integrators.

The table is generated on first access and never modified afterwards, so it
can be shared freely between goroutines.
*/
package lowdisc

import (
	"errors"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// TableSize is the number of points held by the shared table.
const TableSize = 200000

// ErrTableExhausted is returned when more points are requested than the
// shared table holds.
var ErrTableExhausted = errors.New("lowdisc: requested more points than the Sobol table holds")

// ErrNegativeCount is returned when a negative number of points is
// requested.
var ErrNegativeCount = errors.New("lowdisc: point count must be non-negative")

const bits = 32

// dimension describes the primitive polynomial and initial direction
// numbers of one Sobol coordinate. degree 0 is the van der Corput sequence.
type dimension struct {
	degree int
	coeffs uint32
	m      []uint32
}

var dimensions = [3]dimension{
	{0, 0, nil},
	{1, 0, []uint32{1}},
	{2, 1, []uint32{1, 3}},
}

var (
	tableOnce sync.Once
	table     []r3.Vec
)

// Table returns the shared table of TableSize points in [0, 1)^3. The
// returned slice must not be modified.
func Table() []r3.Vec {
	tableOnce.Do(func() { table = Generate(TableSize) })
	return table
}

// Prefix returns a copy of the first n points of the shared table.
func Prefix(n int) ([]r3.Vec, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	} else if n > TableSize {
		return nil, ErrTableExhausted
	}
	out := make([]r3.Vec, n)
	copy(out, Table())
	return out, nil
}

// Generate computes the first n points of the 3D Sobol sequence, skipping
// the initial point at the origin. A negative n gives an empty slice.
func Generate(n int) []r3.Vec {
	if n < 0 {
		n = 0
	}
	var v [3][bits + 1]uint32
	for d := range dimensions {
		directionNumbers(&dimensions[d], &v[d])
	}

	out := make([]r3.Vec, n)
	var x [3]uint32
	const scale = 1.0 / (1 << bits)

	for i := 0; i < n; i++ {
		c := lowestZeroBit(uint32(i))
		for d := range x {
			x[d] ^= v[d][c]
		}
		out[i] = r3.Vec{
			X: float64(x[0]) * scale,
			Y: float64(x[1]) * scale,
			Z: float64(x[2]) * scale,
		}
	}

	return out
}

// directionNumbers fills v[1:] with the scaled direction numbers of dim.
func directionNumbers(dim *dimension, v *[bits + 1]uint32) {
	if dim.degree == 0 {
		for k := 1; k <= bits; k++ {
			v[k] = 1 << uint(bits-k)
		}
		return
	}

	s := dim.degree
	for k := 1; k <= s; k++ {
		v[k] = dim.m[k-1] << uint(bits-k)
	}
	for k := s + 1; k <= bits; k++ {
		v[k] = v[k-s] ^ (v[k-s] >> uint(s))
		for j := 1; j < s; j++ {
			if (dim.coeffs>>uint(s-1-j))&1 == 1 {
				v[k] ^= v[k-j]
			}
		}
	}
}

// lowestZeroBit returns the 1-based position of the lowest zero bit of i.
func lowestZeroBit(i uint32) int {
	c := 1
	for i&1 == 1 {
		i >>= 1
		c++
	}
	return c
}
