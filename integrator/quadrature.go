package integrator

import (
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// volume is the volume of the integration domain, [-1, 1]^3.
const volume = 8.0

// Method selects how sample points are chosen and combined.
type Method int

const (
	// MonteCarlo draws fresh uniform points on every call.
	MonteCarlo Method = iota
	// LowDiscrepancy uses a jittered prefix of the shared Sobol table.
	LowDiscrepancy
	// Trapezoid uses the composite trapezoid rule on a regular grid.
	Trapezoid
	EndMethod
)

var methodNames = [EndMethod]string{"MonteCarlo", "LowDiscrepancy", "Trapezoid"}

func (m Method) String() string {
	if m < 0 || m >= EndMethod {
		return "Unknown"
	}
	return methodNames[m]
}

// MethodByName parses a case-insensitive method name. The short names mc,
// ld and trap are also accepted.
func MethodByName(name string) (Method, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "mc":
		return MonteCarlo, nil
	case "ld":
		return LowDiscrepancy, nil
	case "trap":
		return Trapezoid, nil
	}
	var m Method
	for m = 0; m < EndMethod; m++ {
		if strings.ToLower(m.String()) == name {
			return m, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownMethod, "'%s'", name)
}

// quadrature is a set of sample points together with the rule that turns
// integrand values at those points into an integral.
type quadrature struct {
	points []r3.Vec
	// n is the number of points per axis of a trapezoid grid, or 0 for a
	// Monte Carlo point set.
	n int
	h float64
}

// scratch holds the buffers one worker needs to reduce a single target.
type scratch struct {
	f, plane, line []float64
}

func (q *quadrature) newScratch(comps int) *scratch {
	buf := &scratch{f: make([]float64, len(q.points)*comps)}
	if q.n > 0 {
		buf.plane = make([]float64, q.n*q.n*comps)
		buf.line = make([]float64, q.n*comps)
	}
	return buf
}

// reduce turns integrand values f (comps values per sample) into the
// integral over [-1, 1]^3, negated, and writes it to out.
func (q *quadrature) reduce(f []float64, comps int, buf *scratch, out []float64) {
	if q.n == 0 {
		for c := range out {
			out[c] = 0
		}
		for i := 0; i < len(q.points); i++ {
			floats.Add(out, f[i*comps:(i+1)*comps])
		}
		floats.Scale(-volume/float64(len(q.points)), out)
		return
	}

	// x varies fastest, so reducing the innermost axis three times
	// integrates over x, then y, then z.
	plane := trapezoidAxis(f, q.n, comps, q.h, buf.plane)
	line := trapezoidAxis(plane, q.n, comps, q.h, buf.line)
	trapezoidAxis(line, q.n, comps, q.h, out)
	floats.Scale(-1, out)
}

// trapezoidAxis applies the composite trapezoid rule along the fastest
// varying axis of f, which holds rows of n points with comps values each.
// The n-1 cells of a row each contribute h/2 (left + right). One value per
// row and component is written to out, which is returned.
func trapezoidAxis(f []float64, n, comps int, h float64, out []float64) []float64 {
	rows := len(f) / (n * comps)
	out = out[:rows*comps]
	for r := 0; r < rows; r++ {
		row := f[r*n*comps : (r+1)*n*comps]
		for c := 0; c < comps; c++ {
			sum := 0.0
			for x := 0; x+1 < n; x++ {
				sum += h / 2 * (row[x*comps+c] + row[(x+1)*comps+c])
			}
			out[r*comps+c] = sum
		}
	}
	return out
}
