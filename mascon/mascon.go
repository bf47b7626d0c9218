/*package mascon represents a body as a set of point masses ("mascons") and
computes the exact gravity of that body by direct summation. These values
are the ground truth that density fields are trained and validated
against.

Units are non-dimensional: G = 1, coordinates lie in [-1, 1] and the total
mass is normally 1.
*/
package mascon

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/phil-mansfield/table"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/geodesynet/gravann/device"
)

var (
	ErrLength       = errors.New("mascon: points and masses have different lengths")
	ErrNegativeMass = errors.New("mascon: negative mass")
	ErrEmpty        = errors.New("mascon: model has no mascons")
)

// Model is a discrete mass distribution. Points[i] carries Masses[i].
type Model struct {
	Name   string
	Points []r3.Vec
	Masses []float64
}

// New returns a validated Model.
func New(name string, points []r3.Vec, masses []float64) (*Model, error) {
	m := &Model{Name: name, Points: points, Masses: masses}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks that the model is non-empty, that every point has a
// mass and that no mass is negative.
func (m *Model) Validate() error {
	if len(m.Points) != len(m.Masses) {
		return errors.Wrapf(ErrLength, "%d points, %d masses",
			len(m.Points), len(m.Masses))
	} else if len(m.Points) == 0 {
		return ErrEmpty
	}
	for i, mass := range m.Masses {
		if mass < 0 || math.IsNaN(mass) {
			return errors.Wrapf(ErrNegativeMass, "mascon %d has mass %g", i, mass)
		}
	}
	return nil
}

// Len returns the number of mascons.
func (m *Model) Len() int { return len(m.Points) }

// TotalMass returns the sum of all masses.
func (m *Model) TotalMass() float64 { return floats.Sum(m.Masses) }

// MaxMinDistance returns the largest nearest-neighbor distance of any
// mascon. It is a useful check on models built from gravitationally
// stable aggregates.
func (m *Model) MaxMinDistance(d device.Device) float64 {
	n := len(m.Points)
	if n < 2 {
		return 0
	}

	maxes := make([]float64, d.Count(n))
	d.Run(n, func(id, low, high, jump int) {
		for i := low; i < high; i += jump {
			nearest := math.Inf(1)
			for j := range m.Points {
				if j == i {
					continue
				}
				dist := r3.Norm(r3.Sub(m.Points[i], m.Points[j]))
				if dist < nearest {
					nearest = dist
				}
			}
			if nearest > maxes[id] {
				maxes[id] = nearest
			}
		}
	})

	return floats.Max(maxes)
}

// Read reads a model from a whitespace-separated text table with the
// columns x, y, z and mass. The model is named after the file.
func Read(fname string) (*Model, error) {
	cols, err := table.ReadTable(fname, []int{0, 1, 2, 3}, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "reading mascon file '%s'", fname)
	}

	xs, ys, zs, ms := cols[0], cols[1], cols[2], cols[3]
	points := make([]r3.Vec, len(xs))
	for i := range points {
		points[i] = r3.Vec{X: xs[i], Y: ys[i], Z: zs[i]}
	}

	name := strings.TrimSuffix(filepath.Base(fname), filepath.Ext(fname))
	m, err := New(name, points, ms)
	if err != nil {
		return nil, errors.Wrapf(err, "mascon file '%s'", fname)
	}
	return m, nil
}
