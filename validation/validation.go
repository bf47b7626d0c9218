/*package validation compares the gravity predicted by a density field
against labels computed from a mascon model.

A density field only learns the shape of a body's mass distribution, not
its total mass, so predictions are compared after multiplication by a
scale constant c.
*/
package validation

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Epsilon is added to label magnitudes before dividing by them.
const Epsilon = 1e-8

var (
	ErrShape    = errors.New("validation: labels and predictions have different shapes")
	ErrZero     = errors.New("validation: predictions are all zero")
	ErrNoValues = errors.New("validation: no values to compare")
)

// Report summarizes the error of scaled predictions.
type Report struct {
	// C is the scale constant applied to the predictions.
	C float64
	// MeanRelative and MaxRelative are taken over targets. The relative
	// error of a target is sum_j |c p_j - l_j| / sum_j |l_j + Epsilon|.
	MeanRelative, MaxRelative float64
	// RMS is the root mean square of c p - l over all components.
	RMS float64
}

func checkShapes(labels, predicted mat.Matrix) (rows, cols int, err error) {
	lr, lc := labels.Dims()
	pr, pc := predicted.Dims()
	if lr != pr || lc != pc {
		return 0, 0, errors.Wrapf(ErrShape, "%d x %d labels, %d x %d predictions",
			lr, lc, pr, pc)
	} else if lr == 0 || lc == 0 {
		return 0, 0, ErrNoValues
	}
	return lr, lc, nil
}

// ScaleConstant returns the c which minimizes |labels - c predicted|^2.
func ScaleConstant(labels, predicted *mat.Dense) (float64, error) {
	rows, cols, err := checkShapes(labels, predicted)
	if err != nil {
		return 0, err
	}

	l := mat.DenseCopyOf(labels).RawMatrix().Data
	p := mat.DenseCopyOf(predicted).RawMatrix().Data
	l, p = l[:rows*cols], p[:rows*cols]

	pp := floats.Dot(p, p)
	if pp == 0 {
		return 0, ErrZero
	}
	return floats.Dot(l, p) / pp, nil
}

// Compare returns the error of c * predicted relative to labels.
func Compare(labels, predicted *mat.Dense, c float64) (*Report, error) {
	rows, cols, err := checkShapes(labels, predicted)
	if err != nil {
		return nil, err
	}

	rel := make([]float64, rows)
	diff := make([]float64, cols)
	sq := 0.0
	for i := 0; i < rows; i++ {
		l, p := labels.RawRowView(i), predicted.RawRowView(i)
		floats.ScaleTo(diff, c, p)
		floats.Sub(diff, l)

		num, den := 0.0, 0.0
		for j := range diff {
			num += math.Abs(diff[j])
			den += math.Abs(l[j] + Epsilon)
			sq += diff[j] * diff[j]
		}
		rel[i] = num / den
	}

	return &Report{
		C:            c,
		MeanRelative: stat.Mean(rel, nil),
		MaxRelative:  floats.Max(rel),
		RMS:          math.Sqrt(sq / float64(rows*cols)),
	}, nil
}

// Fit calls ScaleConstant and then Compare.
func Fit(labels, predicted *mat.Dense) (*Report, error) {
	c, err := ScaleConstant(labels, predicted)
	if err != nil {
		return nil, err
	}
	return Compare(labels, predicted, c)
}
