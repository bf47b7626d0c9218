/*package density evaluates neural (or analytic) density fields over batches
of sample points.

A Field never sees raw coordinates: points are first passed through an
Encoding and the encoded batch is handed to the Field as one matrix with a
row per point.
*/
package density

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
	"k8s.io/klog"
)

// ErrIncompatible is returned when an Encoding's output width does not
// match a Field's input width.
var ErrIncompatible = errors.New("density: encoding is incompatible with the field")

// Field maps encoded points to non-negative densities.
type Field interface {
	// InputDim is the number of columns Density expects.
	InputDim() int
	// Density returns one value per row of in.
	Density(in *mat.Dense) []float64
}

// Encoding maps raw coordinates to a Field's input representation.
type Encoding interface {
	// Dim is the number of columns written per point.
	Dim() int
	// Encode returns a len(xs) x Dim() matrix.
	Encode(xs []r3.Vec) *mat.Dense
}

// FieldFunc adapts a per-row function to the Field interface.
type FieldFunc struct {
	Dim int
	F   func(row []float64) float64
}

func (f FieldFunc) InputDim() int { return f.Dim }

func (f FieldFunc) Density(in *mat.Dense) []float64 {
	rows, _ := in.Dims()
	out := make([]float64, rows)
	for i := range out {
		out[i] = f.F(in.RawRowView(i))
	}
	return out
}

// CheckCompatible returns an error if enc does not produce the input width
// that field expects.
func CheckCompatible(field Field, enc Encoding) error {
	if field.InputDim() != enc.Dim() {
		return errors.Wrapf(
			ErrIncompatible, "field takes %d inputs, encoding gives %d",
			field.InputDim(), enc.Dim(),
		)
	}
	return nil
}

// Evaluate encodes xs and returns the density of field at each point.
// Non-finite encoded values are replaced by zero, with a warning, so that
// they cannot propagate into an integral.
func Evaluate(field Field, enc Encoding, xs []r3.Vec) []float64 {
	if len(xs) == 0 {
		return nil
	}

	in := enc.Encode(xs)
	if n := sanitize(in); n > 0 {
		klog.Warningf(
			"density: encoding generated %d non-finite values; "+
				"setting them to 0", n,
		)
	}

	return field.Density(in)
}

// sanitize zeroes the NaN and Inf entries of m and returns their count.
func sanitize(m *mat.Dense) int {
	rows, _ := m.Dims()
	n := 0
	for i := 0; i < rows; i++ {
		row := m.RawRowView(i)
		for j, x := range row {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				row[j] = 0
				n++
			}
		}
	}
	return n
}
