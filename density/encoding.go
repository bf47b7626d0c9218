package density

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/geodesynet/gravann/geom"
)

// ErrUnknownEncoding is returned by EncodingByName.
var ErrUnknownEncoding = errors.New("density: unknown encoding")

// Direct feeds Cartesian coordinates to the field unchanged.
type Direct struct{}

// Positional encodes each coordinate as (sin(pi x), cos(pi x)).
type Positional struct{}

// Directional encodes a point as its unit direction followed by its norm.
type Directional struct{}

// Spherical encodes a point as (r/sqrt(3), polar/pi, azimuth/(2 pi)), so the
// unit cube maps into [0, 1]^3.
type Spherical struct{}

func (Direct) Dim() int      { return 3 }
func (Positional) Dim() int  { return 6 }
func (Directional) Dim() int { return 4 }
func (Spherical) Dim() int   { return 3 }

func (Direct) Encode(xs []r3.Vec) *mat.Dense {
	m := mat.NewDense(len(xs), 3, nil)
	for i, x := range xs {
		m.SetRow(i, []float64{x.X, x.Y, x.Z})
	}
	return m
}

func (Positional) Encode(xs []r3.Vec) *mat.Dense {
	m := mat.NewDense(len(xs), 6, nil)
	for i, x := range xs {
		row := m.RawRowView(i)
		for j, c := range []float64{x.X, x.Y, x.Z} {
			row[2*j], row[2*j+1] = math.Sincos(math.Pi * c)
		}
	}
	return m
}

func (Directional) Encode(xs []r3.Vec) *mat.Dense {
	m := mat.NewDense(len(xs), 4, nil)
	for i, x := range xs {
		r := r3.Norm(x)
		m.SetRow(i, []float64{x.X / r, x.Y / r, x.Z / r, r})
	}
	return m
}

func (Spherical) Encode(xs []r3.Vec) *mat.Dense {
	m := mat.NewDense(len(xs), 3, nil)
	for i, x := range xs {
		r, polar, azimuth := geom.ToSpherical(x)
		m.SetRow(i, []float64{
			r / math.Sqrt(3), polar.Rad() / math.Pi, azimuth.Rad() / (2 * math.Pi),
		})
	}
	return m
}

// EncodingByName returns the encoding with the given case-insensitive
// name: one of direct, positional, directional or spherical.
func EncodingByName(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "direct":
		return Direct{}, nil
	case "positional":
		return Positional{}, nil
	case "directional":
		return Directional{}, nil
	case "spherical":
		return Spherical{}, nil
	}
	return nil, errors.Wrapf(ErrUnknownEncoding, "'%s'", name)
}
