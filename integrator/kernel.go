package integrator

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// MinDistance is the separation below which a sample point is excluded
// from a target's integral.
const MinDistance = 1e-12

// Kernel selects the quantity being integrated.
type Kernel int

const (
	// Potential integrates rho / |t - s|.
	Potential Kernel = iota
	// Acceleration integrates rho (t - s) / |t - s|^3.
	Acceleration
	EndKernel
)

var kernelNames = [EndKernel]string{"Potential", "Acceleration"}

func (k Kernel) String() string {
	if k < 0 || k >= EndKernel {
		return "Unknown"
	}
	return kernelNames[k]
}

// Components returns the number of values produced per target point.
func (k Kernel) Components() int {
	if k == Acceleration {
		return 3
	}
	return 1
}

// fill writes the integrand for target t at every sample point into f,
// which holds Components() values per sample.
func (k Kernel) fill(t r3.Vec, samples []r3.Vec, rhos, f []float64) {
	switch k {
	case Potential:
		for i, s := range samples {
			d := r3.Norm(r3.Sub(t, s))
			if d < MinDistance || rhos[i] == 0 {
				f[i] = 0
				continue
			}
			f[i] = rhos[i] / d
		}
	case Acceleration:
		for i, s := range samples {
			dr := r3.Sub(t, s)
			d := r3.Norm(dr)
			if d < MinDistance || rhos[i] == 0 {
				f[3*i], f[3*i+1], f[3*i+2] = 0, 0, 0
				continue
			}
			w := rhos[i] / (d * d * d)
			f[3*i], f[3*i+1], f[3*i+2] = w*dr.X, w*dr.Y, w*dr.Z
		}
	default:
		panic("Impossible.")
	}
}
