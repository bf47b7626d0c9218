package mascon

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/geodesynet/gravann/device"
)

// MinDistance is the separation below which a mascon is left out of a
// target's sum.
const MinDistance = 1e-12

// LabelFunc computes ground truth values at the target points. The result
// has one row per target, or is nil if there are no targets.
type LabelFunc func(targets []r3.Vec, m *Model) *mat.Dense

// Labeler computes labels by direct O(targets x mascons) summation on a
// Device.
type Labeler struct {
	Device device.Device
}

// Potential returns -sum m_k / |p_k - t| for every target t.
func (l Labeler) Potential(targets []r3.Vec, m *Model) *mat.Dense {
	if len(targets) == 0 {
		return nil
	}
	out := mat.NewDense(len(targets), 1, nil)
	l.Device.Run(len(targets), func(id, low, high, jump int) {
		for i := low; i < high; i += jump {
			t, sum := targets[i], 0.0
			for k, p := range m.Points {
				d := r3.Norm(r3.Sub(p, t))
				if d < MinDistance {
					continue
				}
				sum += m.Masses[k] / d
			}
			out.Set(i, 0, -sum)
		}
	})
	return out
}

// Acceleration returns sum m_k (p_k - t) / |p_k - t|^3 for every target t,
// which points towards the masses.
func (l Labeler) Acceleration(targets []r3.Vec, m *Model) *mat.Dense {
	if len(targets) == 0 {
		return nil
	}
	out := mat.NewDense(len(targets), 3, nil)
	l.Device.Run(len(targets), func(id, low, high, jump int) {
		for i := low; i < high; i += jump {
			t, sum := targets[i], r3.Vec{}
			for k, p := range m.Points {
				dr := r3.Sub(p, t)
				d := r3.Norm(dr)
				if d < MinDistance {
					continue
				}
				sum = r3.Add(sum, r3.Scale(m.Masses[k]/(d*d*d), dr))
			}
			out.SetRow(i, []float64{sum.X, sum.Y, sum.Z})
		}
	})
	return out
}

// Potential is Labeler.Potential on the CPU device.
func Potential(targets []r3.Vec, m *Model) *mat.Dense {
	return Labeler{device.CPU()}.Potential(targets, m)
}

// Acceleration is Labeler.Acceleration on the CPU device.
func Acceleration(targets []r3.Vec, m *Model) *mat.Dense {
	return Labeler{device.CPU()}.Acceleration(targets, m)
}

var (
	_ LabelFunc = Potential
	_ LabelFunc = Acceleration
)
