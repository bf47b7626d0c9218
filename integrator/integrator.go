/*package integrator estimates the gravitational potential and acceleration
generated by a density field over [-1, 1]^3.

Every integrator is the same routine: choose sample points, evaluate the
density once at all of them, build the integrand for each target point and
reduce it. A Method chooses the first and last step (Monte Carlo,
low-discrepancy or trapezoid) and a Kernel chooses the integrand (potential
or acceleration).
*/
package integrator

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
	"k8s.io/klog"

	"github.com/geodesynet/gravann/density"
	"github.com/geodesynet/gravann/device"
	"github.com/geodesynet/gravann/geom"
	"github.com/geodesynet/gravann/lowdisc"
	"github.com/geodesynet/gravann/rand"
)

// DefaultNoise is the jitter added to low-discrepancy and grid points so
// that a network cannot memorize exact sample positions.
const DefaultNoise = 1e-5

var (
	ErrUnknownMethod = errors.New("integrator: unknown method")
	ErrNoTargets     = errors.New("integrator: no target points")
	ErrBudget        = errors.New("integrator: sample budget must be positive")
	ErrNoise         = errors.New("integrator: noise must be non-negative")
	ErrGridMethod    = errors.New("integrator: precomputed grids can only be used by the trapezoid method")
)

// Func is the signature shared by all integrators, so that a training loop
// can swap them freely. The result has one row per target and
// Kernel.Components() columns.
type Func func(
	targets []r3.Vec, field density.Field, enc density.Encoding, budget int,
) (*mat.Dense, error)

// Integrator is a configured Method/Kernel pair. It is not safe for
// concurrent use, since it owns a random generator and a cached grid.
type Integrator struct {
	Method Method
	Kernel Kernel
	// Noise is the width of the uniform jitter added to low-discrepancy
	// and grid points.
	Noise  float64
	Device device.Device

	gen       *rand.Generator
	grid      *geom.IntegrationGrid
	fixedGrid bool
}

// Option configures an Integrator.
type Option func(*Integrator) error

// WithNoise sets the jitter width.
func WithNoise(noise float64) Option {
	return func(in *Integrator) error {
		if noise < 0 {
			return ErrNoise
		}
		in.Noise = noise
		return nil
	}
}

// WithGenerator sets the random generator. A nil generator leaves the
// default, time-seeded one in place.
func WithGenerator(gen *rand.Generator) Option {
	return func(in *Integrator) error {
		if gen != nil {
			in.gen = gen
		}
		return nil
	}
}

// WithDevice sets the device that targets are split across.
func WithDevice(d device.Device) Option {
	return func(in *Integrator) error {
		in.Device = d
		return nil
	}
}

// WithGrid makes a trapezoid integrator use precomputed grid points with
// spacing h instead of building its own. The sample budget passed to
// Integrate is then ignored.
func WithGrid(points []r3.Vec, h float64) Option {
	return func(in *Integrator) error {
		grid, err := geom.IntegrationGridFromPoints(points, h)
		if err != nil {
			return err
		}
		in.grid, in.fixedGrid = grid, true
		return nil
	}
}

// New returns an Integrator. Low-discrepancy and trapezoid integrators
// start with DefaultNoise, Monte Carlo integrators with none.
func New(method Method, kernel Kernel, opts ...Option) (*Integrator, error) {
	if method < 0 || method >= EndMethod {
		return nil, ErrUnknownMethod
	}
	if kernel < 0 || kernel >= EndKernel {
		return nil, errors.Errorf("integrator: unknown kernel %d", kernel)
	}

	in := &Integrator{Method: method, Kernel: kernel, Device: device.CPU()}
	if method != MonteCarlo {
		in.Noise = DefaultNoise
	}

	for _, opt := range opts {
		if err := opt(in); err != nil {
			return nil, err
		}
	}

	if in.fixedGrid && method != Trapezoid {
		return nil, ErrGridMethod
	}
	if in.gen == nil {
		in.gen = rand.NewTimeSeed()
	}

	return in, nil
}

// Integrate estimates the integral for every target point using about
// budget samples.
func (in *Integrator) Integrate(
	targets []r3.Vec, field density.Field, enc density.Encoding, budget int,
) (*mat.Dense, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	} else if budget <= 0 && !in.fixedGrid {
		return nil, ErrBudget
	}
	if err := density.CheckCompatible(field, enc); err != nil {
		return nil, err
	}

	q, err := in.quadrature(budget)
	if err != nil {
		return nil, err
	}

	rhos := density.Evaluate(field, enc, q.points)

	comps := in.Kernel.Components()
	out := mat.NewDense(len(targets), comps, nil)
	in.Device.Run(len(targets), func(id, low, high, jump int) {
		buf := q.newScratch(comps)
		for i := low; i < high; i += jump {
			in.Kernel.fill(targets[i], q.points, rhos, buf.f)
			q.reduce(buf.f, comps, buf, out.RawRowView(i))
		}
	})

	klog.V(2).Infof(
		"integrator: %s %s over %d targets with %d samples",
		in.Method, in.Kernel, len(targets), len(q.points),
	)

	return out, nil
}

// Func returns in.Integrate as a Func.
func (in *Integrator) Func() Func { return in.Integrate }

// quadrature builds the sample points for one call.
func (in *Integrator) quadrature(budget int) (*quadrature, error) {
	switch in.Method {
	case MonteCarlo:
		pts := make([]r3.Vec, budget)
		for i := range pts {
			pts[i] = r3.Vec{
				X: in.gen.Uniform(-1, 1),
				Y: in.gen.Uniform(-1, 1),
				Z: in.gen.Uniform(-1, 1),
			}
		}
		return &quadrature{points: pts}, nil

	case LowDiscrepancy:
		pts, err := lowdisc.Prefix(budget)
		if err != nil {
			return nil, errors.Wrapf(err, "%d points requested", budget)
		}
		for i := range pts {
			p := &pts[i]
			p.X = 2*p.X - 1 + in.jitter()
			p.Y = 2*p.Y - 1 + in.jitter()
			p.Z = 2*p.Z - 1 + in.jitter()
		}
		return &quadrature{points: pts}, nil

	case Trapezoid:
		grid, err := in.integrationGrid(budget)
		if err != nil {
			return nil, err
		}
		return &quadrature{points: grid.Points, n: grid.N, h: grid.H}, nil
	}

	panic("Impossible.")
}

func (in *Integrator) jitter() float64 {
	if in.Noise == 0 {
		return 0
	}
	return in.gen.Uniform(0, in.Noise)
}

// integrationGrid returns the grid for this call. Grids without jitter
// are cached and reused while the resolution stays the same.
func (in *Integrator) integrationGrid(budget int) (*geom.IntegrationGrid, error) {
	if in.fixedGrid {
		return in.grid, nil
	}
	if in.Noise == 0 && in.grid != nil &&
		in.grid.N == geom.GridResolution(budget) {
		return in.grid, nil
	}

	grid, err := geom.NewIntegrationGrid(budget, in.Noise, in.gen)
	if err != nil {
		return nil, err
	}
	if in.Noise == 0 {
		in.grid = grid
	}
	return grid, nil
}
