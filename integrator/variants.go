package integrator

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/geodesynet/gravann/density"
	"github.com/geodesynet/gravann/rand"
)

// PotentialMC is the plain Monte Carlo potential: n fresh uniform points in
// [-1, 1]^3, -8/n sum rho/|t - s|. The result is len(targets) x 1.
func PotentialMC(
	targets []r3.Vec, field density.Field, enc density.Encoding,
	n int, gen *rand.Generator,
) (*mat.Dense, error) {
	return run(MonteCarlo, Potential, targets, field, enc, n,
		WithGenerator(gen))
}

// AccelerationMC is the plain Monte Carlo acceleration.
func AccelerationMC(
	targets []r3.Vec, field density.Field, enc density.Encoding,
	n int, gen *rand.Generator,
) (*mat.Dense, error) {
	return run(MonteCarlo, Acceleration, targets, field, enc, n,
		WithGenerator(gen))
}

// PotentialLD is the low-discrepancy Monte Carlo potential. n may not
// exceed lowdisc.TableSize.
func PotentialLD(
	targets []r3.Vec, field density.Field, enc density.Encoding,
	n int, noise float64, gen *rand.Generator,
) (*mat.Dense, error) {
	return run(LowDiscrepancy, Potential, targets, field, enc, n,
		WithNoise(noise), WithGenerator(gen))
}

// AccelerationLD is the low-discrepancy Monte Carlo acceleration. n may
// not exceed lowdisc.TableSize.
func AccelerationLD(
	targets []r3.Vec, field density.Field, enc density.Encoding,
	n int, noise float64, gen *rand.Generator,
) (*mat.Dense, error) {
	return run(LowDiscrepancy, Acceleration, targets, field, enc, n,
		WithNoise(noise), WithGenerator(gen))
}

// PotentialTrapezoid integrates the potential with the trapezoid rule on a
// grid of about n points. Pass WithGrid to reuse a precomputed grid.
func PotentialTrapezoid(
	targets []r3.Vec, field density.Field, enc density.Encoding,
	n int, noise float64, gen *rand.Generator, opts ...Option,
) (*mat.Dense, error) {
	opts = append([]Option{WithNoise(noise), WithGenerator(gen)}, opts...)
	return run(Trapezoid, Potential, targets, field, enc, n, opts...)
}

// AccelerationTrapezoid integrates the acceleration with the trapezoid
// rule on a grid of about n points. Pass WithGrid to reuse a precomputed
// grid.
func AccelerationTrapezoid(
	targets []r3.Vec, field density.Field, enc density.Encoding,
	n int, noise float64, gen *rand.Generator, opts ...Option,
) (*mat.Dense, error) {
	opts = append([]Option{WithNoise(noise), WithGenerator(gen)}, opts...)
	return run(Trapezoid, Acceleration, targets, field, enc, n, opts...)
}

func run(
	method Method, kernel Kernel,
	targets []r3.Vec, field density.Field, enc density.Encoding, n int,
	opts ...Option,
) (*mat.Dense, error) {
	in, err := New(method, kernel, opts...)
	if err != nil {
		return nil, err
	}
	return in.Integrate(targets, field, enc, n)
}
