/*package rand provides the seeded random number generator shared by the
samplers and integrators. Every stochastic step in gravann draws from a
*Generator passed in by the caller so that runs can be made repeatable.
*/
package rand

import (
	"time"

	xrand "golang.org/x/exp/rand"
)

// Generator is a PCG-backed source of uniform deviates. It is not safe for
// concurrent use.
type Generator struct {
	rnd *xrand.Rand
}

// New returns a Generator with the given seed.
func New(seed uint64) *Generator {
	gen := &Generator{xrand.New(&xrand.PCGSource{})}
	gen.Seed(seed)
	return gen
}

// NewTimeSeed returns a Generator seeded from the wall clock.
func NewTimeSeed() *Generator {
	return New(uint64(time.Now().UnixNano()))
}

// Seed resets the generator.
func (gen *Generator) Seed(seed uint64) { gen.rnd.Seed(seed) }

// Uniform returns a deviate in [low, high).
func (gen *Generator) Uniform(low, high float64) float64 {
	return low + (high-low)*gen.rnd.Float64()
}
