package rand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedRepeatable(t *testing.T) {
	g1, g2 := New(3), New(3)
	for i := 0; i < 100; i++ {
		assert.Equal(t, g1.Uniform(0, 1), g2.Uniform(0, 1))
	}

	g1.Seed(7)
	x := g1.Uniform(-1, 1)
	g1.Seed(7)
	assert.Equal(t, x, g1.Uniform(-1, 1))
}

func TestUniformBounds(t *testing.T) {
	table := []struct {
		low, high float64
	}{
		{0, 1}, {-1, 1}, {1.0, 1.1}, {-5, -4},
	}

	gen := New(11)
	for i, test := range table {
		for j := 0; j < 1000; j++ {
			x := gen.Uniform(test.low, test.high)
			if x < test.low || x >= test.high {
				t.Errorf("%d) %g not in [%g, %g)", i, x, test.low, test.high)
				break
			}
		}
	}
}
