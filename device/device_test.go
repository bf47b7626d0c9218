package device

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunCoversEveryIndexOnce(t *testing.T) {
	table := []struct {
		workers, n, count int
	}{
		{0, 10, 1}, {1, 10, 1}, {4, 10, 4}, {16, 3, 3}, {3, 0, 0},
	}

	for i, test := range table {
		d := Device{Workers: test.workers}
		hits := make([]int, test.n)
		mu := sync.Mutex{}
		ids := map[int]bool{}

		d.Run(test.n, func(id, low, high, jump int) {
			mu.Lock()
			ids[id] = true
			mu.Unlock()
			for j := low; j < high; j += jump {
				hits[j]++
			}
		})

		for j, h := range hits {
			if h != 1 {
				t.Errorf("%d) index %d visited %d times", i, j, h)
			}
		}
		assert.Len(t, ids, test.count, "%d) worker count", i)
		if test.n > 0 {
			assert.Equal(t, test.count, d.Count(test.n))
		}
	}
}

func TestCPU(t *testing.T) {
	assert.Equal(t, 1, CPU().Workers)
	assert.True(t, AllCores().Workers >= 1)
}
