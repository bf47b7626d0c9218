/*package device describes where batch computations run. A Device is passed
explicitly to the integrators and labelers instead of being read from the
environment.
*/
package device

import (
	"runtime"
	"sync"
)

// Device splits independent per-point work across Workers goroutines. The
// zero value behaves like CPU().
type Device struct {
	Workers int
}

// CPU returns the least capable device: a single worker.
func CPU() Device { return Device{Workers: 1} }

// AllCores returns a device with one worker per logical core.
func AllCores() Device { return Device{Workers: runtime.NumCPU()} }

// workers returns the number of goroutines used for n items.
func (d Device) workers(n int) int {
	w := d.Workers
	if w < 1 {
		w = 1
	}
	if w > n {
		w = n
	}
	return w
}

// Run calls work once per worker. Worker id handles the indices
// low, low+jump, ... below high. Run returns once every worker is done.
func (d Device) Run(n int, work func(id, low, high, jump int)) {
	workers := d.workers(n)
	if workers <= 1 {
		if n > 0 {
			work(0, 0, n, 1)
		}
		return
	}

	wg := &sync.WaitGroup{}
	wg.Add(workers)
	for id := 0; id < workers; id++ {
		go func(id int) {
			defer wg.Done()
			work(id, id, n, workers)
		}(id)
	}
	wg.Wait()
}

// Count returns the number of workers Run uses for n items.
func (d Device) Count(n int) int { return d.workers(n) }
