package scramble

import (
	"runtime"
	"sync"
)

// forEach calls fn(i) for i in [0, n) on at most workers goroutines.
// workers <= 0 means runtime.NumCPU(). Callers guarantee that distinct i
// write disjoint memory.
func forEach(n, workers int, fn func(i int)) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers == 1 || n <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{} // acquire
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }() // release
			fn(idx)
		}(i)
	}
	wg.Wait()
}
