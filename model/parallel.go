package model

import "sync"

// parallelFor runs body for every index in [0, n), partitioning
// the index range over the predictor's workers. Each worker owns
// a disjoint contiguous range, so bodies that write only to their
// own index need no locking.
func (this *Predictor) parallelFor(n int, body func(e int)) {
	workers := this.workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for e := 0; e < n; e += 1 {
			body(e)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w += 1 {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for e := lo; e < hi; e += 1 {
				body(e)
			}
		}(lo, hi)
	}
	wg.Wait()
}
