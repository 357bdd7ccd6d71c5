package data

import (
	"context"
	"runtime"
	"sync"
)

// parallelFor runs fn(i) for every i in [0, n) on at most workers goroutines.
// Each index is handed to exactly one worker, so fn may write to slot i of a
// preallocated result slice without locking. Remaining indices are dropped once ctx
// is cancelled and the context error is returned.
func parallelFor(ctx context.Context, n, workers int, fn func(i int)) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}

	var err error
dispatch:
	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return err
}
