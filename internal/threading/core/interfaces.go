package core

import (
	"context"
	"runtime"
	"sync"

	"raycaster/internal/mathutil"
)

// Runner executes fn once for every index in [start, end) before returning.
// WorkerPool and Serial both satisfy it.
type Runner interface {
	ParallelFor(start, end int, fn func(int))
}

// Serial runs every index on the calling goroutine.
type Serial struct{}

// ParallelFor runs fn for each index in order.
func (Serial) ParallelFor(start, end int, fn func(int)) {
	for i := start; i < end; i++ {
		fn(i)
	}
}

// CreateDefaultWorkerPool creates a worker pool with default CPU count
func CreateDefaultWorkerPool() *WorkerPool {
	pool := NewWorkerPool(0) // 0 means use CPU count
	pool.Start()
	return pool
}

// ParallelMap executes a function in parallel for each item and collects results
// in input order.
func ParallelMap[T any, R any](items []T, fn func(T) R) []R {
	return ParallelMapWithContext(context.Background(), items, fn)
}

// ParallelMapWithContext executes a function in parallel with cancellation support.
// Results are written to disjoint slots, so no locking is needed.
func ParallelMapWithContext[T any, R any](ctx context.Context, items []T, fn func(T) R) []R {
	if len(items) == 0 {
		return nil
	}

	numWorkers := mathutil.Min(runtime.NumCPU(), len(items))
	chunkSize := mathutil.Max(1, len(items)/numWorkers)

	results := make([]R, len(items))
	var wg sync.WaitGroup

	for i := 0; i < len(items); i += chunkSize {
		start := i
		end := mathutil.Min(i+chunkSize, len(items))

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for j := start; j < end; j++ {
				select {
				case <-ctx.Done():
					return
				default:
					results[j] = fn(items[j])
				}
			}
		}(start, end)
	}

	wg.Wait()
	return results
}
