package core

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool manages a pool of worker goroutines for parallel column work
type WorkerPool struct {
	numWorkers int
	jobQueue   chan func()
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once

	active    SafeCounter
	completed SafeCounter
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		numWorkers: numWorkers,
		jobQueue:   make(chan func(), numWorkers*2),
		quit:       make(chan struct{}),
	}
}

// Start initializes and starts all worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		go wp.worker()
	}
}

// worker is the goroutine that processes jobs from the queue
func (wp *WorkerPool) worker() {
	for {
		select {
		case job := <-wp.jobQueue:
			job()
		case <-wp.quit:
			return
		}
	}
}

// Submit adds a job to the worker queue. Wait blocks until it has run.
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.jobQueue <- func() {
		defer wp.wg.Done()
		wp.track(job)
	}
}

// track runs job and updates the counters before the job is reported done.
func (wp *WorkerPool) track(job func()) {
	wp.active.Increment()
	defer func() {
		wp.active.Decrement()
		wp.completed.Increment()
	}()
	job()
}

// Wait waits for all jobs passed to Submit to complete
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Stop shuts down the worker pool. Calling it more than once is safe.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		close(wp.quit)
	})
}

// ParallelFor executes fn for every index in [start, end) and returns once all have run.
func (wp *WorkerPool) ParallelFor(start, end int, fn func(int)) {
	wp.ParallelForWithContext(context.Background(), start, end, fn)
}

// ParallelForWithContext executes a function in parallel for a range of values
// with cancellation support via context. Each call waits only for its own chunks,
// so independent callers may share the pool.
func (wp *WorkerPool) ParallelForWithContext(ctx context.Context, start, end int, fn func(int)) {
	if start >= end {
		return
	}

	totalWork := end - start
	chunkSize := max(1, totalWork/wp.numWorkers)

	var wg sync.WaitGroup
	for i := start; i < end; i += chunkSize {
		chunkStart := i
		chunkEnd := min(i+chunkSize, end)
		wg.Add(1)
		wp.jobQueue <- func() {
			defer wg.Done()
			wp.track(func() {
				for j := chunkStart; j < chunkEnd; j++ {
					select {
					case <-ctx.Done():
						return
					default:
						fn(j)
					}
				}
			})
		}
	}
	wg.Wait()
}

// Stats reports the workers currently running a job, the jobs waiting in the
// queue and the jobs finished since the pool was created.
func (wp *WorkerPool) Stats() (active, queued int32, completed uint64) {
	return int32(wp.active.Get()), int32(len(wp.jobQueue)), uint64(wp.completed.Get())
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// SafeCounter provides thread-safe counter operations using lock-free atomics.
type SafeCounter struct {
	value atomic.Int64
}

// NewSafeCounter creates a new thread-safe counter initialized to zero
func NewSafeCounter() *SafeCounter {
	return &SafeCounter{}
}

// Increment atomically increments the counter and returns the new value
func (c *SafeCounter) Increment() int64 {
	return c.value.Add(1)
}

// Decrement atomically decrements the counter and returns the new value
func (c *SafeCounter) Decrement() int64 {
	return c.value.Add(-1)
}

// Get atomically gets the counter value
func (c *SafeCounter) Get() int64 {
	return c.value.Load()
}

// Set atomically sets the counter value
func (c *SafeCounter) Set(value int64) {
	c.value.Store(value)
}
