package core

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolCreation(t *testing.T) {
	wp := NewWorkerPool(0)
	if wp.GetNumWorkers() != runtime.NumCPU() {
		t.Errorf("Expected %d workers (CPU count), got %d", runtime.NumCPU(), wp.GetNumWorkers())
	}

	wp2 := NewWorkerPool(4)
	if wp2.GetNumWorkers() != 4 {
		t.Errorf("Expected 4 workers, got %d", wp2.GetNumWorkers())
	}
}

func TestWorkerPoolJobExecution(t *testing.T) {
	wp := NewWorkerPool(2)
	wp.Start()
	defer wp.Stop()

	var counter int32
	for i := 0; i < 10; i++ {
		wp.Submit(func() {
			atomic.AddInt32(&counter, 1)
		})
	}
	wp.Wait()

	if counter != 10 {
		t.Errorf("Expected counter to be 10, got %d", counter)
	}
	if _, _, completed := wp.Stats(); completed != 10 {
		t.Errorf("Expected 10 completed jobs, got %d", completed)
	}
}

func TestWorkerPoolParallelFor(t *testing.T) {
	wp := NewWorkerPool(3)
	wp.Start()
	defer wp.Stop()

	tests := []struct {
		name       string
		start, end int
	}{
		{"small", 0, 10},
		{"uneven", 3, 1000},
		{"single", 5, 6},
		{"empty", 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visits := make([]int32, tt.end+1)
			wp.ParallelFor(tt.start, tt.end, func(i int) {
				atomic.AddInt32(&visits[i], 1)
			})
			for i := range visits {
				want := int32(0)
				if i >= tt.start && i < tt.end {
					want = 1
				}
				if visits[i] != want {
					t.Fatalf("index %d visited %d times, want %d", i, visits[i], want)
				}
			}
		})
	}
}

func TestWorkerPoolParallelForConcurrentCallers(t *testing.T) {
	wp := NewWorkerPool(4)
	wp.Start()
	defer wp.Stop()

	var wg sync.WaitGroup
	var total atomic.Int64
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wp.ParallelFor(0, 250, func(int) { total.Add(1) })
		}()
	}
	wg.Wait()

	if total.Load() != 2000 {
		t.Errorf("Expected 2000 iterations, got %d", total.Load())
	}
}

func TestWorkerPoolParallelForCancelled(t *testing.T) {
	wp := NewWorkerPool(2)
	wp.Start()
	defer wp.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int32
	done := make(chan struct{})
	go func() {
		wp.ParallelForWithContext(ctx, 0, 100, func(int) { ran.Add(1) })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ParallelForWithContext did not return after cancellation")
	}
	if ran.Load() != 0 {
		t.Errorf("Expected no iterations after cancellation, got %d", ran.Load())
	}
}

func TestWorkerPoolStopTwice(t *testing.T) {
	wp := NewWorkerPool(1)
	wp.Start()
	wp.Stop()
	wp.Stop()
}

func TestSerialRunner(t *testing.T) {
	var order []int
	Serial{}.ParallelFor(2, 6, func(i int) { order = append(order, i) })
	want := []int{2, 3, 4, 5}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestParallelMap(t *testing.T) {
	items := make([]int, 500)
	for i := range items {
		items[i] = i
	}
	got := ParallelMap(items, func(v int) int { return v * v })
	for i, v := range got {
		if v != i*i {
			t.Fatalf("got[%d] = %d, want %d", i, v, i*i)
		}
	}
	if ParallelMap[int, int](nil, func(v int) int { return v }) != nil {
		t.Error("Expected nil for empty input")
	}
}

func TestSafeCounter(t *testing.T) {
	counter := NewSafeCounter()

	counter.Increment()
	counter.Increment()
	if counter.Get() != 2 {
		t.Errorf("Expected counter to be 2, got %d", counter.Get())
	}
	counter.Decrement()
	if counter.Get() != 1 {
		t.Errorf("Expected counter to be 1, got %d", counter.Get())
	}

	counter.Set(0)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				counter.Increment()
			}
		}()
	}
	wg.Wait()

	if counter.Get() != 2000 {
		t.Errorf("Expected counter to be 2000, got %d", counter.Get())
	}
}
