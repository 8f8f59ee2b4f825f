package core

import (
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
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		wp.Submit(func() {
			atomic.AddInt32(&counter, 1)
			wg.Done()
		})
	}
	wg.Wait()

	if counter != 10 {
		t.Errorf("Expected counter to be 10, got %d", counter)
	}
}

func TestStartTwiceKeepsWorkerCount(t *testing.T) {
	const workers = 2
	wp := NewWorkerPool(workers)
	wp.Start()
	wp.Start()
	defer wp.Stop()

	var running, peak int32
	release := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < workers*2; i++ {
		wg.Add(1)
		wp.Submit(func() {
			defer wg.Done()
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			<-release
			atomic.AddInt32(&running, -1)
		})
	}

	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&running) < workers && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if peak != workers {
		t.Errorf("Peak concurrent jobs = %d, want %d", peak, workers)
	}
}

func TestParallelRangeCoversEveryIndexOnce(t *testing.T) {
	tests := []struct {
		name       string
		workers    int
		start, end int
	}{
		{"fewer items than workers", 8, 0, 3},
		{"uneven split", 3, 0, 640},
		{"offset range", 4, 100, 117},
		{"empty range", 4, 5, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			wp := NewWorkerPool(tc.workers)
			wp.Start()
			defer wp.Stop()

			hits := make([]int32, tc.end)
			wp.ParallelRange(tc.start, tc.end, func(lo, hi int) {
				for i := lo; i < hi; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})

			for i := tc.start; i < tc.end; i++ {
				if hits[i] != 1 {
					t.Errorf("index %d visited %d times", i, hits[i])
				}
			}
		})
	}
}

func TestStopIsIdempotent(t *testing.T) {
	wp := CreateDefaultWorkerPool()
	wp.Stop()
	wp.Stop()
}
