package core

import (
	"runtime"
	"sync"

	"taproom/internal/mathutil"
)

// WorkerPool manages a fixed set of goroutines that run submitted jobs
type WorkerPool struct {
	numWorkers int
	jobQueue   chan func()
	quit       chan struct{}
	startOnce  sync.Once
	stopOnce   sync.Once
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// Zero or a negative count means one worker per CPU.
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

// CreateDefaultWorkerPool creates and starts a pool sized to the CPU count
func CreateDefaultWorkerPool() *WorkerPool {
	pool := NewWorkerPool(0)
	pool.Start()
	return pool
}

// Start launches the worker goroutines. Later calls do nothing.
func (wp *WorkerPool) Start() {
	wp.startOnce.Do(func() {
		for i := 0; i < wp.numWorkers; i++ {
			go wp.worker()
		}
	})
}

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

// Submit queues a job. It blocks while the queue is full.
func (wp *WorkerPool) Submit(job func()) {
	wp.jobQueue <- job
}

// Stop shuts the workers down. Jobs still queued are dropped.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() { close(wp.quit) })
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// ParallelRange splits [start, end) into contiguous chunks, one or more per
// worker, and calls fn once per chunk. Chunks never overlap, so callers may
// write to disjoint parts of shared buffers without locking.
func (wp *WorkerPool) ParallelRange(start, end int, fn func(lo, hi int)) {
	if start >= end {
		return
	}

	total := end - start
	chunkSize := mathutil.IntMax(1, (total+wp.numWorkers-1)/wp.numWorkers)

	var wg sync.WaitGroup
	for lo := start; lo < end; lo += chunkSize {
		hi := mathutil.IntMin(lo+chunkSize, end)
		wg.Add(1)
		chunkLo := lo
		wp.Submit(func() {
			defer wg.Done()
			fn(chunkLo, hi)
		})
	}
	wg.Wait()
}
