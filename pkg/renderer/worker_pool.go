package renderer

import (
	"runtime"
	"sync"

	"github.com/df07/go-pathtracer/pkg/core"
)

// fallbackWorkers is used when the CPU count cannot be determined
const fallbackWorkers = 4

// WorkerPool runs one job per worker and waits for all of them (fork-join)
type WorkerPool struct {
	workers    []*Worker
	numWorkers int
}

// Worker owns a private sampler so no random state is shared between goroutines
type Worker struct {
	ID      int
	Sampler core.Sampler
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// numWorkers <= 0 means one worker per CPU. Worker i is seeded with seed+i.
func NewWorkerPool(numWorkers int, seed int64) *WorkerPool {
	numWorkers = ResolveNumWorkers(numWorkers)

	wp := &WorkerPool{numWorkers: numWorkers}
	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:      i,
			Sampler: core.NewSeededSampler(seed + int64(i)),
		})
	}

	return wp
}

// ResolveNumWorkers returns the worker count to use for a requested count
func ResolveNumWorkers(requested int) int {
	if requested > 0 {
		return requested
	}
	if n := runtime.NumCPU(); n >= 1 {
		return n
	}
	return fallbackWorkers
}

// Run starts job on every worker and blocks until all of them return
func (wp *WorkerPool) Run(job func(w *Worker)) {
	var wg sync.WaitGroup
	for _, worker := range wp.workers {
		wg.Add(1)
		go func(w *Worker) {
			defer wg.Done()
			job(w)
		}(worker)
	}
	wg.Wait()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}
