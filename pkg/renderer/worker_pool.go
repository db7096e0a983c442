package renderer

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// sharedQueueSize bounds the runner tasks waiting for a free worker.
// Submitting blocks while the queue is full.
const sharedQueueSize = 256

// The automation pool never retires its goroutines and its Stop does not
// reliably reach every worker, so one pool is created per process and shared
// by every WorkerPool.
var (
	sharedPoolOnce sync.Once
	sharedPool     worker.DynamicWorkerPool
	sharedWorkers  int
)

func getSharedPool() (worker.DynamicWorkerPool, int) {
	sharedPoolOnce.Do(func() {
		sharedWorkers = runtime.NumCPU()
		sharedPool = worker.NewDynamicWorkerPool(sharedWorkers, sharedQueueSize, 0)
	})
	return sharedPool, sharedWorkers
}

// WorkerPool runs batches of tile tasks with bounded parallelism on the
// shared worker goroutines. It owns no goroutines itself.
type WorkerPool struct {
	pool       worker.DynamicWorkerPool
	numWorkers int
}

// NewWorkerPool creates a worker pool running at most numWorkers tasks at
// once (0 = CPU count). Parallelism is capped at the shared pool size.
func NewWorkerPool(numWorkers int) *WorkerPool {
	pool, size := getSharedPool()
	if numWorkers <= 0 || numWorkers > size {
		numWorkers = size
	}

	return &WorkerPool{
		pool:       pool,
		numWorkers: numWorkers,
	}
}

// Run executes every task and blocks until all of them have finished.
// At most numWorkers runners are submitted; each pulls tasks until none remain.
func (wp *WorkerPool) Run(tasks []func()) {
	runners := min(wp.numWorkers, len(tasks))

	var next atomic.Int64
	var wg sync.WaitGroup
	for id := 0; id < runners; id++ {
		wg.Add(1)
		wp.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				for {
					i := int(next.Add(1)) - 1
					if i >= len(tasks) {
						return nil, nil
					}
					tasks[i]()
				}
			},
		})
	}
	wg.Wait()
}

// GetNumWorkers returns the number of tasks that may run at once
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}
