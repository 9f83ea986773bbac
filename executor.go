package tiler

import (
	"github.com/gogpu/tiler/internal/parallel"
)

// Executor abstracts how path tiling tasks are scheduled. Execute runs
// task(0) through task(n-1), possibly concurrently, and returns only
// when all calls have completed. Tasks must not assume any ordering.
type Executor interface {
	Execute(n int, task func(index int))
}

// FlattenIntoVector runs produce(0..n-1) on the executor and
// concatenates the returned slices in index order. The deterministic
// ordering is a contract: alpha tile primitives must stay ordered by
// source path index so the back-to-front Z-cull is stable regardless
// of task scheduling.
func FlattenIntoVector[T any](executor Executor, n int, produce func(index int) []T) []T {
	results := make([][]T, n)
	executor.Execute(n, func(index int) {
		results[index] = produce(index)
	})

	total := 0
	for _, result := range results {
		total += len(result)
	}
	flat := make([]T, 0, total)
	for _, result := range results {
		flat = append(flat, result...)
	}
	return flat
}

// SequentialExecutor runs tasks one after another on the calling
// goroutine. Useful for tests and single-core fallbacks.
type SequentialExecutor struct{}

// Execute runs each task in index order.
func (SequentialExecutor) Execute(n int, task func(index int)) {
	for i := range n {
		task(i)
	}
}

// PoolExecutor schedules tasks on a work-stealing goroutine pool.
// Create one per process and reuse it across builds; Close releases
// the workers.
type PoolExecutor struct {
	pool *parallel.WorkerPool
}

// NewPoolExecutor creates an executor with the given number of
// workers. Zero or negative means GOMAXPROCS.
func NewPoolExecutor(workers int) *PoolExecutor {
	return &PoolExecutor{pool: parallel.NewWorkerPool(workers)}
}

// Execute fans the tasks across the pool and waits for completion.
func (e *PoolExecutor) Execute(n int, task func(index int)) {
	e.pool.ExecuteN(n, task)
}

// Workers returns the number of pool workers.
func (e *PoolExecutor) Workers() int {
	return e.pool.Workers()
}

// Close shuts the pool down, waiting for in-flight tasks.
func (e *PoolExecutor) Close() {
	e.pool.Close()
}
