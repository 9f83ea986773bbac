package tiler

import (
	"testing"
	"time"
)

func TestFlattenIntoVectorOrder(t *testing.T) {
	executors := []struct {
		name     string
		executor Executor
		close    func()
	}{
		{"sequential", SequentialExecutor{}, func() {}},
	}
	pool := NewPoolExecutor(4)
	executors = append(executors, struct {
		name     string
		executor Executor
		close    func()
	}{"pool", pool, pool.Close})

	for _, tt := range executors {
		t.Run(tt.name, func(t *testing.T) {
			defer tt.close()

			// Variable-length results with skewed task durations: the
			// concatenation must still follow index order.
			got := FlattenIntoVector(tt.executor, 20, func(i int) []int {
				if i%3 == 0 {
					time.Sleep(time.Millisecond)
				}
				out := make([]int, i%4)
				for j := range out {
					out[j] = i*10 + j
				}
				return out
			})

			var want []int
			for i := range 20 {
				for j := range i % 4 {
					want = append(want, i*10+j)
				}
			}
			if len(got) != len(want) {
				t.Fatalf("len = %d, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("element %d = %d, want %d", i, got[i], want[i])
				}
			}
		})
	}
}

func TestFlattenIntoVectorEmpty(t *testing.T) {
	got := FlattenIntoVector(SequentialExecutor{}, 0, func(int) []int {
		t.Fatal("producer called for n=0")
		return nil
	})
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestSequentialExecutorRunsAll(t *testing.T) {
	var ran [8]bool
	SequentialExecutor{}.Execute(8, func(i int) { ran[i] = true })
	for i, ok := range ran {
		if !ok {
			t.Errorf("task %d not run", i)
		}
	}
}

func TestPoolExecutorWorkers(t *testing.T) {
	e := NewPoolExecutor(3)
	defer e.Close()
	if got := e.Workers(); got != 3 {
		t.Errorf("Workers = %d, want 3", got)
	}
}
