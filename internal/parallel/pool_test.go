package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	if pool.Workers() != 3 {
		t.Errorf("Workers() = %d, want 3", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -2} {
		pool := NewWorkerPool(n)
		if got, want := pool.Workers(), runtime.GOMAXPROCS(0); got != want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", n, got, want)
		}
		pool.Close()
	}
}

// =============================================================================
// ExecuteAll Tests
// =============================================================================

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	// One slot per task, as the dispatcher does with channels.
	results := make([]int, 3)
	tasks := make([]func(), len(results))
	for i := range tasks {
		tasks[i] = func() { results[i] = i * 10 }
	}
	pool.ExecuteAll(tasks)

	for i, v := range results {
		if v != i*10 {
			t.Errorf("results[%d] = %d, want %d", i, v, i*10)
		}
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestWorkerPool_ExecuteAll_MoreTasksThanWorkers(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var counter atomic.Int64
	tasks := make([]func(), 500)
	for i := range tasks {
		tasks[i] = func() { counter.Add(1) }
	}
	pool.ExecuteAll(tasks)

	if counter.Load() != 500 {
		t.Errorf("counter = %d, want 500", counter.Load())
	}
}

func TestWorkerPool_ExecuteAll_AfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	var counter atomic.Int64
	pool.ExecuteAll([]func(){
		func() { counter.Add(1) },
		func() { counter.Add(1) },
	})

	if counter.Load() != 2 {
		t.Errorf("counter = %d, want 2 (tasks run inline on a closed pool)", counter.Load())
	}
}

func TestWorkerPool_SlowTaskDoesNotBlockOthers(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var fast atomic.Int64
	release := make(chan struct{})
	tasks := []func(){
		func() { <-release },
		func() { fast.Add(1) },
		func() { fast.Add(1) },
		func() { fast.Add(1) },
	}

	done := make(chan struct{})
	go func() {
		pool.ExecuteAll(tasks)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for fast.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if fast.Load() != 3 {
		t.Errorf("fast tasks done = %d, want 3 while the slow task is blocked", fast.Load())
	}

	close(release)
	<-done
}

func TestWorkerPool_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tasks := make([]func(), 3)
			for i := range tasks {
				tasks[i] = func() { counter.Add(1) }
			}
			pool.ExecuteAll(tasks)
		}()
	}
	wg.Wait()

	if counter.Load() != 24 {
		t.Errorf("counter = %d, want 24", counter.Load())
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("pool should not be running after Close")
	}
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	runtime.GC()
	time.Sleep(20 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for range 5 {
		pool := NewWorkerPool(4)
		pool.ExecuteAll([]func(){func() {}, func() {}, func() {}})
		pool.Close()
	}

	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	if final := runtime.NumGoroutine(); final > baseline+2 {
		t.Errorf("goroutine count: baseline=%d, final=%d (leak detected)", baseline, final)
	}
}

// =============================================================================
// For Tests
// =============================================================================

func TestFor(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		workers int
	}{
		{"sequential", 3, 1},
		{"parallel", 3, 3},
		{"capped", 3, 8},
		{"default workers", 5, 0},
		{"single task", 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := make([]int32, tt.n)
			For(tt.n, tt.workers, func(i int) {
				atomic.AddInt32(&hits[i], 1)
			})
			for i, h := range hits {
				if h != 1 {
					t.Errorf("index %d called %d times, want 1", i, h)
				}
			}
		})
	}
}

func TestFor_SequentialOrder(t *testing.T) {
	var order []int
	For(4, 1, func(i int) { order = append(order, i) })
	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v, want ascending", order)
		}
	}
}

func TestFor_Empty(t *testing.T) {
	For(0, 4, func(int) { t.Error("fn called for n = 0") })
	For(-1, 4, func(int) { t.Error("fn called for n < 0") })
}

func BenchmarkFor(b *testing.B) {
	buf := make([]float64, 3)
	for b.Loop() {
		For(3, 3, func(i int) {
			for j := range 1000 {
				buf[i] += float64(j)
			}
		})
	}
}
