// Package parallel runs independent halftoning tasks, one per color channel,
// on a small pool of goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines, each with its own queue. An idle
// worker steals from the other queues before blocking, so one slow channel
// does not hold back tasks queued behind it.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), 4)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case fn := <-own:
			fn()
			continue
		default:
		}

		if fn := p.steal(id); fn != nil {
			fn()
			continue
		}

		select {
		case fn := <-own:
			fn()
		case <-p.done:
			for {
				select {
				case fn := <-own:
					fn()
				default:
					return
				}
			}
		}
	}
}

// steal takes one task from another worker's queue, or returns nil.
func (p *WorkerPool) steal(id int) func() {
	for i := 1; i < p.workers; i++ {
		select {
		case fn := <-p.queues[(id+i)%p.workers]:
			return fn
		default:
		}
	}
	return nil
}

// ExecuteAll runs every task and returns once all of them have finished.
// Tasks are dealt round-robin to the worker queues. On a closed pool the
// tasks run on the calling goroutine.
func (p *WorkerPool) ExecuteAll(tasks []func()) {
	if len(tasks) == 0 {
		return
	}
	if !p.running.Load() {
		for _, fn := range tasks {
			fn()
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, fn := range tasks {
		task := func() {
			defer wg.Done()
			fn()
		}
		select {
		case p.queues[i%p.workers] <- task:
		case <-p.done:
			task()
		}
	}
	wg.Wait()
}

// Close stops the workers after the queued tasks have run.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts tasks.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// For calls fn(i) for every i in [0, n) using at most workers goroutines and
// returns when all calls have finished. With one worker, or a single task,
// the calls run in order on the calling goroutine.
func For(n, workers int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n)
	if workers == 1 {
		for i := range n {
			fn(i)
		}
		return
	}

	pool := NewWorkerPool(workers)
	defer pool.Close()

	tasks := make([]func(), n)
	for i := range tasks {
		tasks[i] = func() { fn(i) }
	}
	pool.ExecuteAll(tasks)
}
