// Package parallel runs grid evaluation work on a fixed set of worker
// goroutines.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Task is one unit of work. worker identifies the goroutine running it, in
// [0, Workers()), so tasks can use per-worker state without locking: a
// worker runs one task at a time.
type Task func(worker int)

// WorkerPool is a pool of goroutines evaluating tasks.
//
// Each worker has its own queue and steals from the others when its queue
// is empty, which balances bands of uneven cost.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int

	// queues holds per-worker task queues.
	queues []chan Task

	// done signals workers to stop.
	done chan struct{}

	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan Task, workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan Task, queueSize)
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
		case <-p.done:
			p.drain(id)
			return
		case task := <-own:
			task(id)
		default:
			if task := p.steal(id); task != nil {
				task(id)
				continue
			}
			select {
			case <-p.done:
				p.drain(id)
				return
			case task := <-own:
				task(id)
			}
		}
	}
}

// drain runs whatever is left in the worker's queue.
func (p *WorkerPool) drain(id int) {
	for {
		select {
		case task := <-p.queues[id]:
			task(id)
		default:
			return
		}
	}
}

// steal takes one task from another worker's queue, or returns nil.
func (p *WorkerPool) steal(id int) Task {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case task := <-p.queues[i]:
			return task
		default:
		}
	}
	return nil
}

// Run executes fn for every item in [0, n) and waits for all of them.
//
// The first error returned by fn, or the cancellation of ctx, stops items
// that have not started yet; Run then returns that error. Items already
// running are not interrupted, so fn should check ctx itself when an item
// is long. Run on a closed pool returns ErrClosed.
func (p *WorkerPool) Run(ctx context.Context, n int, fn func(worker, item int) error) error {
	if !p.running.Load() {
		return ErrClosed
	}
	if n <= 0 {
		return ctx.Err()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	wg.Add(n)
	for i := range n {
		task := func(worker int) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			if err := fn(worker, i); err != nil {
				fail(err)
			}
		}
		select {
		case p.queues[i%p.workers] <- task:
		case <-p.done:
			wg.Add(-(n - i))
			wg.Wait()
			return ErrClosed
		}
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

// Close stops accepting work, runs what is queued and stops the workers.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int { return p.workers }

// IsRunning reports whether the pool is accepting work.
func (p *WorkerPool) IsRunning() bool { return p.running.Load() }
