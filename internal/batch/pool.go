// Package batch runs independent jobs, such as rendering one sketch per
// seed, on a fixed set of worker goroutines.
package batch

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned when work is submitted to a closed pool.
var ErrClosed = errors.New("batch: pool closed")

// Job is a unit of work. It receives the context passed to Run.
type Job func(ctx context.Context) error

// Pool is a pool of goroutines with per-worker queues.
//
// Jobs are assigned round-robin. An idle worker steals from the other
// queues before blocking on its own, which balances jobs of uneven cost.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// New creates a pool with the given number of workers and starts them.
// If workers is 0 or negative, GOMAXPROCS is used.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]
	for {
		select {
		case <-p.done:
			drain(own)
			return
		case fn := <-own:
			fn()
		default:
			if fn := p.steal(id); fn != nil {
				fn()
				continue
			}
			select {
			case <-p.done:
				drain(own)
				return
			case fn := <-own:
				fn()
			}
		}
	}
}

func drain(queue chan func()) {
	for {
		select {
		case fn := <-queue:
			fn()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case fn := <-p.queues[i]:
			return fn
		default:
		}
	}
	return nil
}

// Run executes all jobs and waits for them to finish. Jobs that have not
// started when ctx is canceled are skipped and report ctx.Err(). The
// returned error joins every job failure in job order.
func (p *Pool) Run(ctx context.Context, jobs []Job) error {
	if len(jobs) == 0 {
		return nil
	}
	if !p.running.Load() {
		return ErrClosed
	}

	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for i, job := range jobs {
		fn := func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			errs[i] = job(ctx)
		}
		select {
		case p.queues[i%p.workers] <- fn:
		case <-p.done:
			errs[i] = ErrClosed
			wg.Done()
		}
	}
	wg.Wait()
	return errors.Join(errs...)
}

// Close stops accepting work, finishes queued jobs and stops the workers.
// Close is safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}
