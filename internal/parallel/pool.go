// Package parallel runs independent image jobs on a fixed set of
// goroutines. gdtool uses it to convert and thumbnail many files at once.
package parallel

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned when work is submitted to a closed pool.
var ErrClosed = errors.New("parallel: pool is closed")

// Job is one unit of work. A non-nil error is reported back to the
// caller of Run.
type Job func(ctx context.Context) error

// WorkerPool is a pool of goroutines pulling jobs from a shared queue.
//
// WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queue   chan func()
	wg      sync.WaitGroup
	running atomic.Bool
	mu      sync.RWMutex // guards sends against Close
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), workers*2),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for fn := range p.queue {
		fn()
	}
}

// Run executes jobs concurrently and waits for all of them. It returns
// the errors of failed jobs joined in job order. Once ctx is done,
// jobs that have not started are skipped and report ctx.Err().
// A panicking job is reported as an error instead of crashing the pool.
func (p *WorkerPool) Run(ctx context.Context, jobs []Job) error {
	if len(jobs) == 0 {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.running.Load() {
		return ErrClosed
	}

	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for i, job := range jobs {
		p.queue <- func() {
			defer wg.Done()
			errs[i] = runJob(ctx, job)
		}
	}
	wg.Wait()
	return errors.Join(errs...)
}

func runJob(ctx context.Context, job Job) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parallel: job panicked: %v", r)
		}
	}()
	return job(ctx)
}

// Close stops accepting work, waits for queued jobs to finish and stops
// the workers. Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.queue)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}
