package worker

import (
	"context"
	"sync"
)

// Job is one unit of work run by the pool
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is what a job hands back
type Result interface {
	GetError() error
}

// Pool runs jobs on a fixed number of goroutines and streams their results.
// Producers Submit then Close; consumers drain Results until it is closed.
type Pool struct {
	workers   int
	jobQueue  chan Job
	results   chan Result
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a pool bound to ctx; cancelling ctx stops the workers.
// Fewer than one worker means one.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, workers*2),
		results:  make(chan Result, workers*2),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. It reports false once the pool's context is done.
func (p *Pool) Submit(job Job) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		return false
	case p.jobQueue <- job:
		return true
	}
}

// Results streams results as jobs complete. It is closed after Close once
// every worker has returned.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Close stops accepting jobs. Safe to call more than once; must not race Submit.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.jobQueue)

		go func() {
			p.wg.Wait()
			close(p.results)
			p.cancel()
		}()
	})
}
