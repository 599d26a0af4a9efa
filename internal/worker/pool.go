package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/osse101/FissureBot_Go/internal/logger"
)

// ErrPoolStopped is returned when submitting to a stopped pool.
var ErrPoolStopped = errors.New(ErrMsgPoolStopped)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to Job.
type JobFunc func(ctx context.Context) error

// Process calls f.
func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

// Pool runs jobs on a fixed number of goroutines.
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize < 0 {
		queueSize = 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	logger.Info(LogMsgPoolStarted, LogFieldWorkers, p.workers, LogFieldQueueSize, cap(p.jobQueue))
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(id, job)
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Pool) run(id int, job Job) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(LogMsgWorkerJobPanicked, LogFieldWorker, id, LogFieldPanic, r)
		}
	}()
	if err := job.Process(p.ctx); err != nil {
		logger.Error(LogMsgWorkerJobFailed, LogFieldWorker, id, "error", err)
	}
}

// Enqueue adds a job to the queue, blocking while it is full.
// Jobs enqueued after Stop are dropped.
func (p *Pool) Enqueue(job Job) {
	_ = p.Submit(context.Background(), job)
}

// TryEnqueue adds a job only if the queue has room.
func (p *Pool) TryEnqueue(job Job) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// Submit queues a job, waiting for room until ctx is done or the pool stops.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	if p.ctx.Err() != nil {
		return ErrPoolStopped
	}
	select {
	case p.jobQueue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPoolStopped
	}
}

// Stop cancels running jobs and waits for the workers to return.
// Jobs still queued are discarded.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.cancel()
		p.wg.Wait()
		logger.Info(LogMsgPoolStopped)
	})
}
