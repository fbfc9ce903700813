package plagiarism

import (
	"context"
	"runtime"
	"sync"

	"github.com/methkalz/edu-net-11-sub004/internal/models"
	"github.com/rs/zerolog/log"
)

type Job interface {
	Execute(ctx context.Context) error
}

// WorkerPool runs comparison jobs. One comparison stays single-threaded
// inside the engine; the pool provides the caller-side parallelism across
// independent requests.
type WorkerPool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// creates a new worker pool with CPU-based sizing
func NewWorkerPool(ctx context.Context) *WorkerPool {
	totalCPU := runtime.NumCPU()
	systemReserve := max(1, totalCPU/4) // Reserve 1/4 of the CPU for system processes
	size := max(1, totalCPU-systemReserve)
	log.Info().
		Int("totalCPU", totalCPU).
		Int("systemReserve", systemReserve).
		Int("workers", size).
		Msg("Worker pool initialized")
	poolCtx, cancel := context.WithCancel(ctx)

	pool := &WorkerPool{
		workers:  size,
		jobQueue: make(chan Job, size*2),
		ctx:      poolCtx,
		cancel:   cancel,
	}

	pool.start()

	return pool
}

func (p *WorkerPool) start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			if err := job.Execute(p.ctx); err != nil {
				log.Error().Err(err).Msg("Worker failed to execute job")
			}
		}
	}
}

// submits a job to the pool
func (p *WorkerPool) Submit(job Job) error {
	select {
	case <-p.ctx.Done():
		return p.ctx.Err()
	case p.jobQueue <- job:
		return nil
	}
}

// closes the worker pool and waits for all workers to finish
func (p *WorkerPool) Close() {
	close(p.jobQueue)
	p.cancel()
	p.wg.Wait()
}

// returns the number of workers
func (p *WorkerPool) Size() int {
	return p.workers
}

// CompareJob runs one comparison on the pool and delivers the outcome on
// Done. Outcome carries either the result or the request-fatal error.
type CompareJob struct {
	Engine  *Engine
	Request *models.CompareRequest
	Done    chan<- CompareOutcome
}

type CompareOutcome struct {
	Result *models.ComparisonResult
	Err    error
}

func (j *CompareJob) Execute(ctx context.Context) error {
	result, err := j.Engine.Compare(ctx, j.Request)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case j.Done <- CompareOutcome{Result: result, Err: err}:
		return err
	}
}
