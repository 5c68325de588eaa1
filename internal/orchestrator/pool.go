package orchestrator

import (
	"context"
	"runtime"
	"sync"

	"go-image-analyzer/internal/analyzer"
	"go-image-analyzer/internal/logger"
)

// JobPool bounds how many orchestration runs execute at once. Jobs are fully
// independent; the pool only limits parallelism, it adds no ordering.
type JobPool struct {
	engine   *Engine
	workers  int
	jobQueue chan analyzer.Job
	wg       sync.WaitGroup
	once     sync.Once
}

// NewJobPool creates a pool running jobs on the given engine. workers <= 0
// falls back to the CPU count.
func NewJobPool(engine *Engine, workers int) *JobPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &JobPool{
		engine:   engine,
		workers:  workers,
		jobQueue: make(chan analyzer.Job, workers*2),
	}
}

// Start launches the workers. Subsequent calls are no-ops.
func (p *JobPool) Start(ctx context.Context) {
	p.once.Do(func() {
		for i := 0; i < p.workers; i++ {
			p.wg.Add(1)
			go p.worker(ctx)
		}
	})
}

func (p *JobPool) worker(ctx context.Context) {
	defer p.wg.Done()
	for job := range p.jobQueue {
		if ctx.Err() != nil {
			return
		}
		if _, err := p.engine.Run(ctx, job); err != nil {
			logger.WithError(err).WithField("blob", job.BlobName).Error("Job execution failed")
		}
	}
}

// Submit queues a job for execution, blocking while the queue is full.
// Returns false when the context is canceled before the job is accepted.
func (p *JobPool) Submit(ctx context.Context, job analyzer.Job) bool {
	select {
	case p.jobQueue <- job:
		return true
	case <-ctx.Done():
		return false
	}
}

// Close stops accepting jobs and waits for the workers to exit. All
// submitters must have stopped before Close is called.
func (p *JobPool) Close() {
	close(p.jobQueue)
	p.wg.Wait()
}
