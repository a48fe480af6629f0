package task

import (
	"context"
	"log/slog"
	"sync"
)

// WorkerPool manages a pool of worker goroutines that process tasks from a
// task queue. It handles graceful shutdown and worker lifecycle.
type WorkerPool struct {
	taskQueue   QueueReader
	workerCount int
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	logger      *slog.Logger

	// errorHandler is called when a task execution fails.
	// If nil, errors are only logged.
	errorHandler func(task Task, err error)
}

// WorkerPoolConfig holds configuration options for the worker pool.
type WorkerPoolConfig struct {
	// WorkerCount determines how many concurrent worker goroutines to start.
	// If zero or negative, defaults to 1.
	WorkerCount int
}

// DefaultWorkerPoolConfig returns a WorkerPoolConfig with reasonable defaults.
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{WorkerCount: 2}
}

// NewWorkerPool creates a new worker pool with the specified configuration.
func NewWorkerPool(taskQueue QueueReader, config WorkerPoolConfig, logger *slog.Logger) *WorkerPool {
	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		taskQueue:   taskQueue,
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
	}
}

// SetErrorHandler allows setting a custom error handler for task execution
// failures.
func (p *WorkerPool) SetErrorHandler(handler func(task Task, err error)) {
	p.errorHandler = handler
}

// Start launches the worker goroutines.
func (p *WorkerPool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	p.logger.Info("worker pool started", "worker_count", p.workerCount)
}

// Stop waits for the workers to drain the queue and exit, then cancels the
// task context. The queue must be closed before Stop is called; workers only
// terminate once the closed channel is empty.
func (p *WorkerPool) Stop() {
	p.wg.Wait()
	p.cancel()
	p.logger.Info("worker pool stopped")
}

// worker consumes tasks until the queue channel is closed and drained.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	log := p.logger.With(slog.Int("worker_id", id))
	log.Debug("worker started")

	for t := range p.taskQueue.GetChannel() {
		p.process(t, log)
	}
	log.Debug("worker stopping: queue closed and drained")
}

// process executes a single task. A failed task is retried once before the
// failure is handed to the error handler; further retry policy belongs to
// the task's own implementation.
func (p *WorkerPool) process(t Task, log *slog.Logger) {
	log.Debug("executing task",
		"task_id", t.ID(),
		"task_type", t.Type())

	err := t.Execute(p.ctx)
	if err != nil {
		log.Warn("task failed, retrying once",
			"task_id", t.ID(),
			"task_type", t.Type(),
			"error", err)
		err = t.Execute(p.ctx)
	}

	if err != nil {
		if p.errorHandler != nil {
			p.errorHandler(t, err)
		} else {
			log.Error("task execution failed",
				"task_id", t.ID(),
				"task_type", t.Type(),
				"error", err)
		}
		return
	}

	log.Debug("task completed",
		"task_id", t.ID(),
		"task_type", t.Type())
}
