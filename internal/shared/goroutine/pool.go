package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"fitout/internal/shared/logger"
)

// Task is a unit of work executed by the pool. The context carries the
// per-task timeout and is canceled when the pool shuts down.
type Task func(ctx context.Context) error

// Pool is a bounded worker pool with a per-task timeout. It replaces ad-hoc
// fire-and-forget goroutines for background work such as AI drafting and
// outbound email so that concurrency stays bounded and shutdown is explicit.
type Pool struct {
	name        string
	size        int
	taskTimeout time.Duration
	logger      logger.Interface

	tasks  chan queuedTask
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	started bool
	closed  bool
}

type queuedTask struct {
	name string
	fn   Task
}

// NewPool creates a pool with the given number of workers. A non-positive
// size defaults to 1. taskTimeout bounds each task's context; zero means
// no per-task timeout.
func NewPool(name string, size int, taskTimeout time.Duration, log logger.Interface) *Pool {
	if size <= 0 {
		size = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		name:        name,
		size:        size,
		taskTimeout: taskTimeout,
		logger:      log,
		tasks:       make(chan queuedTask, size*4),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start launches the workers. It is a no-op if already started.
func (p *Pool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true

	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	p.logger.Infow("worker pool started", "pool", p.name, "size", p.size)
}

// Submit enqueues a task for execution. It returns an error when the pool is
// shut down or the queue is full, so callers can surface backpressure instead
// of silently dropping work.
func (p *Pool) Submit(name string, fn Task) error {
	// The send happens under the same mutex that Shutdown closes the
	// channel under, so a concurrent Shutdown cannot close it mid-send.
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("pool %s is shut down", p.name)
	}

	select {
	case p.tasks <- queuedTask{name: name, fn: fn}:
		return nil
	default:
		return fmt.Errorf("pool %s queue is full", p.name)
	}
}

// Shutdown stops accepting tasks and waits for in-flight tasks to finish,
// up to the given grace period. Pending queued tasks are still executed.
func (p *Pool) Shutdown(grace time.Duration) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(grace):
		p.logger.Warnw("worker pool shutdown grace period elapsed", "pool", p.name)
	}
	p.cancel()
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(id, task)
	}
}

func (p *Pool) run(workerID int, task queuedTask) {
	ctx := p.ctx
	cancel := context.CancelFunc(func() {})
	if p.taskTimeout > 0 {
		ctx, cancel = context.WithTimeout(p.ctx, p.taskTimeout)
	}
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorw("pool task panicked",
				"pool", p.name,
				"task", task.name,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()

	start := time.Now()
	if err := task.fn(ctx); err != nil {
		p.logger.Errorw("pool task failed",
			"pool", p.name,
			"worker", workerID,
			"task", task.name,
			"duration", time.Since(start).String(),
			"error", err,
		)
		return
	}
	p.logger.Debugw("pool task completed",
		"pool", p.name,
		"task", task.name,
		"duration", time.Since(start).String(),
	)
}
