// Package workerpool provides a bounded goroutine pool with backpressure.
//
// The event bus runs its listeners here so a slow WebSocket consumer or a
// burst of order mutations can never grow the goroutine count without limit.
// When the queue is full, Submit returns ErrPoolFull immediately and the
// caller decides whether to drop or wait.
//
//	pool := workerpool.New("events", 8)
//	defer pool.Shutdown()
//
//	if err := pool.Submit(func() { deliver(evt) }); errors.Is(err, workerpool.ErrPoolFull) {
//	    // drop, the feed is best effort
//	}
package workerpool

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/salesdesk/pkg/logger"
)

// ErrPoolFull is returned by Submit when the task queue is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned by Submit after Shutdown has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool is a bounded goroutine pool.
type Pool struct {
	name    string
	tasks   chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards sends against close(tasks)
	closeCh chan struct{}
}

// New creates a Pool with size workers. The queue holds 2×size tasks.
func New(name string, size int) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{
		name:    name,
		tasks:   make(chan func(), size*2),
		closeCh: make(chan struct{}),
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// Submit enqueues task without blocking.
func (p *Pool) Submit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	select {
	case <-p.closeCh:
		return ErrPoolClosed
	default:
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait blocks until the task is queued or the pool is shutting down.
func (p *Pool) SubmitWait(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	select {
	case <-p.closeCh:
		return ErrPoolClosed
	default:
	}

	select {
	case <-p.closeCh:
		return ErrPoolClosed
	case p.tasks <- task:
		return nil
	}
}

// Shutdown stops accepting tasks, runs everything already queued and waits
// for the workers to exit. It is safe to call multiple times.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.closeCh)

		p.mu.Lock()
		close(p.tasks)
		p.mu.Unlock()

		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.safeRun(task)
	}
}

// safeRun keeps a panicking task from killing its worker.
func (p *Pool) safeRun(task func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("workerpool: task panicked", "pool", p.name, "panic", fmt.Sprint(r))
		}
	}()
	task()
}
