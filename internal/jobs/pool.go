// Package jobs runs external tasks on a small pool of background workers.
// Jobs start in submission order. With one worker they also finish in that
// order, which is how build steps are sequenced.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("job pool is closed")

// Task is a unit of work.
type Task interface {
	Run(ctx context.Context) error
}

// TaskFunc adapts a function to Task.
type TaskFunc func(ctx context.Context) error

func (f TaskFunc) Run(ctx context.Context) error { return f(ctx) }

// Result is the outcome of one job.
type Result struct {
	ID       string
	Name     string
	Err      error
	Started  time.Time
	Finished time.Time
}

type job struct {
	id   string
	name string
	task Task
}

// Pool is a FIFO job queue drained by a fixed number of workers.
type Pool struct {
	// OnDone, if set before the first Submit, is called from the worker
	// goroutine after every job. Wait does not return until it has.
	OnDone func(Result)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []*job
	running int
	closed  bool
	idle    chan struct{}
}

// NewPool starts workers goroutines. Cancelling ctx cancels the context
// passed to running tasks; it does not drop queued jobs.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{idle: make(chan struct{})}
	close(p.idle)
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.cond = sync.NewCond(&p.mu)
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// Submit queues task and returns its job id.
func (p *Pool) Submit(name string, task Task) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return "", ErrClosed
	}
	if p.inFlightLocked() == 0 {
		p.idle = make(chan struct{})
	}
	j := &job{id: uuid.NewString(), name: name, task: task}
	p.queue = append(p.queue, j)
	p.cond.Signal()
	slog.Debug("job queued", "id", j.id, "name", name)
	return j.id, nil
}

// JobsInFlight returns the number of jobs queued or running.
func (p *Pool) JobsInFlight() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inFlightLocked()
}

func (p *Pool) inFlightLocked() int { return len(p.queue) + p.running }

// ClearAll drops every job that has not started and returns how many were
// dropped. Running jobs are unaffected.
func (p *Pool) ClearAll() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.queue)
	clear(p.queue)
	p.queue = p.queue[:0]
	p.settleLocked()
	if n > 0 {
		slog.Info("cleared queued jobs", "count", n)
	}
	return n
}

// Wait blocks until no jobs are in flight or ctx is done.
func (p *Pool) Wait(ctx context.Context) error {
	p.mu.Lock()
	idle := p.idle
	p.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting jobs, lets the queue drain and waits for the
// workers to exit.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
	p.wg.Wait()
	p.cancel()
}

func (p *Pool) settleLocked() {
	if p.inFlightLocked() != 0 {
		return
	}
	select {
	case <-p.idle:
	default:
		close(p.idle)
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		j := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.running++
		p.mu.Unlock()

		res := p.run(j)
		if p.OnDone != nil {
			p.OnDone(res)
		}

		p.mu.Lock()
		p.running--
		p.settleLocked()
		p.mu.Unlock()
	}
}

func (p *Pool) run(j *job) (res Result) {
	res = Result{ID: j.id, Name: j.name, Started: time.Now()}
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("job panicked: %v", r)
		}
		res.Finished = time.Now()
		if res.Err != nil {
			slog.Warn("job failed", "id", j.id, "name", j.name, "error", res.Err)
		} else {
			slog.Info("job finished", "id", j.id, "name", j.name, "duration", res.Finished.Sub(res.Started))
		}
	}()
	slog.Info("job started", "id", j.id, "name", j.name)
	res.Err = j.task.Run(p.ctx)
	return res
}
