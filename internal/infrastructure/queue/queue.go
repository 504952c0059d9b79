package queue

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers  = 2
	defaultCooldown = 100 * time.Millisecond
	channelBuffer   = 256
)

type task struct {
	op   func() error
	done chan error
}

// Queue bounds the number of simultaneous store operations. Tasks are
// dispatched in FIFO order to a fixed set of workers; after each operation
// completes (success or failure) the worker pauses for a cooldown before
// picking up the next task, smoothing bursts against the backing store.
//
// Each caller receives only its own operation's outcome; a sibling failure
// never leaks across tasks. There is no priority, cancellation of in-flight
// operations, or per-operation timeout.
type Queue struct {
	tasks    chan task
	workers  int
	cooldown time.Duration
	log      zerolog.Logger

	mu     sync.Mutex
	active int
}

// New creates a Queue with the given concurrency limit and post-completion
// cooldown. Non-positive arguments fall back to the defaults (2 workers,
// 100ms cooldown).
func New(workers int, cooldown time.Duration, log zerolog.Logger) *Queue {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	return &Queue{
		tasks:    make(chan task, channelBuffer),
		workers:  workers,
		cooldown: cooldown,
		log:      log,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled;
// tasks still waiting in the channel at that point are abandoned and their
// callers unblock through their own contexts.
func (q *Queue) Start(ctx context.Context) {
	for i := 0; i < q.workers; i++ {
		go q.runWorker(ctx, i)
	}
}

// Do enqueues op and blocks until it has run, returning the operation's own
// error. The context only governs the wait: once op is dispatched it runs to
// completion regardless of ctx.
func (q *Queue) Do(ctx context.Context, op func() error) error {
	t := task{op: op, done: make(chan error, 1)}

	select {
	case q.tasks <- t:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-t.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Depth returns the number of tasks waiting for dispatch. Exposed for the
// queue depth gauge.
func (q *Queue) Depth() int {
	return len(q.tasks)
}

// Active returns the number of operations currently running.
func (q *Queue) Active() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.active
}

func (q *Queue) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-q.tasks:
			if !ok {
				return
			}
			q.setActive(+1)
			err := t.op()
			q.setActive(-1)
			t.done <- err
			if err != nil {
				q.log.Debug().Err(err).Int("worker_id", id).Msg("store operation failed")
			}
			time.Sleep(q.cooldown)
		}
	}
}

func (q *Queue) setActive(delta int) {
	q.mu.Lock()
	q.active += delta
	q.mu.Unlock()
}
