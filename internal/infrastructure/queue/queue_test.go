package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func startedQueue(t *testing.T, workers int) *Queue {
	t.Helper()
	q := New(workers, time.Millisecond, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	q.Start(ctx)
	return q
}

func TestQueue_ConcurrencyBound(t *testing.T) {
	q := startedQueue(t, 2)

	var running, maxRunning int32
	var wg sync.WaitGroup

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = q.Do(context.Background(), func() error {
				n := atomic.AddInt32(&running, 1)
				for {
					max := atomic.LoadInt32(&maxRunning)
					if n <= max || atomic.CompareAndSwapInt32(&maxRunning, max, n) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				atomic.AddInt32(&running, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&maxRunning); got > 2 {
		t.Fatalf("expected at most 2 concurrent operations, observed %d", got)
	}
}

func TestQueue_ErrorIsolation(t *testing.T) {
	q := startedQueue(t, 2)

	boom := errors.New("boom")
	var wg sync.WaitGroup
	results := make([]error, 4)

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = q.Do(context.Background(), func() error {
				if i == 1 {
					return boom
				}
				return nil
			})
		}(i)
	}
	wg.Wait()

	for i, err := range results {
		if i == 1 {
			if !errors.Is(err, boom) {
				t.Errorf("task 1: expected its own error, got %v", err)
			}
			continue
		}
		if err != nil {
			t.Errorf("task %d: expected nil, got %v (sibling failure leaked)", i, err)
		}
	}
}

func TestQueue_FIFODispatch(t *testing.T) {
	// One worker makes dispatch order observable as completion order.
	q := startedQueue(t, 1)

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)
		i := i
		go func() {
			defer wg.Done()
			_ = q.Do(context.Background(), func() error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			})
		}()
		time.Sleep(5 * time.Millisecond) // stagger enqueues
	}
	wg.Wait()

	for i := range order {
		if order[i] != i {
			t.Fatalf("expected FIFO dispatch order, got %v", order)
		}
	}
}

func TestQueue_DoRespectsContextWhileWaiting(t *testing.T) {
	// Queue never started: Do must unblock via its own context.
	q := New(1, time.Millisecond, zerolog.Nop())
	// Fill the channel so the enqueue itself would block.
	for i := 0; i < channelBuffer; i++ {
		q.tasks <- task{op: func() error { return nil }, done: make(chan error, 1)}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := q.Do(ctx, func() error { return nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline error, got %v", err)
	}
}

func TestQueue_DefaultsApplied(t *testing.T) {
	q := New(0, 0, zerolog.Nop())
	if q.workers != defaultWorkers {
		t.Errorf("expected %d workers, got %d", defaultWorkers, q.workers)
	}
	if q.cooldown != defaultCooldown {
		t.Errorf("expected cooldown %v, got %v", defaultCooldown, q.cooldown)
	}
}
