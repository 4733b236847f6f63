package poll

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultInterval = 2 * time.Second
	maxBackoff      = 30 * time.Second
)

// FetchFunc performs one fetch. It must honor ctx cancellation.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Result is the outcome of one fetch.
type Result[T any] struct {
	Session   uint64
	Value     T
	Err       error
	Failures  int // consecutive failures including this one; zero on success
	FetchedAt time.Time
}

// Options configure a Task.
type Options struct {
	Name     string
	Session  uint64
	Interval time.Duration
	Logger   *slog.Logger
}

// Task runs a fetch on a fixed cadence until stopped. Fetches are chained:
// the next one is scheduled only after the previous result was delivered, so at
// most one request is in flight.
type Task[T any] struct {
	name     string
	session  uint64
	interval time.Duration
	logger   *slog.Logger
	fetch    FetchFunc[T]

	ctx     context.Context
	cancel  context.CancelFunc
	results chan Result[T]
	done    chan struct{}

	mu      sync.Mutex
	stopped bool
}

// Start launches the task and performs the first fetch immediately.
func Start[T any](parent context.Context, opts Options, fetch FetchFunc[T]) *Task[T] {
	if parent == nil {
		parent = context.Background()
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(parent)
	t := &Task[T]{
		name:     opts.Name,
		session:  opts.Session,
		interval: interval,
		logger:   logger.With("task", opts.Name, "session", opts.Session),
		fetch:    fetch,
		ctx:      ctx,
		cancel:   cancel,
		results:  make(chan Result[T]),
		done:     make(chan struct{}),
	}
	go t.run()
	return t
}

// Session identifies the activation this task belongs to.
func (t *Task[T]) Session() uint64 {
	return t.session
}

// Results delivers fetch outcomes. The channel is closed when the task exits.
func (t *Task[T]) Results() <-chan Result[T] {
	return t.results
}

// Stop cancels the task, aborting any in-flight fetch. A fetch that completes
// after Stop is dropped instead of delivered. Safe to call more than once.
func (t *Task[T]) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	t.cancel()
}

// Wait blocks until the task goroutine has exited.
func (t *Task[T]) Wait() {
	<-t.done
}

// Done is closed when the task goroutine has exited.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Live reports whether the task may still deliver results.
func (t *Task[T]) Live() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.stopped
}

func (t *Task[T]) run() {
	defer close(t.done)
	defer close(t.results)

	failures := 0
	for {
		value, err := t.fetch(t.ctx)
		if !t.Live() || t.ctx.Err() != nil {
			// Late response after teardown; drop it.
			return
		}
		if err != nil {
			failures++
			t.logger.Warn("poll failed", "failures", failures, "error", err)
		} else {
			if failures > 0 {
				t.logger.Info("poll recovered", "after_failures", failures)
			}
			failures = 0
		}

		res := Result[T]{
			Session:   t.session,
			Value:     value,
			Err:       err,
			Failures:  failures,
			FetchedAt: time.Now(),
		}
		select {
		case <-t.ctx.Done():
			return
		case t.results <- res:
		}

		timer := time.NewTimer(calculateBackoff(failures, t.interval))
		select {
		case <-t.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	delay := base
	for i := 0; i < failures; i++ {
		delay *= 2
		if delay >= maxBackoff {
			return maxBackoff
		}
	}
	return delay
}
