// Package syncer runs best-effort background writes. Callers never block on
// a task and tasks are never retried; every outcome is logged and captured so
// failures stay observable instead of silently swallowed.
package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultTaskTimeout = 10 * time.Second

// Result is the recorded outcome of one background task.
type Result struct {
	Name string
	Err  error
}

type Syncer struct {
	logger  *logrus.Logger
	timeout time.Duration

	wg      sync.WaitGroup
	mu      sync.Mutex
	results chan Result
	closed  bool
}

func New(logger *logrus.Logger) *Syncer {
	return &Syncer{
		logger:  logger,
		timeout: defaultTaskTimeout,
		results: make(chan Result, 128),
	}
}

// Go runs fn on its own goroutine with a bounded context. The call returns
// immediately; the outcome lands in the log and the results channel. When the
// results buffer is full the oldest unread outcome is dropped rather than
// blocking the task.
func (s *Syncer) Go(name string, fn func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		err := fn(ctx)
		if err != nil {
			s.logger.WithError(err).WithField("task", name).Warn("background sync failed")
		} else {
			s.logger.WithField("task", name).Debug("background sync done")
		}

		s.record(Result{Name: name, Err: err})
	}()
}

func (s *Syncer) record(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for {
		select {
		case s.results <- r:
			return
		default:
			select {
			case <-s.results:
			default:
			}
		}
	}
}

// Results exposes task outcomes, mainly for tests and diagnostics.
func (s *Syncer) Results() <-chan Result {
	return s.results
}

// Wait blocks until all issued tasks have finished. Used on shutdown and in
// tests; regular request paths never call it.
func (s *Syncer) Wait() {
	s.wg.Wait()
}

// Close waits for in-flight tasks and closes the results channel.
func (s *Syncer) Close() {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.results)
	}
}
