package convert

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"convertly/internal/api"
	"convertly/internal/logging"
)

// ProgressFunc fetches the current progress for one file identifier.
type ProgressFunc func(ctx context.Context, id string) (*api.ProgressResponse, error)

// Scheduler runs one polling goroutine per tracked identifier. Each loop
// ticks at a fixed interval and exits when its task reaches a terminal
// status, when a poll fails, or when the scheduler is stopped.
type Scheduler struct {
	interval   time.Duration
	poll       ProgressFunc
	tracker    *Tracker
	logger     *slog.Logger
	onTerminal func(ctx context.Context, task Task)

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
	wg      sync.WaitGroup
}

// NewScheduler wires a scheduler to a tracker. onTerminal fires exactly once
// per identifier, from the poll goroutine, and may be nil.
func NewScheduler(interval time.Duration, poll ProgressFunc, tracker *Tracker, logger *slog.Logger, onTerminal func(ctx context.Context, task Task)) *Scheduler {
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scheduler{
		interval:   interval,
		poll:       poll,
		tracker:    tracker,
		logger:     logger.With(logging.String("component", "convert-scheduler")),
		onTerminal: onTerminal,
		cancels:    make(map[string]context.CancelFunc),
	}
}

// Watch starts the polling loop for id. A second Watch for the same
// identifier is a no-op while the first loop is still registered.
func (s *Scheduler) Watch(ctx context.Context, id string) {
	s.mu.Lock()
	if _, ok := s.cancels[id]; ok {
		s.mu.Unlock()
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancels[id] = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(loopCtx, id)
}

func (s *Scheduler) run(ctx context.Context, id string) {
	defer s.wg.Done()
	defer s.release(id)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			resp, err := s.poll(ctx, id)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				s.logger.Warn("progress poll failed",
					logging.String("file_id", id),
					logging.Error(err))
				task, ok := s.tracker.MarkError(id, failureMessage(err))
				if ok && s.onTerminal != nil {
					s.onTerminal(ctx, task)
				}
				return
			}
			task, ok := s.tracker.Apply(resp)
			if !ok {
				return
			}
			if task.Status.Terminal() {
				if s.onTerminal != nil {
					s.onTerminal(ctx, task)
				}
				return
			}
		}
	}
}

func (s *Scheduler) release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.cancels[id]; ok {
		cancel()
		delete(s.cancels, id)
	}
}

// Stop cancels every active loop. Wait must still be called to observe the
// goroutines exiting.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, cancel := range s.cancels {
		cancel()
		delete(s.cancels, id)
	}
}

// Wait blocks until every polling loop has exited.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
