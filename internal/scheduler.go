package internal

import (
	"container/heap"
	"context"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
)

// Scheduler is a single-goroutine timer loop. Timers are only created and
// fired on the goroutine driving the scheduler; other goroutines hand work
// over with Post.
type Scheduler struct {
	clock    clock.Clock
	log      *slog.Logger
	observer Observer

	timers timerHeap
	seq    uint64

	posted *PostQueue
	wake   chan struct{}
}

type SchedulerOption func(*Scheduler)

func WithClock(c clock.Clock) SchedulerOption {
	return func(s *Scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}

func WithLogger(l *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

func NewScheduler(opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		clock:    clock.New(),
		log:      Logger("loop"),
		observer: NopObserver{},
		posted:   NewPostQueue(),
		wake:     make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type Timer struct {
	s        *Scheduler
	fn       func()
	deadline time.Time
	seq      uint64

	// position in the heap, -1 once fired or stopped
	index int
}

// Stop cancels the timer. It reports false if the timer already fired or was stopped.
func (t *Timer) Stop() bool {
	if t.index < 0 {
		return false
	}

	heap.Remove(&t.s.timers, t.index)
	t.s.observer.TimerStopped()

	return true
}

func (t *Timer) Deadline() time.Time { return t.deadline }

func (s *Scheduler) Now() time.Time { return s.clock.Now() }

func (s *Scheduler) Clock() clock.Clock { return s.clock }

// AfterFunc schedules fn to run on the scheduler goroutine once d has elapsed.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) *Timer {
	if fn == nil {
		panic(NotFunc("scheduler callback"))
	}

	s.seq++
	t := &Timer{
		s:        s,
		fn:       fn,
		deadline: s.clock.Now().Add(d),
		seq:      s.seq,
	}
	heap.Push(&s.timers, t)
	s.observer.TimerScheduled()

	return t
}

// Post queues fn for the scheduler goroutine. Safe to call from any goroutine.
func (s *Scheduler) Post(fn func()) {
	if fn == nil {
		panic(NotFunc("posted callback"))
	}

	s.posted.Enqueue(fn)

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of timers and posted callbacks waiting to run.
func (s *Scheduler) Pending() int {
	return s.timers.Len() + s.posted.Len()
}

// Timers returns the number of scheduled timers that have not fired or been stopped.
func (s *Scheduler) Timers() int {
	return s.timers.Len()
}

// RunPending runs posted callbacks, then every timer due at the current
// clock time in deadline order, and returns how many callbacks ran.
func (s *Scheduler) RunPending() int {
	ran := s.posted.Run()

	now := s.clock.Now()
	for {
		t, ok := s.timers.peek()
		if !ok || t.deadline.After(now) {
			break
		}

		heap.Pop(&s.timers)
		s.observer.TimerFired()
		t.fn()
		ran++
	}

	return ran
}

// Run drives the scheduler until ctx is done, sleeping until the next
// deadline or posted callback.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Debug("loop started")
	defer s.log.Debug("loop stopped")

	for {
		if n := s.RunPending(); n > 0 {
			s.log.Debug("ran callbacks", "count", n, "pending", s.Pending())
		}

		var (
			timer *clock.Timer
			due   <-chan time.Time
		)
		if next, ok := s.timers.peek(); ok {
			timer = s.clock.Timer(next.deadline.Sub(s.clock.Now()))
			due = timer.C
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		case <-s.wake:
		case <-due:
		}

		if timer != nil {
			timer.Stop()
		}
	}
}
