package frp

import (
	"context"
	"log/slog"
	"time"

	"github.com/AnatoleLucet/frp/internal"
	"github.com/benbjohnson/clock"
)

// Loop runs the timers of Throttle and Defer on a single goroutine.
type Loop struct {
	scheduler *internal.Scheduler
}

// Timer is a callback scheduled on a Loop.
type Timer = internal.Timer

// LoopOption configures a Loop.
type LoopOption = internal.SchedulerOption

// WithClock makes the loop read time from c, typically a *clock.Mock in tests.
func WithClock(c clock.Clock) LoopOption {
	return internal.WithClock(c)
}

// WithLogger sets the loop's logger.
func WithLogger(l *slog.Logger) LoopOption {
	return internal.WithLogger(l)
}

// NewLoop creates a loop. Install it with SetLoop before creating timed combinators.
func NewLoop(opts ...LoopOption) *Loop {
	return &Loop{internal.NewScheduler(opts...)}
}

// CurrentLoop returns the loop of the calling goroutine.
func CurrentLoop() *Loop {
	return &Loop{internal.GetRuntime().Scheduler()}
}

// SetLoop makes l the loop of the calling goroutine. Combinators created
// before keep the loop they were created with.
func SetLoop(l *Loop) {
	if l == nil {
		internal.GetRuntime().SetScheduler(nil)
		return
	}

	internal.GetRuntime().SetScheduler(l.scheduler)
}

// Run drives the loop until ctx is done and returns ctx.Err().
// It must run on the goroutine that owns the loop's streams.
func (l *Loop) Run(ctx context.Context) error {
	return l.scheduler.Run(ctx)
}

// RunPending runs the posted callbacks and the timers already due, and
// returns how many callbacks ran.
func (l *Loop) RunPending() int {
	return l.scheduler.RunPending()
}

// Post queues fn to run on the loop goroutine. Safe for concurrent use.
func (l *Loop) Post(fn func()) {
	l.scheduler.Post(fn)
}

// AfterFunc schedules fn after d. Must be called from the loop goroutine.
func (l *Loop) AfterFunc(d time.Duration, fn func()) *Timer {
	return l.scheduler.AfterFunc(d, fn)
}

// Pending returns the number of timers and posted callbacks waiting to run.
func (l *Loop) Pending() int {
	return l.scheduler.Pending()
}

// Timers returns the number of timers waiting to fire.
func (l *Loop) Timers() int {
	return l.scheduler.Timers()
}

// Now returns the loop's current time.
func (l *Loop) Now() time.Time {
	return l.scheduler.Now()
}
