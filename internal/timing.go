package internal

import "time"

const DefaultDeferWait = 100 * time.Millisecond

// Throttle emits the latest event once d has passed without a new one.
// The first window is armed immediately; it emits nothing unless an event
// arrived in the meantime.
func (s *Stream) Throttle(d time.Duration) *Stream {
	throttled := s.derive()
	sched := s.rt.Scheduler()

	var (
		event   any
		pending bool
	)
	emit := func() {
		if !pending {
			return
		}

		e := event
		event, pending = nil, false
		throttled.Emit(e)
	}

	timer := sched.AfterFunc(d, emit)
	s.Subscribe(func(e any) {
		timer.Stop()
		event, pending = e, true
		timer = sched.AfterFunc(d, emit)
	})

	return throttled
}

// Defer re-emits every event after wait. Each event gets its own timer.
func (s *Stream) Defer(wait time.Duration) *Stream {
	if wait <= 0 {
		wait = DefaultDeferWait
	}

	deferred := s.derive()
	sched := s.rt.Scheduler()
	s.Subscribe(func(e any) {
		sched.AfterFunc(wait, func() { deferred.Emit(e) })
	})

	return deferred
}
