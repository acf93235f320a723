package internal

// Runtime holds the per-goroutine state shared by every stream and signal
// created on that goroutine.
type Runtime struct {
	scheduler *Scheduler
	tracker   *Tracker
	observer  Observer
}

func NewRuntime() *Runtime {
	return &Runtime{
		scheduler: NewScheduler(),
		tracker:   NewTracker(),
		observer:  NopObserver{},
	}
}

func (r *Runtime) Scheduler() *Scheduler { return r.scheduler }

// SetScheduler replaces the scheduler used by combinators created from now on.
func (r *Runtime) SetScheduler(s *Scheduler) {
	if s == nil {
		s = NewScheduler()
	}

	s.observer = r.observer
	r.scheduler = s
}

func (r *Runtime) Observer() Observer { return r.observer }

// SetObserver installs o on the runtime and its scheduler; nil restores the no-op observer.
func (r *Runtime) SetObserver(o Observer) {
	if o == nil {
		o = NopObserver{}
	}

	r.observer = o
	r.scheduler.observer = o
}

func (r *Runtime) CurrentOwner() *Owner {
	return r.tracker.CurrentOwner()
}

func (r *Runtime) OnCleanup(fn func()) {
	owner := r.CurrentOwner()
	if owner != nil {
		owner.OnCleanup(fn)
	}
}
