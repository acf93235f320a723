package internal

func identity(e any) any { return e }
func always(any) bool    { return true }

func (s *Stream) derive() *Stream {
	return s.rt.NewStream(Value{})
}

// Collect emits mapper(e) downstream for every event e accepted by filter.
func (s *Stream) Collect(filter func(any) bool, mapper func(any) any) *Stream {
	if filter == nil || mapper == nil {
		panic(NotFunc("collect"))
	}

	collected := s.derive()
	s.Subscribe(func(e any) {
		if filter(e) {
			collected.Emit(mapper(e))
		}
	})

	return collected
}

func (s *Stream) Filter(p func(any) bool) *Stream {
	if p == nil {
		panic(NotFunc("filter"))
	}

	return s.Collect(p, identity)
}

func (s *Stream) Map(fn func(any) any) *Stream {
	if fn == nil {
		panic(NotFunc("map"))
	}

	return s.Collect(always, fn)
}

// FlatMap forwards the events of the stream returned by fn for the latest
// source event. The previous inner subscription is disposed first, so at
// most one inner stream is live.
//
// Inner subscriptions belong to the owner current when FlatMap is called,
// not to whichever owner is running when the source emits.
func (s *Stream) FlatMap(fn func(any) *Stream) *Stream {
	if fn == nil {
		panic(NotFunc("flatMap"))
	}

	flat := s.derive()
	var inner *Listener
	detach := func() {
		if inner != nil {
			inner.Dispose()
			inner = nil
		}
	}

	if owner := s.rt.CurrentOwner(); owner != nil {
		owner.OnCleanup(detach)
	}

	s.Subscribe(func(e any) {
		detach()

		current := fn(e)
		if current == nil {
			return
		}

		current.rt.tracker.RunWithOwner(nil, func() {
			inner = current.Subscribe(func(e any) { flat.Emit(e) })
		})
	})

	return flat
}

func (s *Stream) Fold(fn func(acc, e any) any, initial any) *Stream {
	if fn == nil {
		panic(NotFunc("fold"))
	}

	folded := s.derive()
	acc := initial
	s.Subscribe(func(e any) {
		acc = fn(acc, e)
		folded.Emit(acc)
	})

	return folded
}

// Distinct drops events equal to the previously emitted one.
// A nil eq uses Equal.
func (s *Stream) Distinct(eq func(a, b any) bool) *Stream {
	if eq == nil {
		eq = Equal
	}

	distinct := s.derive()
	var (
		prev any
		seen bool
	)
	s.Subscribe(func(e any) {
		if seen && eq(prev, e) {
			return
		}

		prev, seen = e, true
		distinct.Emit(e)
	})

	return distinct
}

// Pipe forwards every event into target, creating it when nil.
func (s *Stream) Pipe(target *Stream) *Stream {
	if target == nil {
		target = s.derive()
	}

	s.Subscribe(func(e any) { target.Emit(e) })

	return target
}

func (s *Stream) Broadcast(targets ...*Stream) *Stream {
	for _, target := range targets {
		if target != nil {
			s.Pipe(target)
		}
	}

	return s
}

func (s *Stream) Once() *Stream {
	once := s.derive()
	var l *Listener
	l = s.Subscribe(func(e any) {
		once.Emit(e)
		l.Dispose()
	})

	return once
}

// Take detaches once more than n events went through, so n+1 events are
// forwarded in total.
func (s *Stream) Take(n int) *Stream {
	taken := s.derive()
	forwarded := 0
	var l *Listener
	l = s.Subscribe(func(e any) {
		taken.Emit(e)
		forwarded++
		if forwarded > n {
			l.Dispose()
		}
	})

	return taken
}

func (s *Stream) TakeAfter(n int) *Stream {
	taken := s.derive()
	count := 0
	s.Subscribe(func(e any) {
		count++
		if count > n {
			taken.Emit(e)
		}
	})

	return taken
}

// TakeWhile forwards events until p fails; the failing event is dropped.
func (s *Stream) TakeWhile(p func(any) bool) *Stream {
	if p == nil {
		panic(NotFunc("takeWhile"))
	}

	taken := s.derive()
	var l *Listener
	l = s.Subscribe(func(e any) {
		if !p(e) {
			l.Dispose()
			return
		}

		taken.Emit(e)
	})

	return taken
}

func (s *Stream) TakeUntil(p func(any) bool) *Stream {
	if p == nil {
		panic(NotFunc("takeUntil"))
	}

	return s.TakeWhile(func(e any) bool { return !p(e) })
}

// Merge forwards the events of every non-nil stream into one stream.
func (r *Runtime) Merge(streams []*Stream) *Stream {
	merged := r.NewStream(Value{})
	forward := func(e any) { merged.Emit(e) }

	for _, s := range streams {
		if s != nil {
			s.Subscribe(forward)
		}
	}

	return merged
}
