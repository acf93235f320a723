package internal

// Shaper turns the current value into the event emitted on change.
type Shaper interface {
	Shape(value any, s *Signal) any
}

type ShaperFunc func(value any, s *Signal) any

func (f ShaperFunc) Shape(value any, s *Signal) any { return f(value, s) }

// Strategy decides what a write to a writable signal does.
type Strategy interface {
	Update(s *Signal, v any)
}

// compareAndNotify stores and notifies only when the comparator reports a change.
type compareAndNotify struct{}

func (compareAndNotify) Update(s *Signal, v any) {
	if s.Equals(v) {
		return
	}

	s.Store(v)
	s.Notify()
}

type SignalConfig struct {
	Comparator func(a, b any) bool
	Shaper     Shaper
	Strategy   Strategy
}

type Signal struct {
	value  Value
	events *Stream

	comparator func(a, b any) bool
	shaper     Shaper
	strategy   Strategy
}

func (r *Runtime) NewSignal(v Value, cfg SignalConfig) *Signal {
	s := &Signal{
		value:      v,
		events:     r.NewStream(Value{}),
		comparator: cfg.Comparator,
		shaper:     cfg.Shaper,
		strategy:   cfg.Strategy,
	}

	if s.comparator == nil {
		s.comparator = Equal
	}
	if s.strategy == nil {
		s.strategy = compareAndNotify{}
	}

	return s
}

func (s *Signal) Events() *Stream { return s.events }

// Now returns the current value, evaluating it for computed signals.
func (s *Signal) Now() any {
	return s.value.Get()
}

// Readonly reports whether the value slot holds a computation.
func (s *Signal) Readonly() bool {
	return s.value.IsComputed()
}

// Update is ignored on read-only signals.
func (s *Signal) Update(v any) {
	if s.Readonly() {
		return
	}

	s.strategy.Update(s, v)
}

func (s *Signal) Equals(v any) bool {
	return s.comparator(s.value.Get(), v)
}

// Store replaces the value without comparing or notifying.
func (s *Signal) Store(v any) {
	s.value = Fixed(v)
}

// Notify emits the current value, shaped if a shaper was configured.
func (s *Signal) Notify() {
	e := s.Now()
	if s.shaper != nil {
		e = s.shaper.Shape(e, s)
	}

	s.events.Emit(e)
}

// Emit sends e on the change stream as is.
func (s *Signal) Emit(e any) int {
	return s.events.Emit(e)
}

func (s *Signal) Subscribe(fn func(any)) *Listener {
	return s.events.Subscribe(fn)
}

// onChange runs fn after every change notification. The payload is ignored:
// derived signals read the source value, so shaped envelopes never reach
// their functions.
func (s *Signal) onChange(fn func()) *Listener {
	return s.events.Subscribe(func(any) { fn() })
}

// Collect derives a signal holding fn(v) for every source value v accepted by p.
// When p rejects the current value the derived signal starts empty.
func (s *Signal) Collect(p func(any) bool, fn func(any) any) *Signal {
	if p == nil {
		panic(NotFunc("signal collect predicate"))
	}
	if fn == nil {
		fn = identity
	}

	rt := s.events.rt
	collected := rt.NewSignal(Value{}, SignalConfig{})
	if v := s.Now(); p(v) {
		collected.Store(fn(v))
	}

	s.onChange(func() {
		if v := s.Now(); p(v) {
			collected.Update(fn(v))
		}
	})

	return collected
}

// Fold seeds the result with fn(initial, now) and folds every later value into it.
func (s *Signal) Fold(fn func(acc, v any) any, initial any) *Signal {
	if fn == nil {
		panic(NotFunc("signal fold"))
	}

	current := fn(initial, s.Now())
	return s.accumulate(fn, current)
}

// Reduce is Fold seeded with the current value.
func (s *Signal) Reduce(fn func(acc, v any) any) *Signal {
	if fn == nil {
		panic(NotFunc("signal reduce"))
	}

	return s.accumulate(fn, s.Now())
}

func (s *Signal) accumulate(fn func(acc, v any) any, current any) *Signal {
	folded := s.events.rt.NewSignal(Fixed(current), SignalConfig{})
	s.onChange(func() {
		current = fn(current, s.Now())
		folded.Update(current)
	})

	return folded
}

func (r *Runtime) Constant(v any) *Signal {
	return r.NewSignal(Computed(func() any { return v }), SignalConfig{})
}

// Derive returns a read-only signal computed by fn on every read, notifying
// whenever one of the sources changes.
func (r *Runtime) Derive(fn func() any, sources []*Signal) *Signal {
	derived := r.NewSignal(Computed(fn), SignalConfig{})

	for _, src := range sources {
		if src != nil {
			src.onChange(derived.Notify)
		}
	}

	return derived
}
