package frp

import "github.com/AnatoleLucet/frp/internal"

// Source is implemented by every signal type of this package.
type Source interface {
	signal() *internal.Signal
}

// Readable is a signal whose current value has type T.
type Readable[T any] interface {
	Source
	Now() T
}

// cell holds the behaviour shared by all signal types.
type cell[T any] struct {
	sig   *internal.Signal
	proxy func(...T) T
}

func newCell[T any](sig *internal.Signal) *cell[T] {
	return &cell[T]{sig: sig}
}

func (c *cell[T]) signal() *internal.Signal {
	if c == nil {
		return nil
	}

	return c.sig
}

// Now returns the current value. Read-only signals compute it on every call.
func (c *cell[T]) Now() T {
	return as[T](c.sig.Now())
}

// Val reads the value when called without arguments and updates it with v[0]
// otherwise. It returns the value after the update.
func (c *cell[T]) Val(v ...T) T {
	if len(v) > 0 {
		c.Update(v[0])
	}

	return c.Now()
}

// Update sets the value and notifies listeners if it differs from the
// current one. Writes to read-only signals are ignored.
func (c *cell[T]) Update(v T) {
	c.sig.Update(v)
}

// Unset updates the signal with the zero value of T.
func (c *cell[T]) Unset() {
	var zero T
	c.Update(zero)
}

// Readonly reports whether the signal is computed and ignores writes.
func (c *cell[T]) Readonly() bool {
	return c.sig.Readonly()
}

// Notify publishes the current value to listeners without changing it.
func (c *cell[T]) Notify() {
	c.sig.Notify()
}

// Proxy returns an accessor bound to the signal: called without arguments it
// reads, with one it writes. The same function is returned on every call.
func (c *cell[T]) Proxy() func(...T) T {
	if c.proxy == nil {
		c.proxy = c.Val
	}

	return c.proxy
}

// Collect derives a signal holding fn(v) for every value v accepted by p.
// A nil fn keeps the values as they are.
func (c *cell[T]) Collect(p func(T) bool, fn func(T) T) *Signal[T] {
	if fn == nil {
		fn = identity[T]
	}

	return CollectSignal[T, T](c, p, fn)
}

// Map derives a signal holding fn(v).
func (c *cell[T]) Map(fn func(T) T) *Signal[T] {
	return MapSignal[T, T](c, fn)
}

// Filter derives a signal following the values accepted by p.
func (c *cell[T]) Filter(p func(T) bool) *Signal[T] {
	return CollectSignal[T, T](c, p, identity[T])
}

// Fold derives a signal starting at fn(initial, now) and folding every later value into it.
func (c *cell[T]) Fold(fn func(acc, v T) T, initial T) *Signal[T] {
	return FoldSignal[T, T](c, fn, initial)
}

// Reduce is Fold seeded with the current value.
func (c *cell[T]) Reduce(fn func(acc, v T) T) *Signal[T] {
	if fn == nil {
		panic(internal.NotFunc("Signal.Reduce"))
	}

	return wrapSignal[T](c.sig.Reduce(func(acc, v any) any {
		return fn(as[T](acc), as[T](v))
	}))
}

type signalConfig[T any] struct {
	comparator func(a, b T) bool
}

// SignalOption configures a signal.
type SignalOption[T any] func(*signalConfig[T])

// WithComparator sets the equality used by Update to detect changes.
func WithComparator[T any](eq func(a, b T) bool) SignalOption[T] {
	return func(c *signalConfig[T]) {
		c.comparator = eq
	}
}

func applySignalOptions[T any](opts []SignalOption[T]) internal.SignalConfig {
	var cfg signalConfig[T]
	for _, opt := range opts {
		opt(&cfg)
	}

	var out internal.SignalConfig
	if eq := cfg.comparator; eq != nil {
		out.Comparator = func(a, b any) bool { return eq(as[T](a), as[T](b)) }
	}

	return out
}

// Signal is a value cell whose listeners receive the new value on every change.
type Signal[T any] struct {
	*cell[T]
}

// NewSignal creates a writable signal.
func NewSignal[T any](initial T, opts ...SignalOption[T]) *Signal[T] {
	cfg := applySignalOptions(opts)
	return wrapSignal[T](internal.GetRuntime().NewSignal(internal.Fixed(initial), cfg))
}

func wrapSignal[T any](sig *internal.Signal) *Signal[T] {
	return &Signal[T]{newCell[T](sig)}
}

func (s *Signal[T]) signal() *internal.Signal {
	if s == nil {
		return nil
	}

	return s.cell.signal()
}

// ForEach subscribes fn to the signal's changes.
func (s *Signal[T]) ForEach(fn func(T)) *Listener[T] {
	return s.Changes().ForEach(fn)
}

// Changes returns the stream the signal publishes its changes on.
func (s *Signal[T]) Changes() *EventStream[T] {
	return wrapStream[T](s.sig.Events())
}

// Shaper builds the event a ShapedSignal publishes for a new value.
type Shaper[T, E any] interface {
	Shape(value T, s *ShapedSignal[T, E]) E
}

// ShaperFunc adapts a function to Shaper.
type ShaperFunc[T, E any] func(value T, s *ShapedSignal[T, E]) E

func (f ShaperFunc[T, E]) Shape(value T, s *ShapedSignal[T, E]) E { return f(value, s) }

// ShapedSignal is a signal publishing custom events built by a Shaper
// instead of the raw value.
type ShapedSignal[T, E any] struct {
	*cell[T]
}

// NewShapedSignal creates a writable signal whose changes are published as
// shaper.Shape(value, signal). It panics with ErrNotFunc if shaper is nil.
func NewShapedSignal[T, E any](initial T, shaper Shaper[T, E], opts ...SignalOption[T]) *ShapedSignal[T, E] {
	if shaper == nil {
		panic(internal.NotFunc("NewShapedSignal"))
	}

	s := &ShapedSignal[T, E]{}

	cfg := applySignalOptions(opts)
	cfg.Shaper = internal.ShaperFunc(func(v any, _ *internal.Signal) any {
		return shaper.Shape(as[T](v), s)
	})
	s.cell = newCell[T](internal.GetRuntime().NewSignal(internal.Fixed(initial), cfg))

	return s
}

func (s *ShapedSignal[T, E]) signal() *internal.Signal {
	if s == nil {
		return nil
	}

	return s.cell.signal()
}

// ForEach subscribes fn to the shaped change events.
func (s *ShapedSignal[T, E]) ForEach(fn func(E)) *Listener[E] {
	return s.Changes().ForEach(fn)
}

// Changes returns the stream of shaped change events.
func (s *ShapedSignal[T, E]) Changes() *EventStream[E] {
	return wrapStream[E](s.sig.Events())
}
