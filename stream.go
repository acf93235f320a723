package frp

import (
	"time"

	"github.com/AnatoleLucet/frp/internal"
)

// EventStream is a multicast source of events of type T.
type EventStream[T any] struct {
	stream *internal.Stream
}

// NewEventStream creates a stream without a default event.
func NewEventStream[T any]() *EventStream[T] {
	return wrapStream[T](internal.GetRuntime().NewStream(internal.Value{}))
}

// NewEventStreamWithDefault creates a stream whose EmitDefault emits def.
// A Computed default is evaluated on every EmitDefault.
func NewEventStreamWithDefault[T any](def Value[T]) *EventStream[T] {
	return wrapStream[T](internal.GetRuntime().NewStream(def.value))
}

func wrapStream[T any](s *internal.Stream) *EventStream[T] {
	return &EventStream[T]{s}
}

// ForEach subscribes fn to the stream. It panics with ErrNotFunc if fn is nil.
func (s *EventStream[T]) ForEach(fn func(T)) *Listener[T] {
	if fn == nil {
		panic(internal.NotFunc("EventStream.ForEach"))
	}

	return &Listener[T]{s.stream.Subscribe(func(e any) { fn(as[T](e)) })}
}

// Remove unsubscribes l. Listeners of other streams are ignored.
func (s *EventStream[T]) Remove(l *Listener[T]) *EventStream[T] {
	if l != nil {
		s.stream.Remove(l.listener)
	}

	return s
}

// RemoveAll unsubscribes every listener. Existing handles become inert.
func (s *EventStream[T]) RemoveAll() {
	s.stream.RemoveAll()
}

// Emit delivers e to the listeners subscribed when the call starts and
// returns how many of them received it. Paused listeners are skipped.
func (s *EventStream[T]) Emit(e T) int {
	return s.stream.Emit(e)
}

// EmitDefault emits the stream's default event (the zero value if it has none).
func (s *EventStream[T]) EmitDefault() int {
	return s.stream.EmitDefault()
}

// CountListeners returns the number of subscribed listeners.
func (s *EventStream[T]) CountListeners() int {
	return s.stream.CountListeners()
}

// Merge merges s and other.
func (s *EventStream[T]) Merge(other *EventStream[T]) *EventStream[T] {
	return Merge(s, other)
}

// Collect emits mapper(e) for every event e accepted by filter.
func (s *EventStream[T]) Collect(filter func(T) bool, mapper func(T) T) *EventStream[T] {
	return Collect(s, filter, mapper)
}

// Filter emits the events accepted by p.
func (s *EventStream[T]) Filter(p func(T) bool) *EventStream[T] {
	if p == nil {
		panic(internal.NotFunc("EventStream.Filter"))
	}

	return Collect(s, p, identity[T])
}

// Map emits fn(e) for every event e. See the package function Map to change the event type.
func (s *EventStream[T]) Map(fn func(T) T) *EventStream[T] {
	return Map(s, fn)
}

// FlatMap forwards the events of the stream fn returns for the latest event.
func (s *EventStream[T]) FlatMap(fn func(T) *EventStream[T]) *EventStream[T] {
	return FlatMap(s, fn)
}

// Fold emits the running accumulation of the events, starting from initial.
func (s *EventStream[T]) Fold(fn func(acc, e T) T, initial T) *EventStream[T] {
	return Fold(s, fn, initial)
}

// Distinct drops events equal to the previously emitted one.
// Comparable values use ==, others reflect.DeepEqual.
func (s *EventStream[T]) Distinct() *EventStream[T] {
	return wrapStream[T](s.stream.Distinct(nil))
}

// DistinctFunc is Distinct with a custom equality.
func (s *EventStream[T]) DistinctFunc(eq func(a, b T) bool) *EventStream[T] {
	if eq == nil {
		panic(internal.NotFunc("EventStream.DistinctFunc"))
	}

	return wrapStream[T](s.stream.Distinct(func(a, b any) bool {
		return eq(as[T](a), as[T](b))
	}))
}

// Throttle emits the latest event once d has passed without a new one
// (trailing-edge debounce). It runs on the loop of the calling goroutine.
func (s *EventStream[T]) Throttle(d time.Duration) *EventStream[T] {
	return wrapStream[T](s.stream.Throttle(d))
}

// Defer re-emits every event after wait, 100ms when wait <= 0.
// It runs on the loop of the calling goroutine.
func (s *EventStream[T]) Defer(wait time.Duration) *EventStream[T] {
	return wrapStream[T](s.stream.Defer(wait))
}

// Pipe forwards every event into target and returns it.
// A nil target is replaced by a new stream.
func (s *EventStream[T]) Pipe(target *EventStream[T]) *EventStream[T] {
	if target == nil {
		return wrapStream[T](s.stream.Pipe(nil))
	}

	s.stream.Pipe(target.stream)
	return target
}

// Broadcast pipes s into every non-nil target and returns s.
func (s *EventStream[T]) Broadcast(targets ...*EventStream[T]) *EventStream[T] {
	for _, target := range targets {
		if target != nil {
			s.stream.Pipe(target.stream)
		}
	}

	return s
}

// Once emits the first event only.
func (s *EventStream[T]) Once() *EventStream[T] {
	return wrapStream[T](s.stream.Once())
}

// Take forwards events until more than n went through: n+1 events in total.
func (s *EventStream[T]) Take(n int) *EventStream[T] {
	return wrapStream[T](s.stream.Take(n))
}

// TakeAfter drops the first n events and forwards the rest.
func (s *EventStream[T]) TakeAfter(n int) *EventStream[T] {
	return wrapStream[T](s.stream.TakeAfter(n))
}

// TakeWhile forwards events while p holds and detaches on the first failure,
// without forwarding the failing event.
func (s *EventStream[T]) TakeWhile(p func(T) bool) *EventStream[T] {
	if p == nil {
		panic(internal.NotFunc("EventStream.TakeWhile"))
	}

	return wrapStream[T](s.stream.TakeWhile(func(e any) bool { return p(as[T](e)) }))
}

// TakeUntil forwards events until p holds.
func (s *EventStream[T]) TakeUntil(p func(T) bool) *EventStream[T] {
	if p == nil {
		panic(internal.NotFunc("EventStream.TakeUntil"))
	}

	return wrapStream[T](s.stream.TakeUntil(func(e any) bool { return p(as[T](e)) }))
}
