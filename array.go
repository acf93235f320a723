package frp

import (
	"slices"

	"github.com/AnatoleLucet/frp/internal"
)

// ArrayChange is the event published by an ArraySignal: the elements that
// appeared, the ones that disappeared and the complete new value.
type ArrayChange[T any] struct {
	Add    []T
	Remove []T
	Value  []T
}

// Empty reports whether the change neither adds nor removes anything.
func (c ArrayChange[T]) Empty() bool {
	return len(c.Add) == 0 && len(c.Remove) == 0
}

// ArraySignal is a slice signal publishing element-level diffs.
type ArraySignal[T comparable] struct {
	*cell[[]T]
}

// NewArraySignal creates an array signal. A nil slice starts empty.
func NewArraySignal[T comparable](xs []T) *ArraySignal[T] {
	if xs == nil {
		xs = []T{}
	}

	cfg := internal.SignalConfig{
		Strategy: differ[T]{},
		Shaper: internal.ShaperFunc(func(v any, _ *internal.Signal) any {
			return ArrayChange[T]{Value: as[[]T](v)}
		}),
	}

	return &ArraySignal[T]{newCell[[]T](internal.GetRuntime().NewSignal(internal.Fixed(xs), cfg))}
}

func (s *ArraySignal[T]) signal() *internal.Signal {
	if s == nil {
		return nil
	}

	return s.cell.signal()
}

// Diff compares xs with the current value.
func (s *ArraySignal[T]) Diff(xs []T) ArrayChange[T] {
	return diff(s.Now(), xs)
}

// ForEach subscribes fn to the change events.
func (s *ArraySignal[T]) ForEach(fn func(ArrayChange[T])) *Listener[ArrayChange[T]] {
	return s.Changes().ForEach(fn)
}

// Changes returns the stream of change events.
func (s *ArraySignal[T]) Changes() *EventStream[ArrayChange[T]] {
	return wrapStream[ArrayChange[T]](s.sig.Events())
}

// differ stores a new slice only when elements were added or removed.
type differ[T comparable] struct{}

func (differ[T]) Update(s *internal.Signal, v any) {
	next := as[[]T](v)

	change := diff(as[[]T](s.Now()), next)
	if change.Empty() {
		return
	}

	s.Store(next)
	change.Value = next
	s.Emit(change)
}

func diff[T comparable](prev, next []T) ArrayChange[T] {
	var change ArrayChange[T]

	for _, x := range next {
		if !slices.Contains(prev, x) {
			change.Add = append(change.Add, x)
		}
	}
	for _, x := range prev {
		if !slices.Contains(next, x) {
			change.Remove = append(change.Remove, x)
		}
	}

	return change
}
