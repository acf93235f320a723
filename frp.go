// Package frp is a small push-based functional reactive core.
//
// An EventStream delivers discrete events synchronously to its listeners, in
// subscription order. Combinators (Map, Filter, Fold, Distinct, FlatMap,
// Throttle, ...) return new streams driven by an internal subscription on
// their source. A Signal is a value cell whose changes are published on an
// internal EventStream; derived signals follow their sources for their whole
// lifetime.
//
// Everything runs on the goroutine that created it: streams and signals are
// bound to that goroutine's runtime, and time based combinators schedule on
// the runtime's Loop, which must be driven with Loop.Run or Loop.RunPending.
package frp

import "github.com/AnatoleLucet/frp/internal"

var (
	// ErrNotFunc is the cause of the panic raised when a combinator or
	// listener is given a nil function.
	ErrNotFunc = internal.ErrNotFunc

	// ErrNotStream is the cause of the panic raised when ListenTo is given a nil stream.
	ErrNotStream = internal.ErrNotStream
)

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

func identity[T any](v T) T { return v }

func always[T any](T) bool { return true }

// Value is either a fixed value or a computation evaluated on every read.
type Value[T any] struct {
	value internal.Value
}

// Fixed wraps v.
func Fixed[T any](v T) Value[T] {
	return Value[T]{internal.Fixed(v)}
}

// Computed wraps fn, which is called every time the value is read.
func Computed[T any](fn func() T) Value[T] {
	if fn == nil {
		panic(internal.NotFunc("Computed"))
	}

	return Value[T]{internal.Computed(func() any { return fn() })}
}

// Get returns the fixed value or the result of the computation.
func (v Value[T]) Get() T {
	return as[T](v.value.Get())
}

// IsComputed reports whether v wraps a computation.
func (v Value[T]) IsComputed() bool {
	return v.value.IsComputed()
}

// Observer receives instrumentation callbacks from the streams, signals and
// loop of a goroutine.
type Observer = internal.Observer

// SetObserver installs o on the calling goroutine's runtime.
// A nil observer disables instrumentation.
func SetObserver(o Observer) {
	internal.GetRuntime().SetObserver(o)
}

// Release forgets the calling goroutine's runtime: its loop, observer and
// current owner. Call it before a goroutine that used this package exits.
// Streams and signals created earlier keep working with the old runtime.
func Release() {
	internal.ReleaseRuntime()
}
