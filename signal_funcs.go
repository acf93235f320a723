package frp

import "github.com/AnatoleLucet/frp/internal"

// CollectSignal derives a signal holding fn(v) for every value v of s
// accepted by p. If p rejects the current value the derived signal starts at
// the zero value of U. Updates go through Signal.Update, so equal results do
// not notify.
func CollectSignal[T, U any](s Readable[T], p func(T) bool, fn func(T) U) *Signal[U] {
	if p == nil || fn == nil {
		panic(internal.NotFunc("CollectSignal"))
	}

	return wrapSignal[U](s.signal().Collect(
		func(v any) bool { return p(as[T](v)) },
		func(v any) any { return fn(as[T](v)) },
	))
}

// MapSignal derives a signal holding fn(v) for the current value v of s.
func MapSignal[T, U any](s Readable[T], fn func(T) U) *Signal[U] {
	if fn == nil {
		panic(internal.NotFunc("MapSignal"))
	}

	return CollectSignal(s, always[T], fn)
}

// FoldSignal derives a signal starting at fn(initial, s.Now()) and folding
// every later value of s into it.
func FoldSignal[T, A any](s Readable[T], fn func(acc A, v T) A, initial A) *Signal[A] {
	if fn == nil {
		panic(internal.NotFunc("FoldSignal"))
	}

	return wrapSignal[A](s.signal().Fold(func(acc, v any) any {
		return fn(as[A](acc), as[T](v))
	}, initial))
}

// IsReadonly reports whether s is computed and ignores writes.
// A nil signal is not read-only.
func IsReadonly(s Source) bool {
	if s == nil {
		return false
	}

	sig := s.signal()
	return sig != nil && sig.Readonly()
}

// Constant returns a read-only signal always holding v.
func Constant[T any](v T) *Signal[T] {
	return wrapSignal[T](internal.GetRuntime().Constant(v))
}

// Derive returns a read-only signal whose value is fn(), evaluated on every
// read. It notifies whenever one of the sources changes.
func Derive[T any](fn func() T, sources ...Source) *Signal[T] {
	if fn == nil {
		panic(internal.NotFunc("Derive"))
	}

	signals := make([]*internal.Signal, 0, len(sources))
	for _, src := range sources {
		if src == nil {
			continue
		}
		if sig := src.signal(); sig != nil {
			signals = append(signals, sig)
		}
	}

	return wrapSignal[T](internal.GetRuntime().Derive(func() any { return fn() }, signals))
}

// Zip returns a read-only signal holding the current values of signals, in
// order. It notifies whenever one of them changes.
func Zip[T any](signals ...*Signal[T]) *Signal[[]T] {
	live := make([]*Signal[T], 0, len(signals))
	sources := make([]Source, 0, len(signals))
	for _, s := range signals {
		if s != nil {
			live = append(live, s)
			sources = append(sources, s)
		}
	}

	return Derive(func() []T {
		values := make([]T, len(live))
		for i, s := range live {
			values[i] = s.Now()
		}

		return values
	}, sources...)
}

// Signals creates one independent signal per entry of values.
func Signals[K comparable, V any](values map[K]V) map[K]*Signal[V] {
	signals := make(map[K]*Signal[V], len(values))
	for k, v := range values {
		signals[k] = NewSignal(v)
	}

	return signals
}
