package frp

import "github.com/AnatoleLucet/frp/internal"

// Collect emits mapper(e) for every event e of s accepted by filter.
// It panics with ErrNotFunc if either function is nil.
func Collect[T, U any](s *EventStream[T], filter func(T) bool, mapper func(T) U) *EventStream[U] {
	if filter == nil || mapper == nil {
		panic(internal.NotFunc("Collect"))
	}

	return wrapStream[U](s.stream.Collect(
		func(e any) bool { return filter(as[T](e)) },
		func(e any) any { return mapper(as[T](e)) },
	))
}

// Map emits fn(e) for every event e of s.
func Map[T, U any](s *EventStream[T], fn func(T) U) *EventStream[U] {
	if fn == nil {
		panic(internal.NotFunc("Map"))
	}

	return Collect(s, always[T], fn)
}

// FlatMap forwards the events of the stream fn returns for the latest event
// of s (switch-latest). The previous inner stream is unsubscribed before fn
// runs; a nil inner stream forwards nothing.
func FlatMap[T, U any](s *EventStream[T], fn func(T) *EventStream[U]) *EventStream[U] {
	if fn == nil {
		panic(internal.NotFunc("FlatMap"))
	}

	return wrapStream[U](s.stream.FlatMap(func(e any) *internal.Stream {
		inner := fn(as[T](e))
		if inner == nil {
			return nil
		}

		return inner.stream
	}))
}

// Fold emits acc = fn(acc, e) for every event e of s, starting from initial.
func Fold[T, A any](s *EventStream[T], fn func(acc A, e T) A, initial A) *EventStream[A] {
	if fn == nil {
		panic(internal.NotFunc("Fold"))
	}

	return wrapStream[A](s.stream.Fold(func(acc, e any) any {
		return fn(as[A](acc), as[T](e))
	}, initial))
}

// Merge forwards the events of every non-nil stream into a single stream,
// in the order the sources emit them.
func Merge[T any](streams ...*EventStream[T]) *EventStream[T] {
	return MergeSlice(streams)
}

// MergeSlice is Merge for a slice of streams.
func MergeSlice[T any](streams []*EventStream[T]) *EventStream[T] {
	sources := make([]*internal.Stream, 0, len(streams))
	for _, s := range streams {
		if s != nil {
			sources = append(sources, s.stream)
		}
	}

	return wrapStream[T](internal.GetRuntime().Merge(sources))
}

// CreateStreams creates one stream per name, each with its own default event.
func CreateStreams[T any](defaults map[string]T) map[string]*EventStream[T] {
	streams := make(map[string]*EventStream[T], len(defaults))
	for name, event := range defaults {
		streams[name] = NewEventStreamWithDefault(Fixed(event))
	}

	return streams
}

// ListenTo is s.ForEach(fn). It panics with ErrNotStream if s is nil.
func ListenTo[T any](s *EventStream[T], fn func(T)) *Listener[T] {
	if s == nil {
		panic(internal.NotStream("ListenTo"))
	}

	return s.ForEach(fn)
}
