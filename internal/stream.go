package internal

import "slices"

type Stream struct {
	rt *Runtime

	// used by EmitDefault, resolved on every call
	event Value

	// subscription order
	listeners []*Listener
}

func (r *Runtime) NewStream(event Value) *Stream {
	return &Stream{
		rt:    r,
		event: event,
	}
}

func (s *Stream) Runtime() *Runtime { return s.rt }

// Subscribe registers fn and returns its listener.
// The listener is owned by the current owner, if any.
func (s *Stream) Subscribe(fn func(any)) *Listener {
	if fn == nil {
		panic(NotFunc("event stream listener"))
	}

	l := newListener(s, fn)
	s.listeners = append(s.listeners, l)

	s.rt.observer.ListenerAdded()
	s.rt.tracker.Track(l)

	return l
}

// Remove drops the first entry with the same id as l and clears it.
// Listeners of other streams are ignored.
func (s *Stream) Remove(l *Listener) *Stream {
	if l == nil || l.stream != s {
		return s
	}

	for i, entry := range s.listeners {
		if !entry.Equals(l) {
			continue
		}

		s.listeners = slices.Delete(s.listeners, i, i+1)
		entry.clear()
		l.clear()
		s.rt.observer.ListenerRemoved()
		break
	}

	return s
}

func (s *Stream) RemoveAll() {
	for _, l := range s.listeners {
		l.clear()
		s.rt.observer.ListenerRemoved()
	}

	s.listeners = nil
}

// Emit delivers e to every listener registered when the call starts.
//
// The listener slice is copied before the first callback runs: listeners
// added by a callback wait for the next emission, and a listener disposed by
// a callback is skipped because disposal clears it. Paused and disposed
// listeners are not counted.
func (s *Stream) Emit(e any) int {
	snapshot := slices.Clone(s.listeners)

	count := 0
	for _, l := range snapshot {
		if l.paused || l.fn == nil {
			continue
		}

		l.Notify(e)
		count++
	}

	s.rt.observer.Emitted(count)

	return count
}

// EmitDefault emits the stream's default event.
func (s *Stream) EmitDefault() int {
	return s.Emit(s.event.Get())
}

func (s *Stream) CountListeners() int {
	return len(s.listeners)
}
