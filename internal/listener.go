package internal

import "sync/atomic"

// ids are only required to be unique, never ordered
var listenerIDs atomic.Uint64

type Listener struct {
	stream *Stream
	fn     func(any)

	id     uint64
	count  int
	paused bool
}

func newListener(s *Stream, fn func(any)) *Listener {
	return &Listener{
		stream: s,
		fn:     fn,
		id:     listenerIDs.Add(1),
	}
}

func (l *Listener) ID() uint64      { return l.id }
func (l *Listener) Count() int      { return l.count }
func (l *Listener) Paused() bool    { return l.paused }
func (l *Listener) Disposed() bool  { return l.fn == nil }
func (l *Listener) Stream() *Stream { return l.stream }

// Equals compares listeners by id so a stream can find the exact entry it registered.
func (l *Listener) Equals(other *Listener) bool {
	return other != nil && l.id == other.id
}

func (l *Listener) Pause() *Listener {
	l.paused = true
	return l
}

func (l *Listener) Resume() *Listener {
	l.paused = false
	return l
}

// Dispose detaches the listener from its stream and makes it inert.
// Disposing twice is a no-op.
func (l *Listener) Dispose() {
	if l.stream == nil {
		return
	}

	l.stream.Remove(l)
	l.clear()
}

// Notify invokes the callback unless the listener is paused or disposed.
func (l *Listener) Notify(e any) *Listener {
	if l.paused || l.fn == nil {
		return l
	}

	l.fn(e)
	l.count++

	return l
}

func (l *Listener) clear() {
	l.stream = nil
	l.fn = nil
}
