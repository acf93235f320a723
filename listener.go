package frp

import "github.com/AnatoleLucet/frp/internal"

// Listener is the subscription returned by EventStream.ForEach.
type Listener[T any] struct {
	listener *internal.Listener
}

// Pause stops notifications without unsubscribing.
func (l *Listener[T]) Pause() *Listener[T] {
	l.listener.Pause()
	return l
}

// Resume undoes Pause.
func (l *Listener[T]) Resume() *Listener[T] {
	l.listener.Resume()
	return l
}

func (l *Listener[T]) Paused() bool { return l.listener.Paused() }

// Dispose unsubscribes the listener for good. Disposing twice is a no-op.
func (l *Listener[T]) Dispose() { l.listener.Dispose() }

// Disposed reports whether the listener was disposed or removed from its stream.
func (l *Listener[T]) Disposed() bool { return l.listener.Disposed() }

// Notify calls the callback with e, unless the listener is paused or disposed.
func (l *Listener[T]) Notify(e T) *Listener[T] {
	l.listener.Notify(e)
	return l
}

// Count returns how many times the callback ran.
func (l *Listener[T]) Count() int { return l.listener.Count() }

// ID returns the listener's process-wide unique id.
func (l *Listener[T]) ID() uint64 { return l.listener.ID() }

// Equals reports whether l and other are handles to the same subscription.
func (l *Listener[T]) Equals(other *Listener[T]) bool {
	return other != nil && l.listener.Equals(other.listener)
}
