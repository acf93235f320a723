package internal

import "sync"

// PostQueue collects callbacks handed over from other goroutines until the
// scheduler's goroutine drains them.
type PostQueue struct {
	mu        sync.Mutex
	callbacks []func()
}

func NewPostQueue() *PostQueue {
	return &PostQueue{
		callbacks: make([]func(), 0),
	}
}

func (q *PostQueue) Enqueue(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.callbacks = append(q.callbacks, fn)
}

func (q *PostQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.callbacks)
}

// Run executes the callbacks queued so far, in order. Callbacks enqueued
// while running wait for the next call.
func (q *PostQueue) Run() int {
	q.mu.Lock()
	callbacks := q.callbacks
	q.callbacks = make([]func(), 0)
	q.mu.Unlock()

	for _, cb := range callbacks {
		cb()
	}

	return len(callbacks)
}
