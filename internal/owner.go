package internal

import (
	"iter"
)

// Owner collects the listeners created while it runs so a whole graph of
// derived streams can be torn down at once.
type Owner struct {
	rt *Runtime

	// listeners subscribed while this owner was current
	listeners []*Listener

	// cleanup functions run once, on the first Dispose
	cleanups []func()

	// run on every Dispose
	disposers []func()

	// panic handlers
	catchers []func(any)

	parent       *Owner
	prevSibling  *Owner
	nextSibling  *Owner
	childrenHead *Owner
}

// NewOwner creates an owner attached to the current owner, if any.
func (r *Runtime) NewOwner() *Owner {
	o := &Owner{
		rt:       r,
		cleanups: make([]func(), 0),
	}

	if parent := r.CurrentOwner(); parent != nil {
		parent.AddChild(o)
	}

	return o
}

// Run calls fn with o as the current owner. A panic is handed to the OnError
// handlers, or propagates when there are none.
func (o *Owner) Run(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if len(o.catchers) == 0 {
				panic(r)
			}

			Logger("owner").Debug("recovered panic", "panic", r)
			for _, catcher := range o.catchers {
				catcher(r)
			}
		}
	}()

	o.rt.tracker.RunWithOwner(o, func() {
		err = fn()
	})

	return err
}

func (parent *Owner) AddChild(child *Owner) {
	child.parent = parent
	child.prevSibling = nil
	child.nextSibling = parent.childrenHead

	if parent.childrenHead != nil {
		parent.childrenHead.prevSibling = child
	}

	parent.childrenHead = child
}

func (o *Owner) Children() iter.Seq[*Owner] {
	return func(yield func(*Owner) bool) {
		child := o.childrenHead

		for child != nil {
			if !yield(child) {
				return
			}

			child = child.nextSibling
		}
	}
}

func (o *Owner) Track(l *Listener) {
	o.listeners = append(o.listeners, l)
}

// Dispose disposes the children, then the owned listeners, then runs the cleanups.
func (o *Owner) Dispose() {
	o.DisposeChildren()

	for _, l := range o.listeners {
		l.Dispose()
	}
	o.listeners = nil

	for i := 0; i < len(o.cleanups); i++ {
		o.cleanups[i]()
	}
	o.cleanups = nil

	for _, fn := range o.disposers {
		fn()
	}
}

func (o *Owner) DisposeChildren() {
	for child := range o.Children() {
		child.Dispose()
	}
	o.childrenHead = nil
}

func (o *Owner) OnCleanup(fn func()) {
	o.cleanups = append(o.cleanups, fn)
}

func (o *Owner) OnDispose(fn func()) {
	o.disposers = append(o.disposers, fn)
}

func (o *Owner) OnError(fn func(any)) {
	o.catchers = append(o.catchers, fn)
}
