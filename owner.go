package frp

import "github.com/AnatoleLucet/frp/internal"

// Owner groups the subscriptions created while it runs, including the
// internal ones made by combinators, so they can be disposed together.
type Owner struct {
	owner *internal.Owner
}

// NewOwner creates an owner. Created inside another owner's Run, it is
// disposed along with that owner.
func NewOwner() *Owner {
	return &Owner{
		internal.GetRuntime().NewOwner(),
	}
}

// Run a function within the context of this owner.
// Every listener subscribed during fn, directly or through a combinator,
// belongs to this owner and is disposed by Dispose.
func (o *Owner) Run(fn func() error) error { return o.owner.Run(fn) }

// Dispose this owner, its children and every listener it owns.
func (o *Owner) Dispose() { o.owner.Dispose() }

// Add a cleanup function to be called ONCE when the owner is disposed.
func (o *Owner) OnCleanup(fn func()) { o.owner.OnCleanup(fn) }

// Add a function to be called when the owner is disposed (each time Dispose is called).
func (o *Owner) OnDispose(fn func()) { o.owner.OnDispose(fn) }

// Add a function to be called when a panic occurs within Run.
// If no error listener is registered, the panic will propagate as usual.
func (o *Owner) OnError(fn func(any)) { o.owner.OnError(fn) }

// OnCleanup registers fn on the current owner. Outside of Run it does nothing.
func OnCleanup(fn func()) {
	internal.GetRuntime().OnCleanup(fn)
}
