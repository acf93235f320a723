package internal

// Observer receives instrumentation callbacks from streams and the scheduler.
// Callbacks run inline on the emitting goroutine and must not block.
type Observer interface {
	ListenerAdded()
	ListenerRemoved()
	Emitted(delivered int)
	TimerScheduled()
	TimerFired()
	TimerStopped()
}

type NopObserver struct{}

func (NopObserver) ListenerAdded()   {}
func (NopObserver) ListenerRemoved() {}
func (NopObserver) Emitted(int)      {}
func (NopObserver) TimerScheduled()  {}
func (NopObserver) TimerFired()      {}
func (NopObserver) TimerStopped()    {}
