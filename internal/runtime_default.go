//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// runtimes maps goroutine ids to their runtime
var runtimes sync.Map

// GetRuntime returns the runtime bound to the calling goroutine, creating it on first use.
func GetRuntime() *Runtime {
	gid := goid.Get()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	actual, _ := runtimes.LoadOrStore(gid, NewRuntime())
	return actual.(*Runtime)
}

// ReleaseRuntime forgets the calling goroutine's runtime. Streams created
// earlier keep their runtime; later ones get a fresh one.
func ReleaseRuntime() {
	runtimes.Delete(goid.Get())
}
