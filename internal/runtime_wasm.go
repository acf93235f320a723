//go:build wasm

package internal

import "sync"

// wasm programs are driven by the host event loop, one runtime serves everything
var (
	mu            sync.Mutex
	globalRuntime *Runtime
)

func GetRuntime() *Runtime {
	mu.Lock()
	defer mu.Unlock()

	if globalRuntime == nil {
		globalRuntime = NewRuntime()
	}

	return globalRuntime
}

func ReleaseRuntime() {
	mu.Lock()
	defer mu.Unlock()

	globalRuntime = nil
}
