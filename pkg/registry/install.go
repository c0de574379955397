package registry

import "sync/atomic"

// The process-wide registry. Trials across every worker read card records
// through handles at a very high rate; publishing the registry once,
// before any worker starts, and never mutating it afterwards is what
// makes those reads safe without a lock.
var installed atomic.Pointer[Registry]

// Install publishes reg as the process-wide registry. It must be called
// exactly once, before any simulation work begins; calling it a second
// time panics, because a swapped registry would invalidate every Handle
// already held by live game state.
func Install(reg *Registry) {
	if !installed.CompareAndSwap(nil, reg) {
		panic("registry: Install called twice")
	}
}

// Default returns the installed process-wide registry, panicking if
// Install has not run yet. Accessing card data before the registry
// exists is a programmer error, not a recoverable condition.
func Default() *Registry {
	reg := installed.Load()
	if reg == nil {
		panic("registry: not initialized, call Install first")
	}
	return reg
}
