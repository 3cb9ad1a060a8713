package indexer

import "sync/atomic"

// Gate states.
const (
	idle int32 = iota
	running
)

// gate is the single-flight guard for indexing passes: at most one pass
// runs at a time, an overlapping call is dropped rather than queued.
type gate struct {
	state atomic.Int32
}

// enter attempts to start a pass. Returns false when one is already running.
func (g *gate) enter() bool {
	return g.state.CompareAndSwap(idle, running)
}

// leave ends the current pass.
func (g *gate) leave() {
	g.state.Store(idle)
}

// busy reports whether a pass is currently running.
func (g *gate) busy() bool {
	return g.state.Load() == running
}
