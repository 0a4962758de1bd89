// Package engine assembles the real-time input and output callbacks
// (C5, C6) and wires them to the device, tracks, playback sources,
// transport and queues at startup (C10). Nothing in this package
// allocates, takes a lock, or performs I/O once the streams are
// running.
package engine

import "sync/atomic"

// MixArmFlag is the single atomic bool gating whether the input
// callback also pushes (L,R) to the mix queue each frame. Set or
// cleared by the UI.
type MixArmFlag struct {
	armed atomic.Bool
}

func (f *MixArmFlag) Set(v bool) { f.armed.Store(v) }
func (f *MixArmFlag) Get() bool  { return f.armed.Load() }
