// Package transport implements the MIDI-driven recording state machine
// shared between the MIDI listener (the writer), the engine's
// callbacks (readers), and the UI (reader, and writer for shutdown).
package transport

import "sync/atomic"

// State is one of the three transport states.
type State uint32

const (
	// Idle: no recording or playback advance. Default state.
	Idle State = iota
	// Armed: a Start message has been received; waiting for the first
	// Clock to begin Running.
	Armed
	// Running: recording and playback position advance every frame.
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Transport is the global atomic recording state machine. One instance
// is shared by the engine, the MIDI listener and the UI.
type Transport struct {
	state        atomic.Uint32
	frameCounter atomic.Uint64
	clockCount   atomic.Uint64

	onArm func()
}

// New returns a Transport in the Idle state.
func New() *Transport {
	return &Transport{}
}

// State returns the current transport state.
func (tr *Transport) State() State {
	return State(tr.state.Load())
}

// FrameCounter returns the number of frames recorded in the current
// Running span. Only advances while Running.
func (tr *Transport) FrameCounter() uint64 { return tr.frameCounter.Load() }

// ClockCount returns the number of MIDI Clock messages seen since the
// last Start.
func (tr *Transport) ClockCount() uint64 { return tr.clockCount.Load() }

// OnArm registers a hook run synchronously on every successful
// Idle->Armed transition, after clock_count is reset - the engine uses
// it to reset every playback source's play-head to 0 per the
// transition table. Only one hook is kept; a later call replaces the
// previous one. Must be set before Start can race with it (i.e. during
// engine assembly, before the MIDI listener starts).
func (tr *Transport) OnArm(fn func()) {
	tr.onArm = fn
}

// Start applies a MIDI Start message: Idle -> Armed. Resets clock
// count and runs the OnArm hook, if any. A Start received while Armed
// or Running is ignored - only Idle accepts it, matching the
// transition table's single Idle->Armed edge.
func (tr *Transport) Start() bool {
	if !tr.state.CompareAndSwap(uint32(Idle), uint32(Armed)) {
		return false
	}
	tr.clockCount.Store(0)
	if tr.onArm != nil {
		tr.onArm()
	}
	return true
}

// Clock applies a MIDI Clock message. While Armed, the first clock
// transitions to Running and sets clock_count = 1. While Running, it
// increments clock_count. Clocks received while Idle are ignored.
func (tr *Transport) Clock() {
	for {
		cur := State(tr.state.Load())
		switch cur {
		case Armed:
			if tr.state.CompareAndSwap(uint32(Armed), uint32(Running)) {
				tr.clockCount.Store(1)
				tr.frameCounter.Store(0)
				return
			}
			// lost race, retry
		case Running:
			tr.clockCount.Add(1)
			return
		default:
			return
		}
	}
}

// Stop applies a MIDI Stop message (or a UI shutdown, which behaves
// identically): Armed or Running -> Idle. Idle Stops are a no-op.
func (tr *Transport) Stop() {
	for {
		cur := State(tr.state.Load())
		if cur == Idle {
			return
		}
		if tr.state.CompareAndSwap(uint32(cur), uint32(Idle)) {
			return
		}
	}
}

// Shutdown applies the "UI shutdown" signal, which the transition
// table defines identically to Stop.
func (tr *Transport) Shutdown() { tr.Stop() }

// Recording reports whether the input callback should be recording
// and advancing playback this frame.
func (tr *Transport) Recording() bool { return tr.State() == Running }

// IncrementFrameCounter advances the frame counter. Called by the
// input callback once per frame while Recording.
func (tr *Transport) IncrementFrameCounter() { tr.frameCounter.Add(1) }

// ResetFrameCounter zeroes the frame counter. Clock already does the
// same reset itself when a new Running span begins (first Clock after
// Start); no other code in this module calls ResetFrameCounter.
func (tr *Transport) ResetFrameCounter() { tr.frameCounter.Store(0) }
