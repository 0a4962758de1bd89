// Package track holds the per-input-channel control block read every
// frame by the real-time input callback and written at any time by the
// UI. Every field is independently atomic; the teacher framework's
// parameter type (pkg/framework/param.Parameter, reused here for its
// float32-via-atomic.Uint32 storage trick) stored a single normalized
// host-automatable value behind min/max/formatter metadata we don't
// need, so this is a from-scratch, much smaller block with exactly the
// six fields spec.md §3 names - no cross-field consistency is promised
// or required.
package track

import (
	"math"
	"sync/atomic"
)

// Track is the atomic control-and-meter block for one input channel.
// Created once at engine start (one per device input channel) and lives
// for the engine's lifetime.
type Track struct {
	arm     atomic.Bool
	monitor atomic.Bool
	solo    atomic.Bool
	level   atomic.Uint32 // float32 bits, default 1.0
	pan     atomic.Uint32 // float32 bits, default 0.0
	peak    atomic.Uint32 // float32 bits, max(|sample|) since last reset
}

// New returns a Track at the spec's defaults: arm/monitor/solo false,
// level 1.0, pan 0.0.
func New() *Track {
	t := &Track{}
	t.level.Store(math.Float32bits(1.0))
	return t
}

func (t *Track) Arm() bool        { return t.arm.Load() }
func (t *Track) SetArm(v bool)    { t.arm.Store(v) }
func (t *Track) Monitor() bool    { return t.monitor.Load() }
func (t *Track) SetMonitor(v bool) { t.monitor.Store(v) }
func (t *Track) Solo() bool       { return t.solo.Load() }
func (t *Track) SetSolo(v bool)   { t.solo.Store(v) }

// Level returns the current gain in [0,1].
func (t *Track) Level() float32 { return math.Float32frombits(t.level.Load()) }

// SetLevel clamps to [0,1] and stores.
func (t *Track) SetLevel(v float32) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	t.level.Store(math.Float32bits(v))
}

// Pan returns the current pan position in [-1,1].
func (t *Track) Pan() float32 { return math.Float32frombits(t.pan.Load()) }

// SetPan clamps to [-1,1] and stores.
func (t *Track) SetPan(v float32) {
	if v < -1 {
		v = -1
	} else if v > 1 {
		v = 1
	}
	t.pan.Store(math.Float32bits(v))
}

// Peak returns the peak meter value since the last Reset.
func (t *Track) Peak() float32 { return math.Float32frombits(t.peak.Load()) }

// UpdatePeak stores max(current peak, |sample|). Called from the input
// callback every frame; relaxed by nature of the underlying atomic and
// safe for the UI to read concurrently.
func (t *Track) UpdatePeak(sample float32) {
	if sample < 0 {
		sample = -sample
	}
	for {
		cur := t.peak.Load()
		if sample <= math.Float32frombits(cur) {
			return
		}
		if t.peak.CompareAndSwap(cur, math.Float32bits(sample)) {
			return
		}
	}
}

// ResetPeak clears the peak meter. Called periodically by the UI.
func (t *Track) ResetPeak() { t.peak.Store(0) }
