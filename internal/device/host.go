// Package device wraps the audio backend behind a small capability
// interface so the engine's real-time callbacks stay backend-agnostic
// (spec note: "dynamic dispatch over audio backends" - a minimal
// trait-like capability set plus a pair of callback registrations).
package device

import "time"

// InputCallback receives one block of interleaved input samples:
// numChannels*numFrames float32 values.
type InputCallback func(in []float32, numFrames, numChannels int)

// OutputCallback fills one block of interleaved output samples:
// numChannels*numFrames float32 values.
type OutputCallback func(out []float32, numFrames, numChannels int)

// Info describes one enumerated audio device, enough for selection and
// for the CLI's --list-devices output.
type Info struct {
	Index              int
	Name               string
	MaxInputChannels   int
	MaxOutputChannels  int
	DefaultSampleRate  float64
	DefaultLowLatency  time.Duration
	DefaultHighLatency time.Duration
}

// Config is the resolved stream configuration C10 hands to a Host.
type Config struct {
	Input           Info
	Output          Info
	SampleRate      float64
	FramesPerBuffer int
}

// Host is the capability set C10 needs from an audio backend: start,
// stop, query channels and rates, plus a pair of callback
// registrations. The real-time callback bodies (engine.Input.Process /
// engine.Output.Process) never see a Host - they are wired to it by
// C10 at Open time and never touch backend-specific types.
type Host interface {
	// Devices enumerates the backend's audio devices.
	Devices() ([]Info, error)

	// DefaultInput / DefaultOutput return the backend's default
	// devices.
	DefaultInput() (Info, error)
	DefaultOutput() (Info, error)

	// SupportsSampleRate reports whether cfg.Input/cfg.Output can run
	// at the given rate.
	SupportsSampleRate(cfg Config, rate float64) bool

	// Open configures and opens (but does not start) input and output
	// streams against cfg, wiring the given callbacks.
	Open(cfg Config, in InputCallback, out OutputCallback) error

	// Start begins stream callbacks.
	Start() error

	// Stop halts stream callbacks without releasing the device.
	Stop() error

	// Close releases the device and any backend-global state.
	Close() error
}
