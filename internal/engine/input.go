package engine

import (
	"github.com/stems-audio/stems/internal/audio"
	"github.com/stems-audio/stems/internal/playback"
	"github.com/stems-audio/stems/internal/track"
	"github.com/stems-audio/stems/internal/transport"
	"github.com/stems-audio/stems/pkg/dsp/pan"
)

// Input is the real-time input callback (C5). It owns no per-callback
// buffers: every read is from pre-allocated tracks/sources passed in
// at construction, and every push is to a pre-sized SPSC queue. No
// allocation, no mutex, no blocking call, no file or system I/O.
type Input struct {
	Tracks    []*track.Track
	Playback  []*playback.Source
	Transport *transport.Transport

	TrackQueue   pusher[audio.RecordedSample]
	MonitorQueue pusher[audio.StereoFrame]
	MixQueue     pusher[audio.StereoFrame]

	// MixArm gates whether (L,R) is also pushed to the mix queue each
	// frame. Set/cleared by the UI.
	MixArm *MixArmFlag
}

// pusher is the minimal real-time-safe surface the callbacks need from
// a queue: a non-blocking, non-allocating push. Satisfied by
// *queue.SPSC[T]; kept as an interface only so input_test.go can swap
// in a plain slice-backed fake without dragging code.hybscloud.com/lfq
// into the test.
type pusher[T any] interface {
	Push(T) bool
}

// Process runs one callback: in is num_input_channels*num_frames
// interleaved float32, numFrames is the frame count, numInputChannels
// is len(Tracks).
func (in *Input) Process(input []float32, numFrames, numInputChannels int) {
	recording := in.Transport.Recording()
	anySolo := false
	for _, t := range in.Tracks {
		if t.Solo() {
			anySolo = true
			break
		}
	}
	if !anySolo {
		for _, p := range in.Playback {
			if p.Solo() {
				anySolo = true
				break
			}
		}
	}

	for f := 0; f < numFrames; f++ {
		var l, r float32

		for ti, t := range in.Tracks {
			x := input[f*numInputChannels+ti] * t.Level()
			t.UpdatePeak(x)

			if recording && t.Arm() {
				in.TrackQueue.Push(audio.RecordedSample{TrackID: uint16(ti), Sample: x})
			}

			if t.Monitor() && (!anySolo || t.Solo()) {
				pan.Apply(x, t.Pan(), &l, &r)
			}
		}

		for _, p := range in.Playback {
			var pl, pr float32
			if recording {
				pl, pr = p.Frame()
			}
			level := p.Level()
			pl *= level
			pr *= level
			if p.Monitor() && (!anySolo || p.Solo()) {
				gl, gr := pan.Gains(p.Pan())
				l += pl * gl
				r += pr * gr
			}
			if recording {
				p.Advance()
			}
		}

		in.MonitorQueue.Push(audio.StereoFrame{Left: l, Right: r})

		if recording && in.mixArmed() {
			in.MixQueue.Push(audio.StereoFrame{Left: l, Right: r})
		}

		if recording {
			in.Transport.IncrementFrameCounter()
		}
	}
}

func (in *Input) mixArmed() bool {
	if in.MixArm == nil {
		return false
	}
	return in.MixArm.Get()
}
