// Package ui is the minimal terminal status surface: it polls the
// atomics owned by internal/track, internal/transport and the
// engine's overflow counters and prints a status line. It owns no
// engine state; its only write is ResetPeak on each track after
// reading that track's peak meter. It calls none of the per-track
// setters.
package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/stems-audio/stems/internal/track"
	"github.com/stems-audio/stems/internal/transport"
)

// Counters exposes the queue-overflow counts the UI surfaces as
// meter warnings (spec §7, "Queue overflow... surfaced as a meter
// warning").
type Counters struct {
	TrackDropped   func() uint64
	MonitorDropped func() uint64
	MixDropped     func() uint64
}

// Status polls Transport and Tracks on an interval and writes a
// one-line summary to Out. It performs no interaction; a full
// interactive TUI is out of scope.
type Status struct {
	Out       io.Writer
	Transport *transport.Transport
	Tracks    []*track.Track
	Counters  Counters
	Interval  time.Duration
}

// Run prints a status line every Interval until stop is closed.
func (s *Status) Run(stop <-chan struct{}) {
	interval := s.Interval
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.printLine()
		}
	}
}

func (s *Status) printLine() {
	state := s.Transport.State()
	peaks := make([]float32, len(s.Tracks))
	for i, t := range s.Tracks {
		peaks[i] = t.Peak()
		t.ResetPeak()
	}

	fmt.Fprintf(s.Out, "[%s] frame=%d clock=%d dropped(track=%d,mon=%d,mix=%d) peaks=%v\n",
		state, s.Transport.FrameCounter(), s.Transport.ClockCount(),
		s.dropped(s.Counters.TrackDropped), s.dropped(s.Counters.MonitorDropped), s.dropped(s.Counters.MixDropped),
		peaks)
}

func (s *Status) dropped(fn func() uint64) uint64 {
	if fn == nil {
		return 0
	}
	return fn()
}
