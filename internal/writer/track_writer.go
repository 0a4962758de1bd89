package writer

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-audio/wav"

	"github.com/stems-audio/stems/internal/audio"
	"github.com/stems-audio/stems/internal/transport"
)

// batchSize is the number of queue elements drained per iteration
// before checking for new work again (C7 spec, "batch of N e.g. 4096").
const batchSize = 4096

// pollInterval is how long the worker sleeps when the queue is empty;
// it must not obstruct the producer, so it never touches the queue's
// internal state, only its own loop cadence.
const pollInterval = 2 * time.Millisecond

// TrackWriter is the track writer worker (C7): it drains RecordedSample
// elements and appends each to its track's mono WAV file, creating
// files lazily the first time a track's samples appear after the
// transport enters Running.
type TrackWriter struct {
	Queue      popper[audio.RecordedSample]
	Transport  *transport.Transport
	SampleRate int
	Dir        string
	Logger     *log.Logger

	files []*os.File
	encs  []*wav.Encoder
	names []string
}

// NewTrackWriter returns a TrackWriter sized for numTracks input
// channels.
func NewTrackWriter(q popper[audio.RecordedSample], tr *transport.Transport, sampleRate, numTracks int, dir string, logger *log.Logger) *TrackWriter {
	return &TrackWriter{
		Queue:      q,
		Transport:  tr,
		SampleRate: sampleRate,
		Dir:        dir,
		Logger:     logger,
		files:      make([]*os.File, numTracks),
		encs:       make([]*wav.Encoder, numTracks),
		names:      make([]string, numTracks),
	}
}

// Run drains the queue until ctx is canceled. On a Running->not-Running
// transition it drains whatever remains (spec: in-flight samples are
// written, not discarded) and closes every open file before continuing
// to wait for the next Running span.
func (w *TrackWriter) Run(ctx context.Context) {
	wasRunning := false
	pending := make(map[uint16][]float32, len(w.files))

	for {
		select {
		case <-ctx.Done():
			w.drainOnce(pending)
			w.closeAll()
			return
		default:
		}

		running := w.Transport.State() == transport.Running
		if wasRunning && !running {
			w.drainRemaining(pending)
			w.closeAll()
		}
		wasRunning = running

		popped := 0
		for popped < batchSize {
			s, ok := w.Queue.Pop()
			if !ok {
				break
			}
			pending[s.TrackID] = append(pending[s.TrackID], s.Sample)
			popped++
		}
		if popped > 0 {
			w.flush(pending)
		} else {
			time.Sleep(pollInterval)
		}
	}
}

// drainRemaining pops whatever is left in the queue (the transport has
// already left Running) and flushes it before the files close.
func (w *TrackWriter) drainRemaining(pending map[uint16][]float32) {
	for {
		s, ok := w.Queue.Pop()
		if !ok {
			break
		}
		pending[s.TrackID] = append(pending[s.TrackID], s.Sample)
	}
	w.flush(pending)
}

func (w *TrackWriter) drainOnce(pending map[uint16][]float32) {
	w.drainRemaining(pending)
}

func (w *TrackWriter) flush(pending map[uint16][]float32) {
	for trackID, samples := range pending {
		if len(samples) == 0 {
			continue
		}
		if err := w.writeTrack(trackID, samples); err != nil {
			w.Logger.Error("track write failed, dropping track", "track", trackID, "err", err)
			w.files[trackID] = nil
			w.encs[trackID] = nil
		}
		pending[trackID] = samples[:0]
	}
}

func (w *TrackWriter) writeTrack(trackID uint16, samples []float32) error {
	if int(trackID) >= len(w.files) {
		return fmt.Errorf("track id %d out of range", trackID)
	}
	if w.encs[trackID] == nil {
		f, enc, err := openFile(w.Dir, fmt.Sprintf("%02d", trackID+1), w.SampleRate, 1, time.Now())
		if err != nil {
			return err
		}
		w.files[trackID] = f
		w.encs[trackID] = enc
		w.names[trackID] = f.Name()
	}
	return writeSamples(w.encs[trackID], 1, w.SampleRate, samples)
}

func (w *TrackWriter) closeAll() {
	for i := range w.files {
		if w.files[i] == nil {
			continue
		}
		closeQuietly(w.names[i], w.files[i], w.encs[i], w.Logger)
		w.files[i] = nil
		w.encs[i] = nil
		w.names[i] = ""
	}
}
