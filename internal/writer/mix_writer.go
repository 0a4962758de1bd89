package writer

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-audio/wav"

	"github.com/stems-audio/stems/internal/audio"
	"github.com/stems-audio/stems/internal/transport"
)

// MixWriter is the mix writer worker (C8): same skeleton as TrackWriter
// but drains interleaved stereo frames into one "mix-*.wav" file.
type MixWriter struct {
	Queue      popper[audio.StereoFrame]
	Transport  *transport.Transport
	SampleRate int
	Dir        string
	Logger     *log.Logger

	file *os.File
	enc  *wav.Encoder
	name string
}

// NewMixWriter returns an idle MixWriter.
func NewMixWriter(q popper[audio.StereoFrame], tr *transport.Transport, sampleRate int, dir string, logger *log.Logger) *MixWriter {
	return &MixWriter{Queue: q, Transport: tr, SampleRate: sampleRate, Dir: dir, Logger: logger}
}

// Run drains the mix queue until ctx is canceled, opening/closing the
// mix file around each Running span exactly like TrackWriter.
func (w *MixWriter) Run(ctx context.Context) {
	wasRunning := false
	var pending []float32

	for {
		select {
		case <-ctx.Done():
			w.drainRemaining(&pending)
			w.close()
			return
		default:
		}

		running := w.Transport.State() == transport.Running
		if wasRunning && !running {
			w.drainRemaining(&pending)
			w.close()
		}
		wasRunning = running

		popped := 0
		for popped < batchSize {
			f, ok := w.Queue.Pop()
			if !ok {
				break
			}
			pending = append(pending, f.Left, f.Right)
			popped++
		}
		if popped > 0 {
			w.flush(&pending)
		} else {
			time.Sleep(pollInterval)
		}
	}
}

func (w *MixWriter) drainRemaining(pending *[]float32) {
	for {
		f, ok := w.Queue.Pop()
		if !ok {
			break
		}
		*pending = append(*pending, f.Left, f.Right)
	}
	w.flush(pending)
}

func (w *MixWriter) flush(pending *[]float32) {
	if len(*pending) == 0 {
		return
	}
	if w.enc == nil {
		f, enc, err := openFile(w.Dir, "mix", w.SampleRate, 2, time.Now())
		if err != nil {
			w.Logger.Error("mix file open failed, dropping mix recording", "err", err)
			*pending = (*pending)[:0]
			return
		}
		w.file = f
		w.enc = enc
		w.name = f.Name()
	}
	if err := writeSamples(w.enc, 2, w.SampleRate, *pending); err != nil {
		w.Logger.Error("mix write failed", "err", err)
	}
	*pending = (*pending)[:0]
}

func (w *MixWriter) close() {
	if w.enc == nil {
		return
	}
	closeQuietly(w.name, w.file, w.enc, w.Logger)
	w.file, w.enc, w.name = nil, nil, ""
}
