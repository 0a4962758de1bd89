// Package writer drains the track and mix queues on ordinary worker
// threads and writes 32-bit float WAV files. Nothing here runs on the
// real-time audio thread; it is the only package in this module that
// creates or writes files.
package writer

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavAudioFormatIEEEFloat is WAVE_FORMAT_IEEE_FLOAT (format tag 0x0003).
const wavAudioFormatIEEEFloat = 3

const bitDepth = 32

// popper is the minimal surface a writer needs from its queue: a
// blocking-free pop used inside a drain loop.
type popper[T any] interface {
	Pop() (T, bool)
}

// openFile creates a new WAV encoder at path for the given channel
// count and sample rate, 32-bit IEEE float.
func openFile(dir, prefix string, sampleRate, numChannels int, now time.Time) (*os.File, *wav.Encoder, error) {
	name := fmt.Sprintf("%s-%s.wav", prefix, now.Format("20060102-150405"))
	path := name
	if dir != "" {
		path = dir + string(os.PathSeparator) + name
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("writer: create %s: %w", path, err)
	}
	enc := wav.NewEncoder(f, sampleRate, bitDepth, numChannels, wavAudioFormatIEEEFloat)
	return f, enc, nil
}

func writeSamples(enc *wav.Encoder, numChannels, sampleRate int, data []float32) error {
	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: numChannels,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	return enc.Write(buf)
}

func closeQuietly(name string, f *os.File, enc *wav.Encoder, logger *log.Logger) {
	if enc != nil {
		if err := enc.Close(); err != nil {
			logger.Error("finalize wav header", "file", name, "err", err)
		}
	}
	if f != nil {
		if err := f.Close(); err != nil {
			logger.Error("close file", "file", name, "err", err)
		}
	}
}
