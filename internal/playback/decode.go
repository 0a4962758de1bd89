package playback

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// DecodeFile reads a 48 kHz mono or stereo WAV file into a new Source.
// This is the only allocation C3 performs at runtime - the decoded
// buffer is immutable from here on.
func DecodeFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("playback: open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("playback: %s is not a valid WAV file", path)
	}
	if dec.NumChans != 1 && dec.NumChans != 2 {
		return nil, fmt.Errorf("playback: %s has %d channels, want 1 or 2", path, dec.NumChans)
	}
	if dec.SampleRate != 48000 {
		return nil, fmt.Errorf("playback: %s is %d Hz, want 48000", path, dec.SampleRate)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("playback: decode %s: %w", path, err)
	}

	floatBuf := buf.AsFloatBuffer()
	samples := make([]float32, len(floatBuf.Data))
	for i, v := range floatBuf.Data {
		samples[i] = float32(v)
	}

	return New(samples, int(dec.NumChans)), nil
}
