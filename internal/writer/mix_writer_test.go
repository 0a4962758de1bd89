package writer

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-audio/wav"

	"github.com/stems-audio/stems/internal/audio"
	"github.com/stems-audio/stems/internal/transport"
)

type fakeStereoQueue struct {
	mu   sync.Mutex
	vals []audio.StereoFrame
}

func (q *fakeStereoQueue) push(v audio.StereoFrame) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.vals = append(q.vals, v)
}

func (q *fakeStereoQueue) Pop() (audio.StereoFrame, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.vals) == 0 {
		return audio.StereoFrame{}, false
	}
	v := q.vals[0]
	q.vals = q.vals[1:]
	return v, true
}

func (q *fakeStereoQueue) empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.vals) == 0
}

func TestMixWriterWritesStereoFile(t *testing.T) {
	dir := t.TempDir()
	q := &fakeStereoQueue{}
	for i := 0; i < 50; i++ {
		q.push(audio.StereoFrame{Left: 0.25, Right: -0.25})
	}
	tr := transport.New()
	tr.Start()
	tr.Clock()

	w := NewMixWriter(q, tr, 48000, dir, newTestLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	waitUntil(t, time.Second, q.empty)
	tr.Stop()
	waitUntil(t, time.Second, func() bool { return w.enc == nil })
	cancel()
	<-done

	matches, err := filepath.Glob(filepath.Join(dir, "mix-*.wav"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected exactly one mix file, got %v", matches)
	}

	f, err := os.Open(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	if dec.NumChans != 2 {
		t.Fatalf("num chans = %d, want 2", dec.NumChans)
	}
	if dec.WavAudioFormat != wavAudioFormatIEEEFloat {
		t.Fatalf("audio format = %d, want %d", dec.WavAudioFormat, wavAudioFormatIEEEFloat)
	}
}

func TestMixWriterIdleWhenNeverRunning(t *testing.T) {
	dir := t.TempDir()
	q := &fakeStereoQueue{}
	tr := transport.New()

	w := NewMixWriter(q, tr, 48000, dir, newTestLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	<-done

	matches, _ := filepath.Glob(filepath.Join(dir, "*.wav"))
	if len(matches) != 0 {
		t.Fatalf("expected no mix file, got %v", matches)
	}
}
