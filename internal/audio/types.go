// Package audio holds the plain value types shared across the
// real-time callbacks (internal/engine) and the file-writing workers
// (internal/writer) - a leaf package with no dependencies of its own,
// so neither side needs to import the other just to name a queue
// element type.
package audio

// RecordedSample is the element type of the track-recording queue: one
// sample destined for one track's file. Kept as a flat value type (no
// pointer fields) so queue.SPSC[RecordedSample] never needs to chase a
// pointer off the real-time thread.
type RecordedSample struct {
	TrackID uint16
	Sample  float32
}

// StereoFrame is one interleaved (left, right) pair, the element type
// of both the monitor queue and the mix queue.
type StereoFrame struct {
	Left  float32
	Right float32
}
