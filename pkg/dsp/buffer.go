// Package dsp provides allocation-free audio buffer primitives shared by
// the real-time input and output callbacks.
package dsp

// Clear zeroes a buffer - no allocations.
func Clear(buffer []float32) {
	for i := range buffer {
		buffer[i] = 0
	}
}
