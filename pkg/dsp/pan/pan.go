// Package pan provides the equal-power stereo panning law used to fold a
// mono contribution (an input track or a playback source) into the
// stereo monitor and mix buses.
package pan

import "math"

// Gains returns the left/right gain pair for an equal-power pan position.
// pan: -1.0 = hard left, 0.0 = center, 1.0 = hard right.
// gL = cos(theta), gR = sin(theta), theta = (pan+1)*pi/4, so that
// gL*gL + gR*gR == 1 for every pan value.
func Gains(pan float32) (left, right float32) {
	theta := (float64(pan) + 1.0) * math.Pi / 4.0
	return float32(math.Cos(theta)), float32(math.Sin(theta))
}

// Apply accumulates a mono sample into a stereo accumulator using the
// equal-power gains for pan.
func Apply(sample, pan float32, l, r *float32) {
	gl, gr := Gains(pan)
	*l += sample * gl
	*r += sample * gr
}
