// SPDX-License-Identifier: EPL-2.0

// Package audiotest generates deterministic PCM material for tests.
package audiotest

import "math"

// Sine16 returns frames of interleaved 16-bit samples carrying a sine
// tone at freq Hz on every channel.
func Sine16(frames, channels, sampleRate int, freq float64) []int16 {
	out := make([]int16, frames*channels)
	for f := 0; f < frames; f++ {
		v := int16(math.Sin(2*math.Pi*freq*float64(f)/float64(sampleRate)) * 16000)
		for ch := 0; ch < channels; ch++ {
			out[f*channels+ch] = v
		}
	}
	return out
}

// Silence16 returns frames of interleaved zero samples.
func Silence16(frames, channels int) []int16 {
	return make([]int16, frames*channels)
}
