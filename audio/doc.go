// SPDX-License-Identifier: EPL-2.0

// Package audio defines the PCM source abstraction shared by the format
// decoders.
//
// A Source streams interleaved float32 samples in [-1,1]. Decoders for
// concrete container formats live in the formats subpackages and are
// looked up through a Registry keyed by format name:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	reg.Register("mp3", mp3.Decoder{})
//
//	src, err := reg.Decode("wav", file)
//
// Collect16 drains a source into 16-bit PCM, which is what the trim
// pipeline writes into WAV intermediates.
package audio
