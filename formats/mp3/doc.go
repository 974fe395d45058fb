// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams into audio.Source.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files.
// Output is always 16-bit stereo at the stream's sample rate.
package mp3
