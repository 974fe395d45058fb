// SPDX-License-Identifier: EPL-2.0

// Package wav decodes, encodes and trims PCM WAV files.
// It uses the github.com/go-audio library for robust WAV file handling.
//
// The trim pipeline exports every resource to a WAV intermediate, so
// this package also carries the physical trim operation: TrimFile slices
// the decoded frame range and re-encodes it without resampling or
// format conversion.
package wav
