// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes 16-bit PCM AIFF streams into audio.Source.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
package aiff
