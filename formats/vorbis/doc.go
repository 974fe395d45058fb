// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams into audio.Source.
//
// This package uses github.com/jfreymuth/oggvorbis. The whole stream is
// decoded into memory; streaming decode is a non-goal.
package vorbis
