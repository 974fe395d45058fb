// SPDX-License-Identifier: EPL-2.0

// Package memhost provides an in-memory plan.Host and a file-backed
// plan.Pipeline.
//
// A Project holds scopes (timelines with clips) and resources (encoded
// audio assets). Clip positions are stored in scope ticks and exposed
// as millisecond usage windows. The Pipeline exports resources to
// temporary 16-bit PCM WAV files, trims them on disk and reimports the
// result, so a full trim run can execute without any external tooling.
//
// The package doubles as the reference Host implementation for tests
// and for embedding the planner into small tools.
package memhost
