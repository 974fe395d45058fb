// SPDX-License-Identifier: EPL-2.0

// Package seqtrim consolidates the usage of shared audio resources
// across timeline scopes and trims the unused audio away.
//
// The heavy lifting lives in the plan package: usage windows are
// gathered per resource, coalesced within a tolerance, filtered by
// looping, external-usage and conflict policies, optionally fragmented
// into reusable segments, and finally executed as physical trims
// through a Pipeline. This package only re-exports the common entry
// point; embed plan directly for finer control.
//
// The memhost package provides a ready-made in-memory Host and a
// file-backed Pipeline for tools and tests.
package seqtrim
