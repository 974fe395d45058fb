// SPDX-License-Identifier: EPL-2.0

// Package plan implements the usage-consolidation and trim-planning
// engine for shared audio resources.
//
// A shared resource may be referenced many times, at different time
// windows, by many independent consumers. The planner discovers every
// usage, merges near-duplicate windows so a resource is physically
// processed at most once per distinct window, resolves conflicts via
// pluggable policies, and drives the physical trim, duplicate and
// reimport sequence so every reference ends up pointing at the right
// resource.
//
// # Pipeline
//
// Data flows strictly top to bottom through a fixed pipeline:
//
//	build scope usage     -> Index
//	merge other scopes    -> extends windows with usages elsewhere
//	looping policy        -> windows wrapping past the resource end
//	external-usage policy -> resources referenced outside the scopes
//	conflicting-windows   -> resources with several distinct windows
//	fragmentation         -> optional split into reusable segments
//	executor              -> physical trim, duplicate, repoint
//
// Everything before the executor is pure transformation of the
// in-memory index; the executor is the only component with side effects
// on external state.
//
// # Usage
//
//	planner := plan.New(host, pipeline, plan.DefaultConfig(), nil)
//	summary := planner.Run(scope)
//
// The host and pipeline collaborators are supplied by the embedding
// application; see the Host and Pipeline interfaces. The memhost
// package provides an in-memory host backed by WAV files.
//
// # Coalescing
//
// Two windows on the same resource are similar when both bound deltas
// are within the configured tolerance. Similar windows coalesce into one
// group keeping the larger start and larger end independently, so no
// reference ever loses material it needs. With a tolerance that is large
// relative to the window size this max/max rule can produce a merged
// window whose start exceeds its end; the planner does not guard against
// that.
package plan
