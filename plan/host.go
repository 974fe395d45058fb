// SPDX-License-Identifier: EPL-2.0

package plan

// Resource is a shared audio asset referenced by any number of consumers.
// Implementations must be comparable, they are used as map keys.
type Resource interface {
	Name() string
	// TotalDurationMs of the full asset, regardless of how it is used.
	TotalDurationMs() int
}

// Scope is a container of references, e.g. one timeline.
type Scope interface {
	Name() string
}

// Reference is one placement of a resource within a consuming scope,
// e.g. one clip instance. It is opaque to the planner; the host resolves
// its window and repoints it.
type Reference interface {
	Scope() Scope
}

// Host exposes the timeline model the planner operates on. The planner
// itself never touches placements directly; every query and mutation
// goes through the host.
type Host interface {
	// ResourceReferences enumerates every reference to a shared audio
	// resource within the scope.
	ResourceReferences(scope Scope) []Reference

	// PlacementWindow computes the usage window of the reference in
	// resource milliseconds, including any frame-to-ms conversion the
	// scope's frame rate requires. Returns InvalidWindow when the
	// placement cannot be resolved.
	PlacementWindow(ref Reference) Window

	// ScopesReferencing lists every scope that plays the resource.
	ScopesReferencing(res Resource) []Scope

	// HasExternalReferences reports whether anything outside the tracked
	// scopes references the resource directly.
	HasExternalReferences(res Resource) bool

	// DuplicateResource creates a new independent copy with the same
	// content.
	DuplicateResource(res Resource) (Resource, error)

	// ReassignResource points the reference at res without touching its
	// placement. Used by policy resolvers before any physical work.
	ReassignResource(ref Reference, res Resource)

	// RepointReference points the reference at res and resets its
	// in-place start offset to zero. Used by the executor after res has
	// been trimmed and reimported.
	RepointReference(ref Reference, res Resource)

	// SplitReferencePlacement creates a new reference covering the
	// [offsetMs, offsetMs+durationMs) sub-range of ref's placement,
	// offsets relative to the placement start. The original reference
	// is left untouched.
	SplitReferencePlacement(ref Reference, offsetMs, durationMs int) (Reference, error)

	// RemoveReference removes the reference's placement from its scope.
	// Only called after replacement references have been created.
	RemoveReference(ref Reference)
}

// Pipeline performs the physical export, trim and reimport work. It is
// blocking from the planner's point of view; the executor waits for each
// primary result before repointing dependents.
type Pipeline interface {
	// ExportToIntermediate writes the resource content to an
	// intermediate WAV file and returns its path.
	ExportToIntermediate(res Resource) (string, error)

	// TrimIntermediate trims the intermediate file to [startMs, endMs]
	// and returns the path of the trimmed file.
	TrimIntermediate(path string, startMs, endMs int) (string, error)

	// ReimportIntoResource replaces the resource content with the
	// trimmed intermediate file.
	ReimportIntoResource(res Resource, path string) error

	// DeleteIntermediate removes a temporary file. Best effort.
	DeleteIntermediate(path string)
}
