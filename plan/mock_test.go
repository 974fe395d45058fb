// SPDX-License-Identifier: EPL-2.0

package plan

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
)

type fakeResource struct {
	name    string
	totalMs int
}

func (r *fakeResource) Name() string         { return r.name }
func (r *fakeResource) TotalDurationMs() int { return r.totalMs }

type fakeScope struct {
	name string
}

func (s *fakeScope) Name() string { return s.name }

type fakeRef struct {
	scope   *fakeScope
	w       Window
	removed bool
}

func (r *fakeRef) Scope() Scope { return r.scope }

type repoint struct {
	ref Reference
	res Resource
}

// fakeHost is a minimal in-memory Host recording every mutation it is
// asked to perform.
type fakeHost struct {
	scopes   []*fakeScope
	refs     map[*fakeScope][]*fakeRef
	external map[Resource]bool

	dupErr   error
	dupCount int

	splitErr error

	reassigned []repoint
	repointed  []repoint
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		refs:     make(map[*fakeScope][]*fakeRef),
		external: make(map[Resource]bool),
	}
}

func (h *fakeHost) addScope(name string) *fakeScope {
	s := &fakeScope{name: name}
	h.scopes = append(h.scopes, s)
	return s
}

func (h *fakeHost) addRef(s *fakeScope, res *fakeResource, startMs, endMs int) *fakeRef {
	r := &fakeRef{scope: s, w: Window{StartMs: startMs, EndMs: endMs, Resource: res}}
	h.refs[s] = append(h.refs[s], r)
	return r
}

func (h *fakeHost) ResourceReferences(scope Scope) []Reference {
	s := scope.(*fakeScope)
	out := make([]Reference, 0, len(h.refs[s]))
	for _, r := range h.refs[s] {
		out = append(out, r)
	}
	return out
}

func (h *fakeHost) PlacementWindow(ref Reference) Window {
	return ref.(*fakeRef).w
}

func (h *fakeHost) ScopesReferencing(res Resource) []Scope {
	var out []Scope
	for _, s := range h.scopes {
		for _, r := range h.refs[s] {
			if r.w.Resource == res {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

func (h *fakeHost) HasExternalReferences(res Resource) bool {
	return h.external[res]
}

func (h *fakeHost) DuplicateResource(res Resource) (Resource, error) {
	if h.dupErr != nil {
		return nil, h.dupErr
	}
	h.dupCount++
	orig := res.(*fakeResource)
	return &fakeResource{
		name:    fmt.Sprintf("%s%d", orig.name, h.dupCount),
		totalMs: orig.totalMs,
	}, nil
}

func (h *fakeHost) ReassignResource(ref Reference, res Resource) {
	r := ref.(*fakeRef)
	r.w.Resource = res
	h.reassigned = append(h.reassigned, repoint{ref: ref, res: res})
}

func (h *fakeHost) RepointReference(ref Reference, res Resource) {
	r := ref.(*fakeRef)
	r.w.Resource = res
	r.w.StartMs = 0
	h.repointed = append(h.repointed, repoint{ref: ref, res: res})
}

func (h *fakeHost) SplitReferencePlacement(ref Reference, offsetMs, durationMs int) (Reference, error) {
	if h.splitErr != nil {
		return nil, h.splitErr
	}

	r := ref.(*fakeRef)
	start := r.w.StartMs + offsetMs
	if total := r.w.Resource.TotalDurationMs(); total > 0 {
		start %= total
	}

	sub := &fakeRef{
		scope: r.scope,
		w:     Window{StartMs: start, EndMs: start + durationMs, Resource: r.w.Resource},
	}
	h.refs[r.scope] = append(h.refs[r.scope], sub)
	return sub, nil
}

func (h *fakeHost) RemoveReference(ref Reference) {
	r := ref.(*fakeRef)
	r.removed = true
	bucket := h.refs[r.scope]
	for i, other := range bucket {
		if other == r {
			h.refs[r.scope] = append(bucket[:i], bucket[i+1:]...)
			return
		}
	}
}

type trimCall struct {
	path    string
	startMs int
	endMs   int
}

// fakePipeline records the physical calls instead of touching the
// filesystem.
type fakePipeline struct {
	exportErr   error
	trimErr     error
	reimportErr error

	exports   []string
	trims     []trimCall
	reimports []string
	deleted   []string
}

func (pl *fakePipeline) ExportToIntermediate(res Resource) (string, error) {
	if pl.exportErr != nil {
		return "", pl.exportErr
	}
	path := res.Name() + ".wav"
	pl.exports = append(pl.exports, path)
	return path, nil
}

func (pl *fakePipeline) TrimIntermediate(path string, startMs, endMs int) (string, error) {
	if pl.trimErr != nil {
		return "", pl.trimErr
	}
	pl.trims = append(pl.trims, trimCall{path: path, startMs: startMs, endMs: endMs})
	return path + ".trimmed", nil
}

func (pl *fakePipeline) ReimportIntoResource(res Resource, path string) error {
	if pl.reimportErr != nil {
		return pl.reimportErr
	}
	pl.reimports = append(pl.reimports, path)
	return nil
}

func (pl *fakePipeline) DeleteIntermediate(path string) {
	pl.deleted = append(pl.deleted, path)
}

func newTestPlanner(t *testing.T, h *fakeHost, pl *fakePipeline, cfg Config) *Planner {
	t.Helper()
	return New(h, pl, cfg, zap.NewNop())
}
