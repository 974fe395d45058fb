// SPDX-License-Identifier: EPL-2.0

package plan

import "sort"

// Group is one distinct usage window of a resource together with every
// reference that plays it. The first reference is the primary: it drives
// the physical processing, all others reuse the result.
type Group struct {
	Window Window
	Refs   []Reference

	seq int // insertion order, disambiguates candidates during lookup
}

func (g *Group) dropRef(ref Reference) {
	for i, r := range g.Refs {
		if r == ref {
			g.Refs = append(g.Refs[:i], g.Refs[i+1:]...)
			return
		}
	}
}

func (g *Group) addRef(ref Reference) bool {
	for _, r := range g.Refs {
		if r == ref {
			return false
		}
	}
	g.Refs = append(g.Refs, ref)
	return true
}

// cell is the coarse quantized key used to narrow lookup candidates.
// Windows within tolerance of each other land in the same or an adjacent
// cell on each axis.
type cell struct {
	start, end int
}

// WindowMap holds the distinct usage windows of a single resource.
// Insertion keys by similarity, not exact equality: adding a window
// similar to an existing group widens that group's window (max start,
// max end) and appends the reference instead of creating a new entry.
//
// Lookup is two-phase: a quantized cell map narrows the candidates, the
// exact tolerance predicate confirms. Approximate equality never goes
// through map hashing directly.
type WindowMap struct {
	tol    int
	nextID int
	groups []*Group
	cells  map[cell][]*Group
}

func newWindowMap(toleranceMs int) *WindowMap {
	return &WindowMap{
		tol:   toleranceMs,
		cells: make(map[cell][]*Group),
	}
}

// quant is the cell edge length. Tolerance zero still needs a non-zero
// divisor; exactness is enforced by IsSimilar, not by the cells.
func (m *WindowMap) quant() int {
	if m.tol > 0 {
		return m.tol
	}
	return 1
}

func cellOf(w Window, q int) cell {
	return cell{start: w.StartMs / q, end: w.EndMs / q}
}

// Add inserts the window, coalescing by similarity. Returns false when
// the reference was already present in the matched group.
func (m *WindowMap) Add(w Window, ref Reference) bool {
	if g := m.find(w); g != nil {
		old := cellOf(g.Window, m.quant())
		g.Window = maxWindow(g.Window, w)
		if now := cellOf(g.Window, m.quant()); now != old {
			m.unlink(g, old)
			m.cells[now] = append(m.cells[now], g)
		}
		return g.addRef(ref)
	}

	g := &Group{Window: w, Refs: []Reference{ref}, seq: m.nextID}
	m.nextID++
	m.groups = append(m.groups, g)
	c := cellOf(w, m.quant())
	m.cells[c] = append(m.cells[c], g)
	return true
}

// find returns the earliest-inserted group similar to w, or nil.
func (m *WindowMap) find(w Window) *Group {
	q := m.quant()
	base := cellOf(w, q)

	var found *Group
	for ds := -1; ds <= 1; ds++ {
		for de := -1; de <= 1; de++ {
			c := cell{start: base.start + ds, end: base.end + de}
			for _, g := range m.cells[c] {
				if !g.Window.IsSimilar(w, m.tol) {
					continue
				}
				if found == nil || g.seq < found.seq {
					found = g
				}
			}
		}
	}
	return found
}

func (m *WindowMap) unlink(g *Group, c cell) {
	bucket := m.cells[c]
	for i, other := range bucket {
		if other == g {
			m.cells[c] = append(bucket[:i], bucket[i+1:]...)
			return
		}
	}
}

// Delete removes the group entirely.
func (m *WindowMap) Delete(g *Group) {
	for i, other := range m.groups {
		if other == g {
			m.groups = append(m.groups[:i], m.groups[i+1:]...)
			break
		}
	}
	m.unlink(g, cellOf(g.Window, m.quant()))
}

// Groups returns a snapshot of the groups in their current order.
func (m *WindowMap) Groups() []*Group {
	out := make([]*Group, len(m.groups))
	copy(out, m.groups)
	return out
}

func (m *WindowMap) Len() int { return len(m.groups) }

// FirstReference returns the first recorded reference, or nil when the
// map is empty.
func (m *WindowMap) FirstReference() Reference {
	for _, g := range m.groups {
		if len(g.Refs) > 0 {
			return g.Refs[0]
		}
	}
	return nil
}

// setResource rewrites the resource handle of every window in the map.
func (m *WindowMap) setResource(res Resource) {
	for _, g := range m.groups {
		g.Window.Resource = res
	}
}

// sortGroups orders groups by start time, then end time. Used after
// rebuilds so the executor walks windows in timeline order.
func (m *WindowMap) sortGroups() {
	sort.SliceStable(m.groups, func(i, j int) bool {
		a, b := m.groups[i].Window, m.groups[j].Window
		if a.StartMs != b.StartMs {
			return a.StartMs < b.StartMs
		}
		return a.EndMs < b.EndMs
	})
}

// Index is the central structure threaded through every pipeline stage:
// one WindowMap per resource, in resource discovery order. Created empty
// per run and discarded at the end, nothing persists.
type Index struct {
	tol   int
	order []Resource
	byRes map[Resource]*WindowMap
}

func NewIndex(toleranceMs int) *Index {
	return &Index{
		tol:   toleranceMs,
		byRes: make(map[Resource]*WindowMap),
	}
}

// Add inserts the window under its owning resource.
func (x *Index) Add(w Window, ref Reference) bool {
	return x.ensure(w.Resource).Add(w, ref)
}

func (x *Index) ensure(res Resource) *WindowMap {
	if m, ok := x.byRes[res]; ok {
		return m
	}
	m := newWindowMap(x.tol)
	x.byRes[res] = m
	x.order = append(x.order, res)
	return m
}

// Windows returns the window map for res, or nil when absent.
func (x *Index) Windows(res Resource) *WindowMap {
	return x.byRes[res]
}

// Resources returns a snapshot of the tracked resources in discovery
// order. Safe to range over while mutating the index.
func (x *Index) Resources() []Resource {
	out := make([]Resource, 0, len(x.order))
	for _, res := range x.order {
		if _, ok := x.byRes[res]; ok {
			out = append(out, res)
		}
	}
	return out
}

// Remove drops the resource's entire entry: all windows, all references.
func (x *Index) Remove(res Resource) {
	if _, ok := x.byRes[res]; !ok {
		return
	}
	delete(x.byRes, res)
	for i, other := range x.order {
		if other == res {
			x.order = append(x.order[:i], x.order[i+1:]...)
			return
		}
	}
}

// Replace rekeys the resource entry under a new resource, keeping its
// position and rewriting every window's resource handle.
func (x *Index) Replace(old, now Resource) {
	m, ok := x.byRes[old]
	if !ok {
		return
	}
	m.setResource(now)
	delete(x.byRes, old)
	x.byRes[now] = m
	for i, res := range x.order {
		if res == old {
			x.order[i] = now
			return
		}
	}
}

func (x *Index) Len() int { return len(x.byRes) }

func (x *Index) IsEmpty() bool { return len(x.byRes) == 0 }
