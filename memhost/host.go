// SPDX-License-Identifier: EPL-2.0

package memhost

import (
	"fmt"
	"strconv"

	"github.com/seqtrim/seqtrim/formats/wav"
	"github.com/seqtrim/seqtrim/plan"
	"github.com/seqtrim/seqtrim/utils"
)

// Resource is an in-memory shared audio asset: encoded bytes plus
// metadata. Resources are created through a Project so duplicate names
// stay unique.
type Resource struct {
	name       string
	format     string
	data       []byte
	durationMs int
}

func (r *Resource) Name() string         { return r.name }
func (r *Resource) TotalDurationMs() int { return r.durationMs }
func (r *Resource) Format() string       { return r.format }
func (r *Resource) Bytes() []byte        { return r.data }

// Clip is one placement of a resource on a scope's timeline. Positions
// are stored in scope ticks; usage windows are derived in milliseconds.
type Clip struct {
	scope            *Scope
	res              *Resource
	startOffsetTicks int // offset into the resource
	fromTicks        int // placement on the scope timeline
	toTicks          int
}

func (c *Clip) Scope() plan.Scope   { return c.scope }
func (c *Clip) Resource() *Resource { return c.res }

func (c *Clip) StartOffsetMs() int {
	return utils.FramesToMs(c.startOffsetTicks, c.scope.tickRate)
}

// PlacementRangeMs returns the clip's position on the scope timeline.
func (c *Clip) PlacementRangeMs() (fromMs, toMs int) {
	return utils.FramesToMs(c.fromTicks, c.scope.tickRate),
		utils.FramesToMs(c.toTicks, c.scope.tickRate)
}

// Scope is one timeline holding clips. tickRate is the timeline's tick
// resolution in ticks per second.
type Scope struct {
	name     string
	tickRate int
	clips    []*Clip
}

func (s *Scope) Name() string { return s.name }

// Clips returns the current placements in timeline insertion order.
func (s *Scope) Clips() []*Clip {
	out := make([]*Clip, len(s.clips))
	copy(out, s.clips)
	return out
}

// AddClip places res on the timeline from fromMs to toMs, playing the
// resource starting at soundOffsetMs. A placement longer than the
// remaining resource duration loops back to the resource start.
func (s *Scope) AddClip(res *Resource, fromMs, toMs, soundOffsetMs int) *Clip {
	c := &Clip{
		scope:            s,
		res:              res,
		startOffsetTicks: utils.MsToFrames(soundOffsetMs, s.tickRate),
		fromTicks:        utils.MsToFrames(fromMs, s.tickRate),
		toTicks:          utils.MsToFrames(toMs, s.tickRate),
	}
	s.clips = append(s.clips, c)
	return c
}

// Project is an in-memory collection of scopes and resources. It
// implements plan.Host.
type Project struct {
	scopes   []*Scope
	names    map[string]bool
	external map[*Resource][]string
}

func NewProject() *Project {
	return &Project{
		names:    make(map[string]bool),
		external: make(map[*Resource][]string),
	}
}

func (p *Project) NewScope(name string, tickRate int) *Scope {
	s := &Scope{name: name, tickRate: tickRate}
	p.scopes = append(p.scopes, s)
	return s
}

// NewResource registers an asset with already-encoded content.
// durationMs must match the encoded data.
func (p *Project) NewResource(name, format string, data []byte, durationMs int) *Resource {
	r := &Resource{name: name, format: format, data: data, durationMs: durationMs}
	p.names[name] = true
	return r
}

// NewWavResource encodes the samples as PCM WAV and registers the
// result.
func (p *Project) NewWavResource(name string, sampleRate, channels int, samples []int16) (*Resource, error) {
	data, err := wav.Marshal16(sampleRate, channels, samples)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	frames := len(samples) / max(channels, 1)
	return p.NewResource(name, "wav", data, utils.FramesToMs(frames, sampleRate)), nil
}

// MarkExternalUse records that something outside the tracked scopes
// (e.g. a script) references the resource directly.
func (p *Project) MarkExternalUse(res *Resource, user string) {
	p.external[res] = append(p.external[res], user)
}

// plan.Host implementation.

func (p *Project) ResourceReferences(scope plan.Scope) []plan.Reference {
	s := scope.(*Scope)
	out := make([]plan.Reference, 0, len(s.clips))
	for _, c := range s.clips {
		out = append(out, c)
	}
	return out
}

func (p *Project) PlacementWindow(ref plan.Reference) plan.Window {
	c := ref.(*Clip)
	if c.res == nil || c.res.durationMs <= 0 || c.toTicks <= c.fromTicks {
		return plan.InvalidWindow
	}

	rate := c.scope.tickRate
	start := utils.FramesToMs(c.startOffsetTicks, rate)
	span := utils.FramesToMs(c.toTicks-c.fromTicks, rate)
	return plan.Window{StartMs: start, EndMs: start + span, Resource: c.res}
}

func (p *Project) ScopesReferencing(res plan.Resource) []plan.Scope {
	var out []plan.Scope
	for _, s := range p.scopes {
		for _, c := range s.clips {
			if plan.Resource(c.res) == res {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

func (p *Project) HasExternalReferences(res plan.Resource) bool {
	r := res.(*Resource)
	return len(p.external[r]) > 0
}

func (p *Project) DuplicateResource(res plan.Resource) (plan.Resource, error) {
	r := res.(*Resource)

	name := nextName(r.name)
	for p.names[name] {
		name = nextName(name)
	}

	dup := &Resource{
		name:       name,
		format:     r.format,
		data:       append([]byte(nil), r.data...),
		durationMs: r.durationMs,
	}
	p.names[name] = true
	return dup, nil
}

func (p *Project) ReassignResource(ref plan.Reference, res plan.Resource) {
	c := ref.(*Clip)
	c.res = res.(*Resource)
}

func (p *Project) RepointReference(ref plan.Reference, res plan.Resource) {
	c := ref.(*Clip)
	c.res = res.(*Resource)
	c.startOffsetTicks = 0
}

func (p *Project) SplitReferencePlacement(ref plan.Reference, offsetMs, durationMs int) (plan.Reference, error) {
	c := ref.(*Clip)
	if offsetMs < 0 || durationMs <= 0 {
		return nil, fmt.Errorf("invalid placement sub-range [%d, %d)", offsetMs, offsetMs+durationMs)
	}

	rate := c.scope.tickRate
	startMs := utils.FramesToMs(c.startOffsetTicks, rate) + offsetMs
	if total := c.res.durationMs; total > 0 {
		// Looping placements wrap to the resource start.
		startMs %= total
	}

	sub := &Clip{
		scope:            c.scope,
		res:              c.res,
		startOffsetTicks: utils.MsToFrames(startMs, rate),
		fromTicks:        c.fromTicks + utils.MsToFrames(offsetMs, rate),
		toTicks:          c.fromTicks + utils.MsToFrames(offsetMs+durationMs, rate),
	}
	c.scope.clips = append(c.scope.clips, sub)
	return sub, nil
}

func (p *Project) RemoveReference(ref plan.Reference) {
	c := ref.(*Clip)
	for i, other := range c.scope.clips {
		if other == c {
			c.scope.clips = append(c.scope.clips[:i], c.scope.clips[i+1:]...)
			return
		}
	}
}

// nextName derives a duplicate name by incrementing a trailing integer:
// SW_Step -> SW_Step1 -> SW_Step2.
func nextName(name string) string {
	i := len(name)
	for i > 0 && name[i-1] >= '0' && name[i-1] <= '9' {
		i--
	}

	n := 1
	if i < len(name) {
		v, err := strconv.Atoi(name[i:])
		if err == nil {
			n = v + 1
		}
	}
	return name[:i] + strconv.Itoa(n)
}
