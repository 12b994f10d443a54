package system

import (
	"sync/atomic"

	"github.com/lixenwraith/once-upon-a-lever/component"
	"github.com/lixenwraith/once-upon-a-lever/constant"
	"github.com/lixenwraith/once-upon-a-lever/engine"
	"github.com/lixenwraith/once-upon-a-lever/event"
	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

// Pages is the default Paginator over the roster's palette pages
// Items lying in a gate slot stay visible whatever the page
type Pages struct {
	ctx    *engine.GameContext
	roster *component.Roster
	gates  *Gates
	names  []string

	current int

	PrevArrow vmath.Vec2
	NextArrow vmath.Vec2

	statPage *atomic.Int64
}

// NewPages starts on the first page
func NewPages(ctx *engine.GameContext, roster *component.Roster, gates *Gates, names []string, prev, next vmath.Vec2) *Pages {
	return &Pages{
		ctx:       ctx,
		roster:    roster,
		gates:     gates,
		names:     names,
		PrevArrow: prev,
		NextArrow: next,
		statPage:  ctx.Status.Ints.Get("pages.current"),
	}
}

// Current returns the visible page index
func (p *Pages) Current() int {
	return p.current
}

// Count returns the number of pages
func (p *Pages) Count() int {
	return len(p.names)
}

// Name returns the current page's label
func (p *Pages) Name() string {
	if p.current < 0 || p.current >= len(p.names) {
		return ""
	}
	return p.names[p.current]
}

func (p *Pages) held(it *component.Item) bool {
	return p.gates != nil && p.gates.Holds(it)
}

// SwitchTo hides the old page and shows the new page's available items
func (p *Pages) SwitchTo(index int, visible Visibility) {
	if index < 0 || index >= len(p.names) {
		p.ctx.Log.Printf("[pages] page %d out of range [0,%d)", index, len(p.names))
		return
	}
	from := p.current
	for _, it := range p.roster.All() {
		if it.Page == from && !p.held(it) {
			it.Deactivate()
		}
	}
	p.current = index
	p.statPage.Store(int64(index))
	for _, it := range p.roster.All() {
		if it.Page != index || p.held(it) {
			continue
		}
		if visible != nil && visible(it.Name) {
			it.Activate()
		} else {
			it.Deactivate()
		}
	}
	p.ctx.Emit(event.EventPageSwitched, event.PagePayload{From: from, To: index})
}

// Restore hides every other page's items after a reset
// The current page is left to the reveal step, which only adds
func (p *Pages) Restore(Visibility) {
	for _, it := range p.roster.All() {
		if it.Page != p.current && it.Active() && !p.held(it) {
			it.Deactivate()
		}
	}
}

// Next cycles forward
func (p *Pages) Next(visible Visibility) {
	if len(p.names) < 2 {
		return
	}
	p.SwitchTo((p.current+1)%len(p.names), visible)
}

// Prev cycles backward
func (p *Pages) Prev(visible Visibility) {
	if len(p.names) < 2 {
		return
	}
	p.SwitchTo((p.current+len(p.names)-1)%len(p.names), visible)
}

// ArrowAt returns -1, 1 or 0 for the previous arrow, next arrow or neither
func (p *Pages) ArrowAt(pt vmath.Vec2) int {
	switch {
	case vmath.V2Dist(pt, p.PrevArrow) <= constant.ItemHitRadius:
		return -1
	case vmath.V2Dist(pt, p.NextArrow) <= constant.ItemHitRadius:
		return 1
	}
	return 0
}
