package system

import (
	"time"

	"github.com/lixenwraith/once-upon-a-lever/component"
	"github.com/lixenwraith/once-upon-a-lever/engine"
	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

// Placement routes pointer drags to items and advances their animations
type Placement struct {
	ctx    *engine.GameContext
	roster *component.Roster
	held   *component.Item
}

func NewPlacement(ctx *engine.GameContext, roster *component.Roster) *Placement {
	return &Placement{ctx: ctx, roster: roster}
}

// Held returns the item under drag, nil when none
func (pl *Placement) Held() *component.Item {
	return pl.held
}

// At returns the top-most active item under p
// Later roster entries win ties in draw order
func (pl *Placement) At(p vmath.Vec2) *component.Item {
	var top *component.Item
	for _, it := range pl.roster.All() {
		if !it.Active() || !it.HitTest(p) {
			continue
		}
		if top == nil || it.Order >= top.Order {
			top = it
		}
	}
	return top
}

// PointerDown picks up the item under p
func (pl *Placement) PointerDown(p vmath.Vec2) bool {
	if pl.held != nil || !pl.ctx.InputEnabled() {
		return false
	}
	it := pl.At(p)
	if it == nil || !it.PointerDown(p) {
		return false
	}
	pl.held = it
	return true
}

func (pl *Placement) PointerMove(p vmath.Vec2) {
	if pl.held != nil {
		pl.held.PointerMove(p)
	}
}

// PointerUp drops the held item
func (pl *Placement) PointerUp(p vmath.Vec2) {
	if pl.held == nil {
		return
	}
	it := pl.held
	pl.held = nil
	it.PointerUp(p)
}

// Cancel abandons a drag and sends the item home
func (pl *Placement) Cancel() {
	if pl.held == nil {
		return
	}
	it := pl.held
	pl.held = nil
	if it.Dragging() {
		it.CancelDrag()
		it.ReturnToRest()
	}
}

// Settled reports whether no item or figure is animating
func (pl *Placement) Settled() bool {
	return !pl.roster.AnyInTransit()
}

// Update advances every item's snap and figure
func (pl *Placement) Update(dt time.Duration) {
	for _, it := range pl.roster.All() {
		it.Update(dt)
	}
}
