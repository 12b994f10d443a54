package system

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/once-upon-a-lever/catalog"
	"github.com/lixenwraith/once-upon-a-lever/component"
	"github.com/lixenwraith/once-upon-a-lever/engine"
	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

// Gates owns every lever and the attempt's pull counter
type Gates struct {
	ctx    *engine.GameContext
	roster *component.Roster
	all    []*component.Gate
	pulls  int

	statPulls *atomic.Int64
}

// NewGates creates one disabled gate per layout entry
func NewGates(ctx *engine.GameContext, roster *component.Roster, visuals component.VisualSource, specs []catalog.GateSpec) *Gates {
	gs := &Gates{
		ctx:       ctx,
		roster:    roster,
		all:       make([]*component.Gate, 0, len(specs)),
		statPulls: ctx.Status.Ints.Get("gates.pulls"),
	}
	for i, spec := range specs {
		g := component.NewGate(ctx, roster, visuals, i, spec.Slot, spec.Pivot)
		g.OnPull = gs.countPull
		gs.all = append(gs.all, g)
	}
	return gs
}

func (gs *Gates) countPull() int {
	gs.pulls++
	gs.statPulls.Store(int64(gs.pulls))
	return gs.pulls
}

// All returns the gates in layout order
func (gs *Gates) All() []*component.Gate {
	return gs.all
}

// Pulls returns the number of fires in the current attempt
func (gs *Gates) Pulls() int {
	return gs.pulls
}

// ResetPulls zeroes the attempt's pull counter
func (gs *Gates) ResetPulls() {
	gs.pulls = 0
	gs.statPulls.Store(0)
}

// SetEnabled allows or refuses lever gestures on every gate
func (gs *Gates) SetEnabled(enabled bool) {
	for _, g := range gs.all {
		g.SetEnabled(enabled)
	}
}

// Reset returns every lever to neutral, leaving items where they are
func (gs *Gates) Reset() {
	for _, g := range gs.all {
		g.Reset()
	}
	gs.ResetPulls()
}

// ResetWithItems also unlocks and sends home every item lying in a gate slot
func (gs *Gates) ResetWithItems() {
	for _, g := range gs.all {
		g.ResetBoundItem()
	}
	gs.ResetPulls()
}

// IsGateSlot reports whether p is one of the gates' bound positions
func (gs *Gates) IsGateSlot(p vmath.Vec2) bool {
	canon, ok := gs.ctx.Registry.Canonical(p)
	if !ok {
		return false
	}
	for _, g := range gs.all {
		if g.Slot == canon {
			return true
		}
	}
	return false
}

// Holds reports whether the item lies in a gate slot or is snapping into one
func (gs *Gates) Holds(it *component.Item) bool {
	if slot, ok := gs.ctx.Registry.SlotOf(it.ID); ok && gs.IsGateSlot(slot) {
		return true
	}
	for _, g := range gs.all {
		if id, ok := gs.ctx.Registry.ReservedBy(g.Slot); ok && id == it.ID {
			return true
		}
	}
	return false
}

// Placed returns the names of the items in gate slots, in gate order
func (gs *Gates) Placed() []string {
	var names []string
	for _, g := range gs.all {
		id, ok := gs.ctx.Registry.OccupantAt(g.Slot)
		if !ok {
			continue
		}
		if it := gs.roster.ByID(id); it != nil {
			names = append(names, it.Name)
		}
	}
	return names
}

// At returns the gate whose pivot is under p
func (gs *Gates) At(p vmath.Vec2) *component.Gate {
	for _, g := range gs.all {
		if g.HitTest(p) {
			return g
		}
	}
	return nil
}

// Update advances lever returns
func (gs *Gates) Update(dt time.Duration) {
	for _, g := range gs.all {
		g.Update(dt)
	}
}
