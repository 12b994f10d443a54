package component

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/once-upon-a-lever/constant"
	"github.com/lixenwraith/once-upon-a-lever/engine"
	"github.com/lixenwraith/once-upon-a-lever/event"
	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

// ItemState is the derived interaction state of an item
type ItemState int

const (
	ItemAtRest ItemState = iota
	ItemDragging
	ItemSnapping
	ItemLocked
)

func (s ItemState) String() string {
	switch s {
	case ItemAtRest:
		return "AtRest"
	case ItemDragging:
		return "Dragging"
	case ItemSnapping:
		return "Snapping"
	case ItemLocked:
		return "Locked"
	}
	return "Unknown"
}

// Item is a draggable palette piece that snaps onto drop positions
// Items are never destroyed, only deactivated
type Item struct {
	ID        engine.ItemID
	Name      string
	Page      int
	Rest      vmath.Vec2
	Pos       vmath.Vec2
	Order     int
	Scale     float64
	Secondary *Secondary // nil when the item has no story figure

	ctx    *engine.GameContext
	roster *Roster

	active   bool
	locked   bool
	dragging bool
	grab     vmath.Vec2 // Item position minus pointer at pick-up

	snap       engine.Tween
	snapTarget vmath.Vec2

	statPicked   *atomic.Int64
	statPlaced   *atomic.Int64
	statRejected *atomic.Int64
	statEvicted  *atomic.Int64
}

// NewItem creates an inactive item resting at rest
func NewItem(ctx *engine.GameContext, id engine.ItemID, name string, page int, rest vmath.Vec2) *Item {
	return &Item{
		ID:           id,
		Name:         name,
		Page:         page,
		Rest:         rest,
		Pos:          rest,
		Order:        constant.RestOrder,
		Scale:        1,
		ctx:          ctx,
		statPicked:   ctx.Status.Ints.Get("placement.picked"),
		statPlaced:   ctx.Status.Ints.Get("placement.placed"),
		statRejected: ctx.Status.Ints.Get("placement.rejected"),
		statEvicted:  ctx.Status.Ints.Get("placement.evicted"),
	}
}

// State returns the interaction state
func (it *Item) State() ItemState {
	switch {
	case it.locked:
		return ItemLocked
	case it.dragging:
		return ItemDragging
	case it.snap.Active():
		return ItemSnapping
	default:
		return ItemAtRest
	}
}

func (it *Item) Active() bool   { return it.active }
func (it *Item) Locked() bool   { return it.locked }
func (it *Item) Dragging() bool { return it.dragging }

// InTransit reports whether the item or its figure is animating
func (it *Item) InTransit() bool {
	if it.snap.Active() {
		return true
	}
	return it.Secondary != nil && it.Secondary.InTransit()
}

// HitTest reports whether p grabs this item
func (it *Item) HitTest(p vmath.Vec2) bool {
	return it.active && vmath.V2Dist(it.Pos, p) <= constant.ItemHitRadius*it.Scale
}

// Payload describes the item at a position for events
func (it *Item) Payload(at vmath.Vec2) event.ItemPayload {
	return event.ItemPayload{Item: int(it.ID), Name: it.Name, X: at.X, Y: at.Y}
}

// PointerDown starts a drag; false when the item cannot be picked up
func (it *Item) PointerDown(p vmath.Vec2) bool {
	if !it.active || it.locked || it.dragging || it.snap.Active() || !it.ctx.InputEnabled() {
		return false
	}
	it.dragging = true
	it.ctx.Registry.ReleaseItem(it.ID)
	it.Order = constant.DragOrder
	it.Scale = constant.DragScale
	it.grab = vmath.V2Sub(it.Pos, p)

	it.statPicked.Add(1)
	it.ctx.Emit(event.EventItemPicked, it.Payload(it.Pos))
	return true
}

// PointerMove follows the pointer while dragging
func (it *Item) PointerMove(p vmath.Vec2) {
	if !it.dragging {
		return
	}
	it.Pos = vmath.V2Add(p, it.grab)
}

// PointerUp drops the item and resolves its destination
func (it *Item) PointerUp(p vmath.Vec2) {
	if !it.dragging {
		return
	}
	it.PointerMove(p)
	it.dragging = false
	it.Order = constant.RestOrder
	it.Scale = 1

	reg := it.ctx.Registry
	var target vmath.Vec2
	var found bool
	if it.ctx.Settings.Policy == engine.PolicyFreeOnly {
		target, found = reg.NearestFree(it.Pos, constant.SnapThreshold)
	} else {
		target, found = reg.Nearest(it.Pos, constant.SnapThreshold)
	}

	if !found {
		it.snapTo(it.Rest)
		return
	}

	// Another item's rest slot is never a destination
	if it.roster != nil {
		if owner, isRest := it.roster.RestOwner(target); isRest && owner != it {
			it.reject(target)
			return
		}
	}

	// Slot claimed by an in-flight snap
	if r, reserved := reg.ReservedBy(target); reserved && r != it.ID {
		it.reject(target)
		return
	}

	if occ, occupied := reg.OccupantAt(target); occupied && occ != it.ID {
		var other *Item
		if it.roster != nil {
			other = it.roster.ByID(occ)
		}
		if other == nil || other.locked {
			it.reject(target)
			return
		}
		reg.ReleaseItem(occ)
		other.ReturnToRest()
		other.statEvicted.Add(1)
		it.ctx.Emit(event.EventItemEvicted, other.Payload(target))
	}

	it.snapTo(target)
}

// reject sends the item home after a refused drop
func (it *Item) reject(target vmath.Vec2) {
	it.statRejected.Add(1)
	it.ctx.Emit(event.EventItemRejected, it.Payload(target))
	it.snapTo(it.Rest)
}

// snapTo starts the relocation animation, superseding a running one
// The destination is reserved now and occupied on arrival
func (it *Item) snapTo(target vmath.Vec2) {
	reg := it.ctx.Registry
	reg.ReleaseItem(it.ID)
	reg.CancelReservation(it.ID)
	reg.Reserve(target, it.ID)

	it.snapTarget = target
	if vmath.V2Dist(it.Pos, target) < constant.ArrivalEpsilon {
		it.snap.Stop()
		it.arrive()
		return
	}
	it.snap.Start(it.Pos, target, it.ctx.Settings.SnapDuration)
}

func (it *Item) arrive() {
	it.Pos = it.snapTarget
	if !it.active {
		it.ctx.Registry.CancelReservation(it.ID)
		return
	}
	it.ctx.Registry.Assign(it.snapTarget, it.ID)
	if it.snapTarget != it.Rest {
		it.statPlaced.Add(1)
		it.ctx.Emit(event.EventItemPlaced, it.Payload(it.snapTarget))
	}
}

// ReturnToRest snaps the item home unconditionally
func (it *Item) ReturnToRest() {
	it.dragging = false
	it.Order = constant.RestOrder
	it.Scale = 1
	it.snapTo(it.Rest)
}

// CancelDrag abandons a drag in place
func (it *Item) CancelDrag() {
	if !it.dragging {
		return
	}
	it.dragging = false
	it.Order = constant.RestOrder
	it.Scale = 1
}

// Lock pins the item in its slot
func (it *Item) Lock() {
	it.locked = true
}

// Unlock releases the pin
func (it *Item) Unlock() {
	it.locked = false
}

// ResetAssociated puts the figure back at rest instantly with default visuals
func (it *Item) ResetAssociated() {
	if it.Secondary == nil {
		return
	}
	it.Secondary.ResetPosition()
	it.Secondary.ResetVisuals()
}

// Activate shows the item; an item lying at rest takes its rest slot
func (it *Item) Activate() {
	if it.active {
		return
	}
	it.active = true
	if !it.snap.Active() && it.Pos == it.Rest {
		it.ctx.Registry.Assign(it.Rest, it.ID)
	}
}

// Deactivate hides the item at rest and frees its slot
func (it *Item) Deactivate() {
	it.active = false
	it.dragging = false
	it.locked = false
	it.snap.Stop()
	it.ctx.Registry.CancelReservation(it.ID)
	it.ctx.Registry.ReleaseItem(it.ID)
	it.Pos = it.Rest
	it.Order = constant.RestOrder
	it.Scale = 1
}

// Update advances the snap and the figure
func (it *Item) Update(dt time.Duration) {
	if it.snap.Active() {
		pos, done := it.snap.Update(dt)
		it.Pos = pos
		if done {
			it.arrive()
		}
	}
	if it.Secondary != nil {
		it.Secondary.Update(dt)
	}
}
