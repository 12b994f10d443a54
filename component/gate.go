package component

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/once-upon-a-lever/catalog"
	"github.com/lixenwraith/once-upon-a-lever/constant"
	"github.com/lixenwraith/once-upon-a-lever/engine"
	"github.com/lixenwraith/once-upon-a-lever/event"
	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

// GestureState is the lever's presentation state
type GestureState int

const (
	GestureIdle GestureState = iota
	GestureDragging
	GestureReturning
)

func (s GestureState) String() string {
	switch s {
	case GestureIdle:
		return "Idle"
	case GestureDragging:
		return "Dragging"
	case GestureReturning:
		return "Returning"
	}
	return "Unknown"
}

// VisualSource resolves an item's presentation in the current scene
type VisualSource interface {
	VisualParams(name string) catalog.VisualParams
}

// Gate is a lever that toggles the item lying in its bound slot
// Gesture state and Activated are orthogonal
type Gate struct {
	Index     int
	Slot      vmath.Vec2
	Pivot     vmath.Vec2
	Angle     float64 // Degrees, 0 neutral, -GateMaxAngle fully pulled
	Activated bool

	// OnPull is called once per fire and returns the attempt's pull count
	OnPull func() int

	ctx     *engine.GameContext
	roster  *Roster
	visuals VisualSource

	held    engine.ItemID
	gesture GestureState
	startY  float64
	latch   bool
	enabled bool
	ret     engine.ScalarTween

	statFires *atomic.Int64
	statEmpty *atomic.Int64
}

// NewGate creates a disabled gate bound to slot
func NewGate(ctx *engine.GameContext, roster *Roster, visuals VisualSource, index int, slot, pivot vmath.Vec2) *Gate {
	return &Gate{
		Index:     index,
		Slot:      slot,
		Pivot:     pivot,
		ctx:       ctx,
		roster:    roster,
		visuals:   visuals,
		ret:       engine.ScalarTween{Ease: vmath.EaseOutCubic},
		statFires: ctx.Status.Ints.Get("gates.fires"),
		statEmpty: ctx.Status.Ints.Get("gates.empty"),
	}
}

func (g *Gate) Gesture() GestureState { return g.gesture }
func (g *Gate) Enabled() bool         { return g.enabled }

// Held returns the item locked by this gate
func (g *Gate) Held() (engine.ItemID, bool) {
	return g.held, g.held != engine.NoItem
}

// SetEnabled allows or refuses gestures; disabling lets a held lever return
func (g *Gate) SetEnabled(enabled bool) {
	g.enabled = enabled
	if !enabled && g.gesture == GestureDragging {
		g.PointerUp(vmath.Vec2{})
	}
}

// HitTest reports whether p grabs the lever
func (g *Gate) HitTest(p vmath.Vec2) bool {
	return vmath.V2Dist(g.Pivot, p) <= constant.GateHitRadius
}

// PointerDown starts a pull gesture
func (g *Gate) PointerDown(p vmath.Vec2) bool {
	if !g.enabled || g.gesture == GestureDragging {
		return false
	}
	g.ret.Stop()
	g.gesture = GestureDragging
	g.startY = p.Y
	return true
}

// PointerMove updates the pull; crossing the trigger fires once per gesture
func (g *Gate) PointerMove(p vmath.Vec2) {
	if g.gesture != GestureDragging {
		return
	}
	pull := vmath.Clamp01((g.startY - p.Y) / constant.GatePullRange)
	g.Angle = -constant.GateMaxAngle * pull
	if pull >= constant.GateTriggerPull && !g.latch {
		g.latch = true
		g.Fire()
	}
}

// PointerUp releases the lever into its eased return
func (g *Gate) PointerUp(vmath.Vec2) {
	if g.gesture != GestureDragging {
		return
	}
	g.gesture = GestureReturning
	g.ret.Start(g.Angle, 0, constant.GateReturnDuration)
}

// Fire toggles activation of the item in the bound slot
func (g *Gate) Fire() {
	g.statFires.Add(1)
	pulls := 0
	if g.OnPull != nil {
		pulls = g.OnPull()
	}

	if g.Activated {
		g.retract(pulls)
		return
	}

	occ, ok := g.ctx.Registry.OccupantAt(g.Slot)
	var it *Item
	if ok {
		it = g.roster.ByID(occ)
	}
	if it == nil {
		g.statEmpty.Add(1)
		g.ctx.Emit(event.EventGateFired, event.GatePayload{Gate: g.Index, Item: -1, Pulls: pulls})
		return
	}

	it.Lock()
	if it.Secondary != nil {
		vp := catalog.DefaultVisualParams()
		if g.visuals != nil {
			vp = g.visuals.VisualParams(it.Name)
		}
		it.Secondary.MoveBy(vp.Offset)
		it.Secondary.ApplyVisuals(vp.Order, vp.Mirrored)
	}
	g.Activated = true
	g.held = it.ID
	g.ctx.Emit(event.EventGateFired, event.GatePayload{
		Gate: g.Index, Item: int(it.ID), Name: it.Name, Pulls: pulls, Locked: true, Applied: true,
	})
}

func (g *Gate) retract(pulls int) {
	it := g.roster.ByID(g.held)
	g.Activated = false
	g.held = engine.NoItem
	if it == nil {
		return
	}
	it.Unlock()
	if it.Secondary != nil {
		it.Secondary.MoveBack()
		it.Secondary.ResetVisuals()
	}
	g.ctx.Emit(event.EventGateRetracted, event.GatePayload{
		Gate: g.Index, Item: int(it.ID), Name: it.Name, Pulls: pulls, Applied: true,
	})
}

// Reset clears latch and activation and snaps the lever to neutral
func (g *Gate) Reset() {
	g.latch = false
	g.Activated = false
	g.held = engine.NoItem
	g.gesture = GestureIdle
	g.ret.Stop()
	g.Angle = 0
}

// ResetBoundItem also unlocks the slot's item, resets its figure and sends it home
func (g *Gate) ResetBoundItem() {
	id, ok := g.ctx.Registry.OccupantAt(g.Slot)
	if !ok {
		id = g.held
	}
	if it := g.roster.ByID(id); it != nil {
		it.CancelDrag()
		it.Unlock()
		it.ResetAssociated()
		g.ctx.Registry.Release(g.Slot)
		it.ReturnToRest()
	}
	g.Reset()
}

// Update advances the lever's return
func (g *Gate) Update(dt time.Duration) {
	if g.gesture != GestureReturning {
		return
	}
	angle, done := g.ret.Update(dt)
	g.Angle = angle
	if done {
		g.gesture = GestureIdle
		g.latch = false
	}
}
