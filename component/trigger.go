package component

import (
	"math"
	"time"

	"github.com/lixenwraith/once-upon-a-lever/constant"
	"github.com/lixenwraith/once-upon-a-lever/engine"
	"github.com/lixenwraith/once-upon-a-lever/event"
	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

// Trigger is the confirm rope: pull it down past the trigger offset to submit
type Trigger struct {
	Anchor vmath.Vec2
	Offset float64 // Handle offset below the anchor, in [RopeMinOffset, 0]

	ctx *engine.GameContext

	dragging    bool
	startY      float64
	startOffset float64
	latch       bool
	enabled     bool
}

// NewTrigger creates a disabled rope hanging at anchor
func NewTrigger(ctx *engine.GameContext, anchor vmath.Vec2) *Trigger {
	return &Trigger{Anchor: anchor, ctx: ctx}
}

func (tr *Trigger) Enabled() bool  { return tr.enabled }
func (tr *Trigger) Dragging() bool { return tr.dragging }

// SetEnabled allows or refuses pulls; disabling drops a held rope
func (tr *Trigger) SetEnabled(enabled bool) {
	tr.enabled = enabled
	if !enabled {
		tr.dragging = false
	}
}

// Handle returns the rope handle position
func (tr *Trigger) Handle() vmath.Vec2 {
	return vmath.V2(tr.Anchor.X, tr.Anchor.Y+tr.Offset)
}

// HitTest reports whether p grabs the handle
func (tr *Trigger) HitTest(p vmath.Vec2) bool {
	return vmath.V2Dist(tr.Handle(), p) <= constant.RopeHitRadius
}

// PointerDown grabs the rope and re-arms the trigger
func (tr *Trigger) PointerDown(p vmath.Vec2) bool {
	if !tr.enabled || tr.dragging {
		return false
	}
	tr.dragging = true
	tr.latch = false
	tr.startY = p.Y
	tr.startOffset = tr.Offset
	return true
}

// PointerMove pulls the rope; crossing the trigger offset emits a confirm once
func (tr *Trigger) PointerMove(p vmath.Vec2) {
	if !tr.dragging {
		return
	}
	tr.Offset = vmath.Clamp(tr.startOffset+(p.Y-tr.startY), constant.RopeMinOffset, 0)
	if tr.Offset <= constant.RopeTriggerOffset && !tr.latch {
		tr.latch = true
		tr.ctx.Emit(event.EventConfirmPulled, nil)
	}
}

// PointerUp lets go of the rope
func (tr *Trigger) PointerUp(vmath.Vec2) {
	tr.dragging = false
}

// Update springs a released rope back toward the anchor
func (tr *Trigger) Update(dt time.Duration) {
	if tr.dragging || tr.Offset == 0 {
		return
	}
	tr.Offset = vmath.ApproachExp(tr.Offset, 0, constant.RopeReturnSpeed, dt.Seconds())
	if math.Abs(tr.Offset) < constant.RopeSettleEpsilon {
		tr.Offset = 0
	}
}
