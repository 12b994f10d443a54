package system

import (
	"github.com/lixenwraith/once-upon-a-lever/component"
	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

// pointerTarget is anything that can capture a press-drag-release gesture
type pointerTarget interface {
	PointerDown(p vmath.Vec2) bool
	PointerMove(p vmath.Vec2)
	PointerUp(p vmath.Vec2)
}

// Input routes scene-space pointer gestures
// A press is offered to the rope, then the levers, then the page arrows, then the items
// The accepting target captures the gesture until release
type Input struct {
	trigger   *component.Trigger
	gates     *Gates
	pages     *Pages
	placement *Placement
	visible   Visibility

	captured pointerTarget
	last     vmath.Vec2
}

func NewInput(trigger *component.Trigger, gates *Gates, pages *Pages, placement *Placement, visible Visibility) *Input {
	return &Input{
		trigger:   trigger,
		gates:     gates,
		pages:     pages,
		placement: placement,
		visible:   visible,
	}
}

// Captured reports whether a gesture is in progress
func (in *Input) Captured() bool {
	return in.captured != nil
}

// PointerDown starts a gesture at p
func (in *Input) PointerDown(p vmath.Vec2) {
	in.last = p
	if in.captured != nil {
		return
	}
	if in.trigger != nil && in.trigger.HitTest(p) && in.trigger.PointerDown(p) {
		in.captured = in.trigger
		return
	}
	if in.gates != nil {
		if g := in.gates.At(p); g != nil && g.PointerDown(p) {
			in.captured = g
			return
		}
	}
	if in.pages != nil && in.placement != nil && in.placement.ctx.InputEnabled() {
		switch in.pages.ArrowAt(p) {
		case -1:
			in.pages.Prev(in.visible)
			return
		case 1:
			in.pages.Next(in.visible)
			return
		}
	}
	if in.placement != nil && in.placement.PointerDown(p) {
		in.captured = in.placement
	}
}

// PointerMove forwards a drag to the captured target
func (in *Input) PointerMove(p vmath.Vec2) {
	in.last = p
	if in.captured != nil {
		in.captured.PointerMove(p)
	}
}

// PointerUp ends the gesture
func (in *Input) PointerUp(p vmath.Vec2) {
	in.last = p
	if in.captured == nil {
		return
	}
	target := in.captured
	in.captured = nil
	target.PointerUp(p)
}

// Release ends any gesture at the last known pointer position
func (in *Input) Release() {
	in.PointerUp(in.last)
}
