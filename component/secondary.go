package component

import (
	"time"

	"github.com/lixenwraith/once-upon-a-lever/constant"
	"github.com/lixenwraith/once-upon-a-lever/engine"
	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

// Secondary is the story figure an item brings on stage when its gate fires
type Secondary struct {
	Rest     vmath.Vec2
	Pos      vmath.Vec2
	Order    int
	Mirrored bool

	preActivation vmath.Vec2
	move          engine.Tween
}

// NewSecondary creates a figure resting at rest
func NewSecondary(rest vmath.Vec2) *Secondary {
	return &Secondary{
		Rest:          rest,
		Pos:           rest,
		Order:         constant.DefaultOrder,
		preActivation: rest,
	}
}

// MoveBy animates the figure by offset from where it is heading
// A move still in flight counts as finished, so a fire during a retract keeps the rest anchor
func (s *Secondary) MoveBy(offset vmath.Vec2) {
	base := s.Pos
	if s.move.Active() {
		base = s.move.To
	}
	s.preActivation = base
	s.move.Start(s.Pos, vmath.V2Add(base, offset), constant.SecondaryMoveDuration)
}

// MoveBack animates the figure to where it stood before the last MoveBy
func (s *Secondary) MoveBack() {
	s.move.Start(s.Pos, s.preActivation, constant.SecondaryMoveDuration)
}

// ApplyVisuals sets the draw order and mirroring of the figure
func (s *Secondary) ApplyVisuals(order int, mirrored bool) {
	s.Order = order
	s.Mirrored = mirrored
}

// ResetVisuals restores the default draw order, unmirrored
func (s *Secondary) ResetVisuals() {
	s.Order = constant.DefaultOrder
	s.Mirrored = false
}

// ResetPosition places the figure back at its rest instantly
func (s *Secondary) ResetPosition() {
	s.move.Stop()
	s.Pos = s.Rest
	s.preActivation = s.Rest
}

// Displaced reports whether the figure is away from its rest
func (s *Secondary) Displaced() bool {
	return s.Pos != s.Rest
}

// InTransit reports whether the figure is moving
func (s *Secondary) InTransit() bool {
	return s.move.Active()
}

// Update advances the figure's move
func (s *Secondary) Update(dt time.Duration) {
	if !s.move.Active() {
		return
	}
	s.Pos, _ = s.move.Update(dt)
}
