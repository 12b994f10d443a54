package narrative

import (
	"time"

	"github.com/lixenwraith/once-upon-a-lever/constant"
	"github.com/lixenwraith/once-upon-a-lever/engine"
	"github.com/lixenwraith/once-upon-a-lever/event"
	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

// CurtainPair slides two stage curtains between their open and closed marks
type CurtainPair struct {
	LeftX, RightX float64

	ctx         *engine.GameContext
	left, right engine.ScalarTween
	closed      bool
}

// NewCurtainPair creates curtains standing open
func NewCurtainPair(ctx *engine.GameContext) *CurtainPair {
	return &CurtainPair{
		LeftX:  constant.CurtainLeftOpenX,
		RightX: constant.CurtainRightOpenX,
		ctx:    ctx,
		left:   engine.ScalarTween{Ease: vmath.EaseOutCubic},
		right:  engine.ScalarTween{Ease: vmath.EaseOutCubic},
	}
}

// Close draws both curtains across the stage
func (c *CurtainPair) Close() {
	c.closed = true
	c.left.Start(c.LeftX, constant.CurtainLeftClosedX, constant.CurtainMoveDuration)
	c.right.Start(c.RightX, constant.CurtainRightClosedX, constant.CurtainMoveDuration)
	if c.ctx != nil {
		c.ctx.Emit(event.EventCurtainClosing, nil)
	}
}

// Open pulls both curtains off stage
func (c *CurtainPair) Open() {
	c.closed = false
	c.left.Start(c.LeftX, constant.CurtainLeftOpenX, constant.CurtainMoveDuration)
	c.right.Start(c.RightX, constant.CurtainRightOpenX, constant.CurtainMoveDuration)
	if c.ctx != nil {
		c.ctx.Emit(event.EventCurtainOpening, nil)
	}
}

// Closed reports the last commanded state
func (c *CurtainPair) Closed() bool {
	return c.closed
}

// InTransit reports whether either curtain is moving
func (c *CurtainPair) InTransit() bool {
	return c.left.Active() || c.right.Active()
}

// Update advances both curtains
func (c *CurtainPair) Update(dt time.Duration) {
	if c.left.Active() {
		c.LeftX, _ = c.left.Update(dt)
	}
	if c.right.Active() {
		c.RightX, _ = c.right.Update(dt)
	}
}
