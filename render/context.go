package render

import (
	"math"

	"github.com/lixenwraith/once-upon-a-lever/constant"
	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

// RenderContext provides frame state for renderers, passed by value
type RenderContext struct {
	View     Viewport
	Frame    int64
	IsPaused bool
	IsMuted  bool
}

// Viewport maps scene units (y up, origin at stage center) to terminal cells
// The stage is centered horizontally; narration rows and the status line sit below it
type Viewport struct {
	ScreenWidth  int
	ScreenHeight int

	// Cell of the stage's top-left corner
	OriginX int
	OriginY int
}

// Stage dimensions in cells
const (
	StageWidth  = int(2 * constant.SceneHalfWidth * constant.CellsPerUnitX)
	StageHeight = int(2 * constant.SceneHalfHeight * constant.CellsPerUnitY)
)

// NewViewport lays the stage out on a screen of the given size
func NewViewport(width, height int) Viewport {
	used := StageHeight + constant.TextRows + 1
	return Viewport{
		ScreenWidth:  width,
		ScreenHeight: height,
		OriginX:      max((width-StageWidth)/2, 0),
		OriginY:      max((height-used)/2, 0),
	}
}

// WorldToCell returns the cell containing scene point p
func (v Viewport) WorldToCell(p vmath.Vec2) (int, int) {
	x := v.OriginX + int(math.Floor((p.X+constant.SceneHalfWidth)*constant.CellsPerUnitX))
	y := v.OriginY + int(math.Floor((constant.SceneHalfHeight-p.Y)*constant.CellsPerUnitY))
	return x, y
}

// CellToWorld returns the scene point at the top-left corner of cell x,y
func (v Viewport) CellToWorld(x, y int) vmath.Vec2 {
	return vmath.Vec2{
		X: float64(x-v.OriginX)/constant.CellsPerUnitX - constant.SceneHalfWidth,
		Y: constant.SceneHalfHeight - float64(y-v.OriginY)/constant.CellsPerUnitY,
	}
}

// CellCenter returns the scene point at the center of cell x,y
func (v Viewport) CellCenter(x, y int) vmath.Vec2 {
	p := v.CellToWorld(x, y)
	p.X += 0.5 / constant.CellsPerUnitX
	p.Y -= 0.5 / constant.CellsPerUnitY
	return p
}

// TextTop returns the first narration row
func (v Viewport) TextTop() int {
	return v.OriginY + StageHeight
}

// StatusRow returns the status line row
func (v Viewport) StatusRow() int {
	return v.TextTop() + constant.TextRows
}

// OnStage reports whether cell x,y lies inside the stage rectangle
func (v Viewport) OnStage(x, y int) bool {
	return x >= v.OriginX && x < v.OriginX+StageWidth && y >= v.OriginY && y < v.OriginY+StageHeight
}
