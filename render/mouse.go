package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/once-upon-a-lever/vmath"
)

// Gesture is a pointer transition derived from terminal mouse reports
type Gesture int

const (
	GestureNone Gesture = iota
	GestureDown
	GestureMove
	GestureUp
)

func (g Gesture) String() string {
	switch g {
	case GestureDown:
		return "down"
	case GestureMove:
		return "move"
	case GestureUp:
		return "up"
	}
	return "none"
}

// Pointer receives scene-space drag gestures
type Pointer interface {
	PointerDown(p vmath.Vec2)
	PointerMove(p vmath.Vec2)
	PointerUp(p vmath.Vec2)
}

// MouseTracker turns tcell button state reports into press, drag and release
// Terminals report state, not transitions; only the primary button drags
type MouseTracker struct {
	down  bool
	lastX int
	lastY int
}

// Translate maps a mouse report to a gesture at the cell center in scene units
// Motion without the button held and repeated reports for the same cell yield GestureNone
func (m *MouseTracker) Translate(ev *tcell.EventMouse, view Viewport) (Gesture, vmath.Vec2) {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0

	var g Gesture
	switch {
	case pressed && !m.down:
		g = GestureDown
	case pressed && m.down:
		if x == m.lastX && y == m.lastY {
			return GestureNone, vmath.Vec2{}
		}
		g = GestureMove
	case !pressed && m.down:
		g = GestureUp
	default:
		return GestureNone, vmath.Vec2{}
	}
	m.down = pressed
	m.lastX, m.lastY = x, y
	return g, view.CellCenter(x, y)
}

// Pressed reports whether the primary button is held
func (m *MouseTracker) Pressed() bool {
	return m.down
}

// Apply forwards a gesture to p
func Apply(p Pointer, g Gesture, at vmath.Vec2) {
	switch g {
	case GestureDown:
		p.PointerDown(at)
	case GestureMove:
		p.PointerMove(at)
	case GestureUp:
		p.PointerUp(at)
	}
}
